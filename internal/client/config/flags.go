package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/atscv/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string   SQLite database path
//	-m string   model name
//	-l string   log level
//	-o string   export directory
//
// Only these flags are picked out of args (via flagx.FilterArgs); the rest
// belong to other loaders.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-m", "-l", "-o"})

	fs := flag.NewFlagSet("atscv", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the local database")
	fs.StringVar(&cfg.Model, "m", cfg.Model, "AI model name")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "export directory")

	return fs.Parse(args)
}
