package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/atscv/internal/client/ai"
	"github.com/dmitrijs2005/atscv/internal/logging"
)

// Config holds runtime settings for the CLI.
//
// APIKey may be empty: the client still starts and AI commands report the
// missing key.
type Config struct {
	DBPath    string
	APIKey    string
	Model     string
	LogLevel  string
	LogFormat string
	ExportDir string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	VerifyCredentials bool
	RequestTimeout    time.Duration
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "atscv.db"
	c.Model = ai.DefaultModel
	c.LogLevel = "info"
	c.LogFormat = logging.FormatText
	c.ExportDir = "exports"
	c.S3Region = "us-east-1"
	c.RequestTimeout = 2 * time.Minute
}

// BackupEnabled reports whether an S3 bucket is configured.
func (c *Config) BackupEnabled() bool {
	return c.S3Bucket != ""
}

// Load builds a Config from args (without the program name) and the
// process environment.
func Load(args []string) (*Config, error) {
	return load(args, os.LookupEnv)
}

func load(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	env, err := newEnvSource(args, lookupEnv)
	if err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, env); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
