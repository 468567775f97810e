package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/atscv/internal/flagx"
)

const defaultEnvFile = ".env"

// envSource resolves a variable from the process environment first and the
// dotenv file second.
type envSource struct {
	lookup func(string) (string, bool)
	file   map[string]string
}

func newEnvSource(args []string, lookup func(string) (string, bool)) (*envSource, error) {
	src := &envSource{lookup: lookup, file: map[string]string{}}

	path := flagx.EnvFileFlags(args)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	vars, err := godotenv.Read(path)
	switch {
	case err == nil:
		src.file = vars
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return src, nil
}

func (e *envSource) get(key string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return e.file[key]
}

func parseEnv(cfg *Config, env *envSource) error {
	for _, key := range []string{"API_KEY", "GEMINI_API_KEY"} {
		if v := env.get(key); v != "" {
			cfg.APIKey = v
			break
		}
	}

	stringVars := map[string]*string{
		"ATSCV_DB_PATH":       &cfg.DBPath,
		"ATSCV_MODEL":         &cfg.Model,
		"ATSCV_LOG_LEVEL":     &cfg.LogLevel,
		"ATSCV_LOG_FORMAT":    &cfg.LogFormat,
		"ATSCV_EXPORT_DIR":    &cfg.ExportDir,
		"ATSCV_S3_BUCKET":     &cfg.S3Bucket,
		"ATSCV_S3_REGION":     &cfg.S3Region,
		"ATSCV_S3_ENDPOINT":   &cfg.S3Endpoint,
		"ATSCV_S3_ACCESS_KEY": &cfg.S3AccessKey,
		"ATSCV_S3_SECRET_KEY": &cfg.S3SecretKey,
	}
	for key, dst := range stringVars {
		if v := env.get(key); v != "" {
			*dst = v
		}
	}

	if v := env.get("ATSCV_VERIFY_CREDENTIALS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ATSCV_VERIFY_CREDENTIALS: %w", err)
		}
		cfg.VerifyCredentials = b
	}
	if v := env.get("ATSCV_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ATSCV_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
