package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/atscv/internal/flagx"
	"github.com/dmitrijs2005/atscv/internal/timex"
)

// JsonConfig is a DTO used only for unmarshalling. Absent fields leave the
// current value alone.
type JsonConfig struct {
	DBPath            string         `json:"db_path"`
	APIKey            string         `json:"api_key"`
	Model             string         `json:"model"`
	LogLevel          string         `json:"log_level"`
	LogFormat         string         `json:"log_format"`
	ExportDir         string         `json:"export_dir"`
	S3Bucket          string         `json:"s3_bucket"`
	S3Region          string         `json:"s3_region"`
	S3Endpoint        string         `json:"s3_endpoint"`
	S3AccessKey       string         `json:"s3_access_key"`
	S3SecretKey       string         `json:"s3_secret_key"`
	VerifyCredentials *bool          `json:"verify_credentials"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the file named by -c / -config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.DBPath, jc.DBPath)
	setIf(&cfg.APIKey, jc.APIKey)
	setIf(&cfg.Model, jc.Model)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	setIf(&cfg.ExportDir, jc.ExportDir)
	setIf(&cfg.S3Bucket, jc.S3Bucket)
	setIf(&cfg.S3Region, jc.S3Region)
	setIf(&cfg.S3Endpoint, jc.S3Endpoint)
	setIf(&cfg.S3AccessKey, jc.S3AccessKey)
	setIf(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.VerifyCredentials != nil {
		cfg.VerifyCredentials = *jc.VerifyCredentials
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
