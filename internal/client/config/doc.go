// Package config loads runtime configuration for the ATS CV client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file: ./.env if present, or the file given with -e / -env.
//  3. Process environment, which wins over the dotenv file.
//  4. Optional JSON file selected with -c / -config.
//  5. Command-line flags (see parseFlags), which override everything.
//
// Environment
//
//	API_KEY, GEMINI_API_KEY      AI service key (first non-empty wins)
//	ATSCV_DB_PATH                SQLite file
//	ATSCV_MODEL                  model name
//	ATSCV_LOG_LEVEL              debug | info | warn | error
//	ATSCV_LOG_FORMAT             text | json | zap
//	ATSCV_EXPORT_DIR             directory for markdown exports
//	ATSCV_S3_BUCKET, ATSCV_S3_REGION, ATSCV_S3_ENDPOINT,
//	ATSCV_S3_ACCESS_KEY, ATSCV_S3_SECRET_KEY
//	ATSCV_VERIFY_CREDENTIALS     true to check passwords on login
//	ATSCV_REQUEST_TIMEOUT        e.g. 2m
//
// Supported flags
//
//	-d string   SQLite database path
//	-m string   model name
//	-l string   log level
//	-o string   export directory
//
// # JSON schema
//
// Durations accept strings like "90s" or integer nanoseconds:
//
//	{
//	  "db_path": "atscv.db",
//	  "model": "gemini-2.5-pro",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "export_dir": "exports",
//	  "s3_bucket": "cvs",
//	  "s3_region": "us-east-1",
//	  "verify_credentials": false,
//	  "request_timeout": "2m"
//	}
package config
