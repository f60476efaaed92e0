// Package config loads runtime configuration for the Wiki Reader CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / --config.
//  3. Command-line flags explicitly set by the user (see RegisterFlags).
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds. Absent keys keep their value:
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "online_check_interval": "3s",
//	  "db_path": "/home/me/.config/wikireader/vault.db",
//	  "download_dir": "downloads",
//	  "log_backend": "zap",
//	  "s3_bucket": "summaries",
//	  "default_language": "english"
//	}
//
// Note: This package does not read environment variables directly, except
// that S3 credentials fall back to the AWS default chain when unset.
package config
