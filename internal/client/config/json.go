package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/wikireader/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Only keys present in the
// file override the current values.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`

	DBPath      *string `json:"db_path"`
	KeyFile     *string `json:"key_file"`
	DownloadDir *string `json:"download_dir"`

	PlayerCommand *string `json:"player_command"`
	SpeechCommand *string `json:"speech_command"`
	SpeechLocale  *string `json:"speech_locale"`

	LogBackend *string `json:"log_backend"`
	LogLevel   *string `json:"log_level"`
	LogFile    *string `json:"log_file"`

	S3Bucket       *string `json:"s3_bucket"`
	S3Region       *string `json:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`
	S3Prefix       *string `json:"s3_prefix"`
	S3AccessKey    *string `json:"s3_access_key"`
	S3SecretKey    *string `json:"s3_secret_key"`

	DefaultLanguage      *string `json:"default_language"`
	DefaultVoice         *string `json:"default_voice"`
	DefaultSummaryLength *string `json:"default_summary_length"`
}

// parseJSONFile overlays cfg with the values found in the JSON file.
func parseJSONFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&cfg.ServerURL, jc.ServerURL)
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}

	set(&cfg.DBPath, jc.DBPath)
	set(&cfg.KeyFile, jc.KeyFile)
	set(&cfg.DownloadDir, jc.DownloadDir)

	set(&cfg.PlayerCommand, jc.PlayerCommand)
	set(&cfg.SpeechCommand, jc.SpeechCommand)
	set(&cfg.SpeechLocale, jc.SpeechLocale)

	set(&cfg.LogBackend, jc.LogBackend)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFile, jc.LogFile)

	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	set(&cfg.S3Prefix, jc.S3Prefix)
	set(&cfg.S3AccessKey, jc.S3AccessKey)
	set(&cfg.S3SecretKey, jc.S3SecretKey)

	set(&cfg.DefaultLanguage, jc.DefaultLanguage)
	set(&cfg.DefaultVoice, jc.DefaultVoice)
	set(&cfg.DefaultSummaryLength, jc.DefaultSummaryLength)
}
