package config

import (
	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig        = "config"
	FlagServer        = "server"
	FlagInterval      = "interval"
	FlagDB            = "db"
	FlagKeyFile       = "key-file"
	FlagDownloadDir   = "download-dir"
	FlagPlayer        = "player"
	FlagSpeechCommand = "speech-command"
	FlagSpeechLocale  = "speech-locale"
	FlagLogBackend    = "log-backend"
	FlagLogLevel      = "log-level"
	FlagLogFile       = "log-file"
	FlagS3Bucket      = "s3-bucket"
	FlagS3Region      = "s3-region"
	FlagS3Endpoint    = "s3-endpoint"
	FlagS3Prefix      = "s3-prefix"
	FlagLanguage      = "language"
	FlagVoice         = "voice"
	FlagLength        = "length"
)

// RegisterFlags defines the configuration flags on fs with the built-in
// defaults shown in help output.
//
// Supported flags (short forms):
//
//	-c string     JSON config file
//	-a string     backend base URL
//	-i duration   online check interval
//	-l string     default article language
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON config file")
	fs.StringP(FlagServer, "a", d.ServerURL, "base URL of the summarization backend")
	fs.DurationP(FlagInterval, "i", d.OnlineCheckInterval, "online check interval")
	fs.String(FlagDB, d.DBPath, "local database file")
	fs.String(FlagKeyFile, d.KeyFile, "device secret used to seal the stored token")
	fs.String(FlagDownloadDir, d.DownloadDir, "directory for downloaded audio")
	fs.String(FlagPlayer, d.PlayerCommand, "audio player command; the file is appended")
	fs.String(FlagSpeechCommand, d.SpeechCommand, "speech-to-text command; {locale} is substituted")
	fs.String(FlagSpeechLocale, d.SpeechLocale, "speech recognition locale")
	fs.String(FlagLogBackend, d.LogBackend, "logging backend: zap or slog")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(FlagLogFile, d.LogFile, "log to a rotated file instead of stderr")
	fs.String(FlagS3Bucket, d.S3Bucket, "upload downloads to this S3 bucket instead of a directory")
	fs.String(FlagS3Region, d.S3Region, "S3 region")
	fs.String(FlagS3Endpoint, d.S3BaseEndpoint, "S3-compatible endpoint URL")
	fs.String(FlagS3Prefix, d.S3Prefix, "key prefix for uploaded audio")
	fs.StringP(FlagLanguage, "l", d.DefaultLanguage, "default article language")
	fs.String(FlagVoice, d.DefaultVoice, "default voice type")
	fs.String(FlagLength, d.DefaultSummaryLength, "default summary length: short, medium, long")
}

// applyFlags copies the flags that were set explicitly on the command line.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	strs := map[string]*string{
		FlagServer:        &cfg.ServerURL,
		FlagDB:            &cfg.DBPath,
		FlagKeyFile:       &cfg.KeyFile,
		FlagDownloadDir:   &cfg.DownloadDir,
		FlagPlayer:        &cfg.PlayerCommand,
		FlagSpeechCommand: &cfg.SpeechCommand,
		FlagSpeechLocale:  &cfg.SpeechLocale,
		FlagLogBackend:    &cfg.LogBackend,
		FlagLogLevel:      &cfg.LogLevel,
		FlagLogFile:       &cfg.LogFile,
		FlagS3Bucket:      &cfg.S3Bucket,
		FlagS3Region:      &cfg.S3Region,
		FlagS3Endpoint:    &cfg.S3BaseEndpoint,
		FlagS3Prefix:      &cfg.S3Prefix,
		FlagLanguage:      &cfg.DefaultLanguage,
		FlagVoice:         &cfg.DefaultVoice,
		FlagLength:        &cfg.DefaultSummaryLength,
	}

	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Changed(FlagInterval) {
		v, err := fs.GetDuration(FlagInterval)
		if err != nil {
			return err
		}
		cfg.OnlineCheckInterval = v
	}
	return nil
}
