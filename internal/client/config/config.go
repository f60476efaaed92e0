package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/logging"
	"github.com/spf13/pflag"
)

// Config holds runtime settings for the Wiki Reader CLI.
//
// Units: OnlineCheckInterval is a time.Duration (e.g., 3*time.Second).
// PlayerCommand and SpeechCommand are split on whitespace before use.
type Config struct {
	ServerURL           string
	OnlineCheckInterval time.Duration

	DBPath      string
	KeyFile     string
	DownloadDir string

	PlayerCommand string
	SpeechCommand string
	SpeechLocale  string

	LogBackend string
	LogLevel   string
	LogFile    string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3Prefix       string
	S3AccessKey    string
	S3SecretKey    string

	DefaultLanguage      string
	DefaultVoice         string
	DefaultSummaryLength string
}

// LoadDefaults populates c with sensible defaults. Local state lives in
// the user configuration directory, or the working directory when that is
// unknown.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.OnlineCheckInterval = 3 * time.Second

	base := "."
	if dir, err := os.UserConfigDir(); err == nil {
		base = filepath.Join(dir, "wikireader")
	}
	c.DBPath = filepath.Join(base, "vault.db")
	c.KeyFile = filepath.Join(base, "device.key")
	c.DownloadDir = "downloads"

	c.PlayerCommand = "ffplay -nodisp -autoexit -loglevel quiet"
	c.SpeechCommand = ""
	c.SpeechLocale = "en-US"

	c.LogBackend = logging.BackendZap
	c.LogLevel = "info"
	c.LogFile = ""

	c.S3Bucket = ""
	c.S3Region = ""
	c.S3BaseEndpoint = ""
	c.S3Prefix = ""
	c.S3AccessKey = ""
	c.S3SecretKey = ""

	c.DefaultLanguage = "english"
	c.DefaultVoice = models.DefaultVoice
	c.DefaultSummaryLength = models.SummaryMedium
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the JSON file named by the config flag (if any) and the flags explicitly
// set on fs. Later sources take precedence over earlier ones.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(FlagConfig)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := parseJSONFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}
	if c.OnlineCheckInterval <= 0 {
		return errors.New("online check interval must be positive")
	}
	switch c.LogBackend {
	case logging.BackendZap, logging.BackendSlog:
	default:
		return fmt.Errorf("unknown log backend %q", c.LogBackend)
	}
	switch c.DefaultSummaryLength {
	case models.SummaryShort, models.SummaryMedium, models.SummaryLong:
	default:
		return fmt.Errorf("unknown summary length %q", c.DefaultSummaryLength)
	}
	if c.DBPath == "" || c.KeyFile == "" {
		return errors.New("db path and key file are required")
	}
	return nil
}

// Form returns the initial form built from the configured defaults.
func (c *Config) Form() models.Form {
	return models.Form{
		Language:      c.DefaultLanguage,
		SummaryLength: c.DefaultSummaryLength,
		VoiceType:     c.DefaultVoice,
	}
}

func (c *Config) PlayerArgs() []string {
	return strings.Fields(c.PlayerCommand)
}

func (c *Config) SpeechArgs() []string {
	return strings.Fields(c.SpeechCommand)
}

// LoggingOptions maps the log settings onto the logging factory.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Backend: c.LogBackend, Level: c.LogLevel, File: c.LogFile}
}
