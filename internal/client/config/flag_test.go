package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("twr", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadConfig_Flags(t *testing.T) {
	defaults := func() *Config {
		var c Config
		c.LoadDefaults()
		return &c
	}

	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{name: "no flags keeps defaults", args: nil, expected: defaults()},
		{name: "short forms", args: []string{"-a", "http://api.example:8080", "-i", "10s", "-l", "french"},
			expected: func() *Config {
				c := defaults()
				c.ServerURL = "http://api.example:8080"
				c.OnlineCheckInterval = 10 * time.Second
				c.DefaultLanguage = "french"
				return c
			}()},
		{name: "long forms", args: []string{"--db", "/tmp/v.db", "--s3-bucket", "audio", "--length", "long", "--log-backend", "slog"},
			expected: func() *Config {
				c := defaults()
				c.DBPath = "/tmp/v.db"
				c.S3Bucket = "audio"
				c.DefaultSummaryLength = "long"
				c.LogBackend = "slog"
				return c
			}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(newFlagSet(t, tt.args...))
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestLoadConfig_InvalidIntervalRejectedByParser(t *testing.T) {
	fs := pflag.NewFlagSet("twr", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.Error(t, fs.Parse([]string{"-i", "abc"}))
}

func TestLoadConfig_InvalidValueRejected(t *testing.T) {
	_, err := LoadConfig(newFlagSet(t, "--length", "tiny"))
	require.Error(t, err)
}

func TestLoadConfig_MissingConfigFlag(t *testing.T) {
	_, err := LoadConfig(pflag.NewFlagSet("bare", pflag.ContinueOnError))
	require.Error(t, err)
}
