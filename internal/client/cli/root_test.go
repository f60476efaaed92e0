package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/wikireader/internal/client/config"
	"github.com/dmitrijs2005/wikireader/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_Structure(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"login", "register", "logout", "summarize", "history", "voices", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{config.FlagConfig, config.FlagServer, config.FlagDB, config.FlagKeyFile, config.FlagS3Bucket} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}

	sum, _, err := root.Find([]string{"summarize"})
	require.NoError(t, err)
	for _, flag := range []string{"section", "max-length", "download", "bookmark"} {
		assert.NotNil(t, sum.Flags().Lookup(flag), flag)
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args,
		"--db", filepath.Join(dir, "vault.db"),
		"--key-file", filepath.Join(dir, "device.key"),
		"--log-level", "error",
	))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Build version: ")
}

func TestHistoryCommand_EmptyVault(t *testing.T) {
	out, err := runRoot(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No history yet.")
}

func TestSummarizeCommand_RequiresLogin(t *testing.T) {
	_, err := runRoot(t, "summarize", "Go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestSummarizeCommand_NeedsTitle(t *testing.T) {
	_, err := runRoot(t, "summarize")
	require.Error(t, err)
}

func TestWithApp_InvalidConfig(t *testing.T) {
	called := false
	old := newAppFn
	newAppFn = func(context.Context, *config.Config, logging.Logger) (*App, error) {
		called = true
		return nil, errors.New("unexpected")
	}
	t.Cleanup(func() { newAppFn = old })

	_, err := runRoot(t, "history", "--log-backend", "syslog")
	require.Error(t, err)
	assert.False(t, called)
}
