package cli

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHistory(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC).UnixMilli()
	entries := []models.HistoryEntry{
		{Title: "Go", Language: "english", Timestamp: ts},
		{Title: "Berlin", Language: "german", Timestamp: ts},
	}
	local := time.UnixMilli(ts).Local().Format("2006-01-02 15:04:05")

	got := renderHistory(entries)
	assert.Equal(t, []string{
		"1. Go (english) – " + local,
		"2. Berlin (german) – " + local,
	}, got)
	assert.Empty(t, renderHistory(nil))
}

func TestHistory_EmptyAndClear(t *testing.T) {
	h := newHarness(t, "", nil)
	ctx := context.Background()

	require.NoError(t, h.app.History(ctx))
	assert.Contains(t, h.out.String(), "No history yet.")

	h.app.history.Record(ctx, "Go", "english")
	h.out.Reset()
	require.NoError(t, h.app.History(ctx))
	assert.Contains(t, h.out.String(), "1. Go (english) – ")

	require.NoError(t, h.app.ClearHistory(ctx))
	assert.Empty(t, h.app.history.List(ctx))
	assert.Empty(t, h.hist.entries)
}

func TestReplay_ResubmitsEntry(t *testing.T) {
	h := newHarness(t, "", summarizeRoutes)
	h.login("alice")
	ctx := context.Background()

	h.app.history.Record(ctx, "Berlin", "german")
	h.app.history.Record(ctx, "Go", "english")

	require.NoError(t, h.app.Replay(ctx, []string{"2"}))
	h.app.pipeline.Wait()

	f := h.app.formSnapshot()
	assert.Equal(t, "Berlin", f.Title)
	assert.Equal(t, "german", f.Language)

	scrape, ok := h.find("POST /scrape")
	require.True(t, ok)
	assert.Equal(t, "Berlin", scrape.body["title"])
	assert.Equal(t, "german", scrape.body["language"])

	entries := h.app.history.List(ctx)
	require.Len(t, entries, 2)
	assert.Equal(t, "Berlin", entries[0].Title)
}

func TestReplay_BadIndex(t *testing.T) {
	h := newHarness(t, "", summarizeRoutes)
	h.login("alice")
	ctx := context.Background()

	require.ErrorIs(t, h.app.Replay(ctx, []string{"1"}), services.ErrHistoryIndex)
	assert.Contains(t, h.out.String(), "No history entry 1.")
	require.ErrorIs(t, h.app.Replay(ctx, []string{"one"}), errUsage)
	require.ErrorIs(t, h.app.Replay(ctx, nil), errUsage)
	assert.Empty(t, h.requests())
}

func TestReplay_NotLoggedInDoesNotCallServer(t *testing.T) {
	stubPasswords(t)
	h := newHarness(t, "", summarizeRoutes)
	ctx := context.Background()
	h.app.history.Record(ctx, "Go", "english")

	require.ErrorIs(t, h.app.Replay(ctx, []string{"1"}), services.ErrAuthRequired)
	for _, r := range h.requests() {
		assert.NotEqual(t, http.MethodPost+" /scrape", r.route)
	}
}
