package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/client/repositories/history"
	"github.com/dmitrijs2005/wikireader/internal/logging"
)

// DefaultHistoryLimit is the number of entries kept by the local history.
const DefaultHistoryLimit = 20

// HistoryLog is the most-recent-first list of submitted queries kept on
// this machine. It never holds two entries for the same (title, language)
// and never more than its limit.
//
// Storage failures never reach the caller: reads degrade to an empty list
// and writes are logged while the in-memory result stays authoritative.
type HistoryLog struct {
	repo   history.Repository
	logger logging.Logger
	now    func() time.Time
	limit  int

	mu sync.Mutex
}

type HistoryOption func(*HistoryLog)

// WithClock replaces time.Now as the source of entry timestamps.
func WithClock(now func() time.Time) HistoryOption {
	return func(h *HistoryLog) { h.now = now }
}

func WithHistoryLimit(n int) HistoryOption {
	return func(h *HistoryLog) {
		if n > 0 {
			h.limit = n
		}
	}
}

func NewHistoryLog(repo history.Repository, logger logging.Logger, opts ...HistoryOption) *HistoryLog {
	h := &HistoryLog{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		limit:  DefaultHistoryLimit,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Record moves (title, language) to the front with a fresh timestamp and
// returns the updated list.
func (h *HistoryLog) Record(ctx context.Context, title, language string) []models.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := models.HistoryEntry{Title: title, Language: language, Timestamp: h.now().UnixMilli()}

	current := h.load(ctx)
	next := make([]models.HistoryEntry, 0, len(current)+1)
	next = append(next, entry)
	for _, e := range current {
		if e.SameQuery(entry) {
			continue
		}
		next = append(next, e)
	}
	if len(next) > h.limit {
		next = next[:h.limit]
	}

	h.save(ctx, next)
	return next
}

func (h *HistoryLog) List(ctx context.Context) []models.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load(ctx)
}

func (h *HistoryLog) Clear(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.save(ctx, []models.HistoryEntry{})
}

// Select returns the entry at the zero-based index.
func (h *HistoryLog) Select(ctx context.Context, index int) (models.HistoryEntry, error) {
	entries := h.List(ctx)
	if index < 0 || index >= len(entries) {
		return models.HistoryEntry{}, ErrHistoryIndex
	}
	return entries[index], nil
}

func (h *HistoryLog) load(ctx context.Context) []models.HistoryEntry {
	entries, err := h.repo.Load(ctx)
	if err != nil {
		h.logger.Warn(ctx, "local history unreadable, starting empty", "error", err)
		return []models.HistoryEntry{}
	}
	return entries
}

func (h *HistoryLog) save(ctx context.Context, entries []models.HistoryEntry) {
	if err := h.repo.Save(ctx, entries); err != nil {
		h.logger.Error(ctx, "failed to persist local history", "error", err)
	}
}
