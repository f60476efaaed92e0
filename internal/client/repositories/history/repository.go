// Package history persists the local query history as a single JSON array
// in the vault metadata table.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/client/repositories/metadata"
)

type Repository interface {
	Load(ctx context.Context) ([]models.HistoryEntry, error)
	Save(ctx context.Context, entries []models.HistoryEntry) error
}

type MetadataRepository struct {
	meta metadata.Repository
}

func NewMetadataRepository(meta metadata.Repository) *MetadataRepository {
	return &MetadataRepository{meta: meta}
}

// Load returns an empty slice when nothing was stored yet.
func (r *MetadataRepository) Load(ctx context.Context) ([]models.HistoryEntry, error) {
	raw, err := r.meta.Get(ctx, metadata.KeyHistory)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []models.HistoryEntry{}, nil
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("corrupt history: %w", err)
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	return entries, nil
}

func (r *MetadataRepository) Save(ctx context.Context, entries []models.HistoryEntry) error {
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return r.meta.Put(ctx, metadata.KeyHistory, raw)
}

var _ Repository = (*MetadataRepository)(nil)
