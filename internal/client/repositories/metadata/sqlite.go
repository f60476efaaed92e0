package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/wikireader/internal/dbx"
)

// SQLStore keeps values in the metadata table created by the vault
// migrations.
type SQLStore struct {
	db dbx.DBTX
}

// NewSQLStore binds the store to db, which may be a *sql.DB or a
// transaction handle from dbx.WithTx.
func NewSQLStore(db dbx.DBTX) *SQLStore {
	return &SQLStore{db: db}
}

var _ Repository = (*SQLStore)(nil)

const (
	selectValue = `SELECT value FROM metadata WHERE key = ?`
	upsertValue = `INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
)

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	switch err := s.db.QueryRowContext(ctx, selectValue, key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, upsertValue, key, value); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Remove deletes all given keys in a single statement. Missing keys are
// not an error.
func (s *SQLStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	q := `DELETE FROM metadata WHERE key IN (?` + strings.Repeat(`, ?`, len(keys)-1) + `)`

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("remove %s: %w", strings.Join(keys, ", "), err)
	}
	return nil
}
