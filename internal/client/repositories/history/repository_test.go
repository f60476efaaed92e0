package history

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/client/repositories/metadata"
	"github.com/stretchr/testify/require"
)

type memMeta struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMemMeta() *memMeta { return &memMeta{data: map[string][]byte{}} }

func (m *memMeta) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}
func (m *memMeta) Put(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}
func (m *memMeta) Remove(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestLoad_Empty(t *testing.T) {
	r := NewMetadataRepository(newMemMeta())
	got, err := r.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSaveThenLoad_UsesHistoryKey(t *testing.T) {
	m := newMemMeta()
	r := NewMetadataRepository(m)
	ctx := context.Background()

	in := []models.HistoryEntry{{Title: "Go", Language: "english", Timestamp: 1700000000000}}
	require.NoError(t, r.Save(ctx, in))
	require.JSONEq(t, `[{"title":"Go","language":"english","timestamp":1700000000000}]`, string(m.data[metadata.KeyHistory]))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestSave_NilStoresEmptyArray(t *testing.T) {
	m := newMemMeta()
	require.NoError(t, NewMetadataRepository(m).Save(context.Background(), nil))
	require.Equal(t, "[]", string(m.data[metadata.KeyHistory]))
}

func TestLoad_Corrupt(t *testing.T) {
	m := newMemMeta()
	m.data[metadata.KeyHistory] = []byte("{not json")
	_, err := NewMetadataRepository(m).Load(context.Background())
	require.ErrorContains(t, err, "corrupt history")
}

func TestLoad_StorageError(t *testing.T) {
	m := newMemMeta()
	m.getErr = errors.New("boom")
	_, err := NewMetadataRepository(m).Load(context.Background())
	require.Error(t, err)
}
