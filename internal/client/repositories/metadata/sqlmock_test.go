package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLStore(db), mock
}

func TestSQLStore_GetErrorNamesKey(t *testing.T) {
	s, mock := newMockStore(t)
	diskErr := errors.New("disk I/O error")

	mock.ExpectQuery(`SELECT value FROM metadata WHERE key = \?`).
		WithArgs(KeyHistory).
		WillReturnError(diskErr)

	_, err := s.Get(context.Background(), KeyHistory)
	require.ErrorIs(t, err, diskErr)
	require.ErrorContains(t, err, `read "twr_history"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_PutUpserts(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO metadata \(key, value\) VALUES \(\?, \?\)\s+ON CONFLICT\(key\) DO UPDATE`).
		WithArgs(KeyToken, []byte("sealed")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Put(context.Background(), KeyToken, []byte("sealed")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_RemoveSingleStatement(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM metadata WHERE key IN \(\?, \?\)`).
		WithArgs(KeyToken, KeyUsername).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, s.Remove(context.Background(), SessionKeys...))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_RemoveError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM metadata WHERE key IN \(\?\)`).
		WithArgs(KeyUsername).
		WillReturnError(errors.New("locked"))

	err := s.Remove(context.Background(), KeyUsername)
	require.ErrorContains(t, err, "remove username: locked")
	require.NoError(t, mock.ExpectationsWereMet())
}
