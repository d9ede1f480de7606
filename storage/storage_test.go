package storage

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockEngine(t *testing.T) (*SQLiteEngine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	e, err := OpenDB(context.Background(), sqlx.NewDb(db, "sqlmock"),
		WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e, mock
}

func TestExecErrorWrapping(t *testing.T) {
	e, mock := newMockEngine(t)
	dbErr := errors.New("disk I/O error")
	mock.ExpectQuery("SELECT 1").WillReturnError(dbErr)

	_, err := e.Exec("SELECT 1")
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "storage: exec:")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionSyncStatements(t *testing.T) {
	t.Run("commit_sequence", func(t *testing.T) {
		e, mock := newMockEngine(t)
		mock.ExpectExec("BEGIN IMMEDIATE").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("INSERT INTO t").WillReturnRows(sqlmock.NewRows(nil))
		mock.ExpectExec("COMMIT").WillReturnResult(sqlmock.NewResult(0, 0))

		err := e.TransactionSync(func() error {
			_, err := e.Exec("INSERT INTO t DEFAULT VALUES")
			return err
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback_sequence", func(t *testing.T) {
		e, mock := newMockEngine(t)
		mock.ExpectExec("BEGIN IMMEDIATE").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("ROLLBACK").WillReturnResult(sqlmock.NewResult(0, 0))

		boom := errors.New("boom")
		err := e.TransactionSync(func() error { return boom })
		require.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin_failure", func(t *testing.T) {
		e, mock := newMockEngine(t)
		mock.ExpectExec("BEGIN IMMEDIATE").WillReturnError(errors.New("locked"))

		err := e.TransactionSync(func() error {
			t.Fatal("callback must not run when begin fails")
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage: begin:")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewCursor(t *testing.T) {
	rows := []Row{{"n": int64(1)}, {"n": int64(2)}}
	cur := NewCursor([]string{"n"}, rows)

	assert.Nil(t, cur.Row(), "Row before Next is nil")
	var got []Row
	for cur.Next() {
		got = append(got, cur.Row())
	}
	assert.Equal(t, rows, got)
	assert.False(t, cur.Next(), "exhausted cursor stays exhausted")
	assert.NoError(t, cur.Err())
	assert.Equal(t, []string{"n"}, cur.Columns())
}
