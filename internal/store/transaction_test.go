package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// assertReleased checks that no pooled connection is still checked out.
func assertReleased(t *testing.T, db *sql.DB) {
	t.Helper()
	assert.Zero(t, db.Stats().InUse, "connection should be returned to the pool")
}

func TestRunInTransaction(t *testing.T) {
	t.Parallel()

	fnErr := errors.New("insert endpoint failed")
	dbErr := errors.New("connection reset")

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		fn      TxFn
		wantErr error
		wantMsg string
	}{
		{
			name: "commits on success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO apis").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, "INSERT INTO apis DEFAULT VALUES")
				return err
			},
		},
		{
			name: "rolls back when fn fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:      func(context.Context, *sql.Tx) error { return fnErr },
			wantErr: fnErr,
		},
		{
			name: "begin failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dbErr)
			},
			fn:      func(context.Context, *sql.Tx) error { return nil },
			wantErr: ErrTransactionFailed,
			wantMsg: "failed to begin transaction",
		},
		{
			name: "commit failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(dbErr)
			},
			fn:      func(context.Context, *sql.Tx) error { return nil },
			wantErr: dbErr,
			wantMsg: "failed to commit transaction",
		},
		{
			name: "rollback failure keeps original error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback().WillReturnError(dbErr)
			},
			fn:      func(context.Context, *sql.Tx) error { return fnErr },
			wantErr: fnErr,
			wantMsg: "error rolling back transaction",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			tc.setup(mock)

			err := RunInTransaction(context.Background(), db, tc.fn)

			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
			assertReleased(t, db)
		})
	}
}

func TestRunInTransaction_Panic(t *testing.T) {
	t.Parallel()

	for _, rollbackErr := range []error{nil, errors.New("rollback failed")} {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(rollbackErr)

		assert.PanicsWithValue(t, "boom", func() {
			_ = RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
				panic("boom")
			})
		})

		assert.NoError(t, mock.ExpectationsWereMet())
		assertReleased(t, db)
	}
}
