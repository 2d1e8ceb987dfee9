package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// The tests run against the same state table the client's local store
// keeps, since batch key writes are the one real WithTx consumer here.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM state;
`)
	require.NoError(t, err)
	return db
}

func storedKeys(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM state`).Scan(&n))
	return n
}

func putKey(ctx context.Context, tx DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO state(key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func TestWithTx_CommitsAllKeysOnSuccess(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := putKey(ctx, tx, "token", "t0"); err != nil {
			return err
		}
		return putKey(ctx, tx, "user", `{"email":"a@b.c"}`)
	})
	require.NoError(t, err)
	require.Equal(t, 2, storedKeys(t, db), "both keys must land together")
}

func TestWithTx_FnErrorRollsBackPartialWrites(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, putKey(ctx, tx, "token", "t0"))
		return errors.New("boom")
	})
	require.Error(t, err)

	require.Equal(t, 0, storedKeys(t, db), "no key may survive a failed batch")
}

func TestWithTx_PanicRollsBackAndRethrows(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, 0, storedKeys(t, db))
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, putKey(ctx, tx, "token", "t0"))
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err, "begin must fail on a closed DB")
}
