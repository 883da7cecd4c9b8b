package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func countItems(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestWithTx_Commit(t *testing.T) {
	db := newTestDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO items (name) VALUES ($1)`, "a")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx error: %v", err)
	}

	if got := countItems(t, db); got != 1 {
		t.Fatalf("rows = %d, want 1", got)
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := newTestDB(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO items (name) VALUES ($1)`, "a"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped error, got %v", err)
	}

	if got := countItems(t, db); got != 0 {
		t.Fatalf("rows = %d, want 0 after rollback", got)
	}
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := newTestDB(t)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("panic must be rethrown")
			}
		}()
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			if _, err := tx.ExecContext(ctx, `INSERT INTO items (name) VALUES ($1)`, "a"); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	if got := countItems(t, db); got != 0 {
		t.Fatalf("rows = %d, want 0 after panic", got)
	}
}
