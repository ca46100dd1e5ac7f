/*
Package sqlite persists the store snapshot in a SQLite database.

PURPOSE:
  A durable Backend that keeps the serialized state blob in a single
  keyed row. The snapshot model stays exactly as the store defines it -
  SQLite contributes atomic replace, crash recovery, and a file format
  that tooling can inspect.

KEY TABLE:
  snapshots(key TEXT PRIMARY KEY, body BLOB NOT NULL, updated_at TEXT)

WAL MODE:
  The database is opened with WAL (Write-Ahead Logging):
  - Readers don't block the single writer
  - Better crash recovery than rollback journaling

USAGE:
  backend, err := sqlite.Open("./data/invoice.db")
  if err != nil {
      log.Fatal(err)
  }
  st, err := store.Open(ctx, backend, logger)

SEE ALSO:
  - store/store.go: Backend interface and snapshot lifecycle
  - store/file/file.go: Plain-file alternative
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/felixlvh/invoice/store"
)

type Backend struct {
	db *sql.DB
}

// Open opens a SQLite-backed snapshot store at the given path.
// Use ":memory:" for an in-memory database.
func Open(path string) (*Backend, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	b := &Backend{db: db}
	if err := b.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return b, nil
}

func (b *Backend) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := b.db.Exec(schema)
	return err
}

func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	var body []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT body FROM snapshots WHERE key = ?`, store.StorageKey).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (b *Backend) Save(ctx context.Context, blob []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at`,
		store.StorageKey, blob, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (b *Backend) Close() error {
	return b.db.Close()
}
