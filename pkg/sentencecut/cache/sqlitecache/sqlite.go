// Package sqlitecache persists conversion results in a SQLite file so
// repeated runs over the same input skip the pipeline entirely.
package sqlitecache

import (
	"bytes"
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/sentencecut/pkg/sentencecut/table"
)

// Cache is a SQLite-backed result cache. No eviction: the workload is
// single-user and entries are small derived tables.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database with WAL mode enabled.
func Open(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	schema := `
CREATE TABLE IF NOT EXISTS results (
	fingerprint TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	csv BLOB NOT NULL
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get implements cache.Cache.
func (c *Cache) Get(ctx context.Context, key string) (*table.Table, bool, error) {
	var encoded []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT csv FROM results WHERE fingerprint = ?", key).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	t, err := table.ReadCSV(encoded, ',')
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// Put implements cache.Cache.
func (c *Cache) Put(ctx context.Context, key string, t *table.Table) error {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return err
	}
	_, err := c.db.ExecContext(ctx, `
INSERT INTO results (fingerprint, created_at, csv) VALUES (?, ?, ?)
ON CONFLICT(fingerprint) DO UPDATE SET created_at = excluded.created_at, csv = excluded.csv`,
		key, time.Now().UTC().Format(time.RFC3339), buf.Bytes())
	return err
}
