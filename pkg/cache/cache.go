// Package cache is a SQLite-backed store for compiled Code, keyed by
// a caller-supplied digest of the AST that produced it (cmd/gbsc uses a
// SHA-256 of the AST's JSON input). It lets a CLI or build pipeline
// skip recompiling a program whose AST hasn't changed.
//
// Compilation itself has no cache of its own — spec.md §5 requires
// compile to be a pure, synchronous pass with no I/O — so this lives
// entirely outside pkg/compiler, one layer up.
package cache

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/chazu/gobstones/pkg/bytecode"
)

// ErrNotFound is returned by Get when key has no cached entry.
var ErrNotFound = errors.New("cache: not found")

// Cache stores serialized bytecode.Code values in a SQLite database.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists. path may be ":memory:" for a process-local
// cache with no persistence.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: set busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS compiled_code (
		digest     TEXT PRIMARY KEY,
		code       BLOB NOT NULL,
		created_at INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: create schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

// Get returns the Code cached under digest, or ErrNotFound if absent.
func (c *Cache) Get(digest string) (*bytecode.Code, error) {
	var data []byte
	err := c.db.QueryRow(`SELECT code FROM compiled_code WHERE digest = ?`, digest).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", digest, err)
	}
	code, err := bytecode.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("cache: decode cached entry %s: %w", digest, err)
	}
	return code, nil
}

// Put stores code under digest, overwriting any prior entry, along
// with unixNano as its recorded creation time.
func (c *Cache) Put(digest string, code *bytecode.Code, unixNano int64) error {
	data, err := code.Serialize()
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", digest, err)
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO compiled_code (digest, code, created_at) VALUES (?, ?, ?)`,
		digest, data, unixNano,
	)
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", digest, err)
	}
	return nil
}

// Delete removes the entry stored under digest, if any.
func (c *Cache) Delete(digest string) error {
	_, err := c.db.Exec(`DELETE FROM compiled_code WHERE digest = ?`, digest)
	if err != nil {
		return fmt.Errorf("cache: delete %s: %w", digest, err)
	}
	return nil
}

// Len reports how many entries the cache currently holds.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT count(*) FROM compiled_code`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache: count: %w", err)
	}
	return n, nil
}
