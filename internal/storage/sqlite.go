// Package storage persists resolver state between runs. The response cache
// keeps raw catalog replies keyed by request URL, so a resumed run does not
// re-query pages it already fetched.
package storage

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed response cache.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the cache database at the given path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// createSchema creates the cache schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS responses (
			fingerprint TEXT PRIMARY KEY,
			request TEXT NOT NULL,
			status INTEGER NOT NULL,
			body BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached body for a request. Anything that cannot be read
// back is reported as a miss.
func (c *Cache) Get(request string) ([]byte, bool) {
	var body []byte
	err := c.db.QueryRow(
		"SELECT body FROM responses WHERE fingerprint = ?",
		fingerprint(request),
	).Scan(&body)
	if err != nil {
		return nil, false
	}
	return body, true
}

// Put stores the body and HTTP status for a request, replacing any previous
// entry.
func (c *Cache) Put(request string, status int, body []byte) error {
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO responses (fingerprint, request, status, body, fetched_at)
		VALUES (?, ?, ?, ?, ?)
	`, fingerprint(request), request, status, body, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("caching response: %w", err)
	}
	return nil
}

// Count returns the number of cached responses.
func (c *Cache) Count() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM responses").Scan(&count)
	return count, err
}

// fingerprint derives the primary key for a request URL.
func fingerprint(request string) string {
	sum := blake2b.Sum256([]byte(request))
	return hex.EncodeToString(sum[:])
}
