// Package storage caches the backend's collections in a local SQLite
// database so list views and reports keep working offline. The cache is
// a snapshot, never an authority: every sync replaces it wholesale with
// whatever the backend returned.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteCache stores fetched collections in a local SQLite database.
type SQLiteCache struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteCache opens (creating if needed) the cache database and
// brings its schema up to date.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	cache := &SQLiteCache{db: db, dbPath: dbPath}
	if err := cache.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return cache, nil
}

// Close closes the database connection.
func (s *SQLiteCache) Close() error {
	return s.db.Close()
}
