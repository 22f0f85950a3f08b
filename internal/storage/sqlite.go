// Package storage provides SQLite-based persistence for finished-session
// results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// ResultEntry is one finished session's summary. Lower attempts and shorter
// durations rank better.
type ResultEntry struct {
	ID           int64
	CollectionID string
	Pairs        int
	Attempts     int
	DurationSecs int
	CreatedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			collection_id TEXT NOT NULL,
			pairs INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_collection ON results(collection_id);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(collection_id, attempts ASC, duration_secs ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResult records a finished session and returns its row id.
func (s *Store) SaveResult(collectionID string, pairs, attempts, durationSecs int) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results (collection_id, pairs, attempts, duration_secs) VALUES (?, ?, ?, ?)`,
		collectionID, pairs, attempts, durationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: saving result: %w", err)
	}
	return res.LastInsertId()
}

// BestResults returns the top results for a collection, best first:
// fewest attempts, then shortest duration, then earliest achieved.
func (s *Store) BestResults(collectionID string, limit int) ([]ResultEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, collection_id, pairs, attempts, duration_secs, created_at
		 FROM results
		 WHERE collection_id = ?
		 ORDER BY attempts ASC, duration_secs ASC, created_at ASC
		 LIMIT ?`,
		collectionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: querying results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// RecentResults returns the newest results for a collection.
func (s *Store) RecentResults(collectionID string, limit int) ([]ResultEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, collection_id, pairs, attempts, duration_secs, created_at
		 FROM results
		 WHERE collection_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		collectionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: querying results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// PlayedCollections returns the ids of every collection with at least one
// recorded result, alphabetically.
func (s *Store) PlayedCollections() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT collection_id FROM results ORDER BY collection_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("storage: querying collections: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: scanning collection id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanResults(rows *sql.Rows) ([]ResultEntry, error) {
	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		if err := rows.Scan(&e.ID, &e.CollectionID, &e.Pairs, &e.Attempts, &e.DurationSecs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: scanning result: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
