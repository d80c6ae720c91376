package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"jobdigest/internal/model"
)

// Ensure SQLiteStore implements model.JobStore.
var _ model.JobStore = (*SQLiteStore)(nil)

const schema = `CREATE TABLE IF NOT EXISTS seen_urls (
	url        TEXT PRIMARY KEY,
	first_seen INTEGER NOT NULL
)`

// SQLiteStore tracks reported job URLs in a SQLite database so repeat
// cycles only surface postings not already delivered. First-seen times are
// stored as unix seconds, which keeps retention comparisons exact.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the seen_urls table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating seen_urls table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// HasSeen reports whether the given job URL has already been recorded.
func (s *SQLiteStore) HasSeen(url string) (bool, error) {
	var seen bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM seen_urls WHERE url = ?)", url).Scan(&seen)
	if err != nil {
		return false, fmt.Errorf("checking seen status for %s: %w", url, err)
	}
	return seen, nil
}

// MarkSeen records a job URL as reported. Recording the same URL again is a
// no-op that keeps the original first-seen time.
func (s *SQLiteStore) MarkSeen(url string) error {
	_, err := s.db.Exec(
		"INSERT INTO seen_urls (url, first_seen) VALUES (?, ?) ON CONFLICT(url) DO NOTHING",
		url, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("marking %s as seen: %w", url, err)
	}
	return nil
}

// Cleanup deletes entries first recorded more than olderThan ago.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan).Unix()
	if _, err := s.db.Exec("DELETE FROM seen_urls WHERE first_seen < ?", cutoff); err != nil {
		return fmt.Errorf("pruning seen urls older than %v: %w", olderThan, err)
	}
	return nil
}

// IsEmpty reports whether the store has no recorded URLs.
func (s *SQLiteStore) IsEmpty() (bool, error) {
	var occupied bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM seen_urls)").Scan(&occupied)
	if err != nil {
		return false, fmt.Errorf("checking if store is empty: %w", err)
	}
	return !occupied, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
