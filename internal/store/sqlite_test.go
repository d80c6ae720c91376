package store

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMarkSeenThenHasSeen(t *testing.T) {
	s := newTestStore(t)

	if err := s.MarkSeen("https://remoteok.com/remote-jobs/123"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}

	seen, err := s.HasSeen("https://remoteok.com/remote-jobs/123")
	if err != nil {
		t.Fatalf("HasSeen: %v", err)
	}
	if !seen {
		t.Error("expected HasSeen to return true after MarkSeen")
	}
}

func TestHasSeenUnknownReturnsFalse(t *testing.T) {
	s := newTestStore(t)

	seen, err := s.HasSeen("https://example.com/does-not-exist")
	if err != nil {
		t.Fatalf("HasSeen: %v", err)
	}
	if seen {
		t.Error("expected HasSeen to return false for unknown URL")
	}
}

func TestMarkSeenKeepsOriginalFirstSeen(t *testing.T) {
	s := newTestStore(t)
	const url = "https://jobicy.com/jobs/456"

	// Backdate the first sighting, then mark again through the API.
	old := time.Now().Add(-72 * time.Hour).Unix()
	if _, err := s.db.Exec("INSERT INTO seen_urls (url, first_seen) VALUES (?, ?)", url, old); err != nil {
		t.Fatalf("seeding row: %v", err)
	}
	if err := s.MarkSeen(url); err != nil {
		t.Fatalf("duplicate MarkSeen: %v", err)
	}

	var got int64
	if err := s.db.QueryRow("SELECT first_seen FROM seen_urls WHERE url = ?", url).Scan(&got); err != nil {
		t.Fatalf("reading first_seen: %v", err)
	}
	if got != old {
		t.Errorf("first_seen = %d, want original %d", got, old)
	}
}

func TestCleanupRemovesOldKeepsFresh(t *testing.T) {
	s := newTestStore(t)

	old := time.Now().Add(-48 * time.Hour).Unix()
	if _, err := s.db.Exec("INSERT INTO seen_urls (url, first_seen) VALUES (?, ?)", "https://x/old", old); err != nil {
		t.Fatalf("seeding old row: %v", err)
	}
	if err := s.MarkSeen("https://x/fresh"); err != nil {
		t.Fatalf("MarkSeen fresh: %v", err)
	}

	if err := s.Cleanup(24 * time.Hour); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	seen, err := s.HasSeen("https://x/old")
	if err != nil {
		t.Fatalf("HasSeen old: %v", err)
	}
	if seen {
		t.Error("expected the backdated entry to be pruned")
	}

	seen, err = s.HasSeen("https://x/fresh")
	if err != nil {
		t.Fatalf("HasSeen fresh: %v", err)
	}
	if !seen {
		t.Error("expected the fresh entry to survive cleanup")
	}
}

func TestIsEmpty(t *testing.T) {
	s := newTestStore(t)

	empty, err := s.IsEmpty()
	if err != nil {
		t.Fatalf("IsEmpty: %v", err)
	}
	if !empty {
		t.Error("expected fresh store to be empty")
	}

	if err := s.MarkSeen("https://x/1"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}

	empty, err = s.IsEmpty()
	if err != nil {
		t.Fatalf("IsEmpty: %v", err)
	}
	if empty {
		t.Error("expected store with one entry to be non-empty")
	}
}

func TestSeenSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.MarkSeen("https://x/keep"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	seen, err := reopened.HasSeen("https://x/keep")
	if err != nil {
		t.Fatalf("HasSeen after reopen: %v", err)
	}
	if !seen {
		t.Error("expected seen state to persist across reopen")
	}
}
