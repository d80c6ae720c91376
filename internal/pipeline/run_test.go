package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"jobdigest/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubSource returns fixed jobs or a fixed error.
type stubSource struct {
	name string
	jobs []model.Job
	err  error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchJobs(context.Context) ([]model.Job, error) {
	return s.jobs, s.err
}

// funcSource delegates to a function, for tests needing side effects.
type funcSource struct {
	name string
	fn   func(ctx context.Context) ([]model.Job, error)
}

func (s *funcSource) Name() string { return s.name }

func (s *funcSource) FetchJobs(ctx context.Context) ([]model.Job, error) {
	return s.fn(ctx)
}

// stubStore is an in-memory JobStore with a switchable read error.
type stubStore struct {
	seen       map[string]bool
	hasSeenErr error
	marked     []string
}

func (s *stubStore) HasSeen(url string) (bool, error) {
	if s.hasSeenErr != nil {
		return false, s.hasSeenErr
	}
	return s.seen[url], nil
}

func (s *stubStore) MarkSeen(url string) error {
	s.marked = append(s.marked, url)
	return nil
}

func (s *stubStore) Cleanup(time.Duration) error { return nil }

func (s *stubStore) IsEmpty() (bool, error) { return len(s.seen) == 0, nil }

func TestRun_MergesAndDedupes(t *testing.T) {
	a := &stubSource{name: "a", jobs: []model.Job{
		{Title: "One", URL: "https://x/1"},
		{Title: "Two", URL: "https://x/2"},
	}}
	b := &stubSource{name: "b", jobs: []model.Job{
		{Title: "One again", URL: "https://x/1"},
		{Title: "Three", URL: "https://x/3"},
	}}

	r := NewRunner([]model.Source{a, b}, nil, 0, discardLogger())
	got := r.Run(context.Background())

	if len(got) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(got))
	}
	if got[0].URL != "https://x/1" || got[1].URL != "https://x/2" || got[2].URL != "https://x/3" {
		t.Errorf("unexpected order: %+v", got)
	}
	if got[0].Title != "One again" {
		t.Errorf("expected cross-source duplicate to take the later record, got %q", got[0].Title)
	}
}

func TestRun_SourceFailureIsNonFatal(t *testing.T) {
	bad := &stubSource{name: "bad", err: &model.HTTPError{StatusCode: 403, Err: errors.New("forbidden")}}
	good := &stubSource{name: "good", jobs: []model.Job{{Title: "One", URL: "https://x/1"}}}

	r := NewRunner([]model.Source{bad, good}, nil, 0, discardLogger())
	got := r.Run(context.Background())

	if len(got) != 1 {
		t.Fatalf("expected the healthy source's job, got %d jobs", len(got))
	}
}

func TestRun_PartialResultsSurviveSourceError(t *testing.T) {
	// A multi-endpoint source may hand back what it collected before failing;
	// those records must not be discarded with the error.
	partial := &stubSource{
		name: "partial",
		jobs: []model.Job{{Title: "One", URL: "https://x/1"}},
		err:  errors.New("second endpoint timed out"),
	}

	r := NewRunner([]model.Source{partial}, nil, 0, discardLogger())
	got := r.Run(context.Background())

	if len(got) != 1 || got[0].URL != "https://x/1" {
		t.Fatalf("expected the partial result kept, got %+v", got)
	}
}

func TestRun_AllSourcesFail(t *testing.T) {
	bad := &stubSource{name: "bad", err: errors.New("connection refused")}
	worse := &stubSource{name: "worse", err: errors.New("timeout")}

	r := NewRunner([]model.Source{bad, worse}, nil, 0, discardLogger())
	got := r.Run(context.Background())

	if len(got) != 0 {
		t.Fatalf("expected no jobs, got %d", len(got))
	}
}

func TestRun_StoreFiltersSeen(t *testing.T) {
	src := &stubSource{name: "a", jobs: []model.Job{
		{Title: "Old", URL: "https://x/old"},
		{Title: "New", URL: "https://x/new"},
	}}
	store := &stubStore{seen: map[string]bool{"https://x/old": true}}

	r := NewRunner([]model.Source{src}, store, 0, discardLogger())
	got := r.Run(context.Background())

	if len(got) != 1 || got[0].URL != "https://x/new" {
		t.Fatalf("expected only the unseen job, got %+v", got)
	}

	r.CommitSeen(got)
	if len(store.marked) != 1 || store.marked[0] != "https://x/new" {
		t.Fatalf("expected the new job marked seen, got %v", store.marked)
	}
}

func TestRun_StoreErrorFailsOpen(t *testing.T) {
	src := &stubSource{name: "a", jobs: []model.Job{{Title: "One", URL: "https://x/1"}}}
	store := &stubStore{hasSeenErr: errors.New("disk gone")}

	r := NewRunner([]model.Source{src}, store, 0, discardLogger())
	got := r.Run(context.Background())

	if len(got) != 1 {
		t.Fatalf("expected job kept when the store is unreadable, got %d", len(got))
	}
}

func TestRun_CommitSeenWithoutStore(t *testing.T) {
	r := NewRunner(nil, nil, 0, discardLogger())
	// Must not panic.
	r.CommitSeen([]model.Job{{URL: "https://x/1"}})
}

func TestRun_CancelSkipsRemainingSources(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	first := &funcSource{name: "first", fn: func(context.Context) ([]model.Job, error) {
		cancel()
		return []model.Job{{Title: "One", URL: "https://x/1"}}, nil
	}}
	second := &stubSource{name: "second", jobs: []model.Job{{Title: "Two", URL: "https://x/2"}}}

	r := NewRunner([]model.Source{first, second}, nil, time.Hour, discardLogger())
	got := r.Run(ctx)

	if len(got) != 1 || got[0].URL != "https://x/1" {
		t.Fatalf("expected only the first source's job, got %+v", got)
	}
}

func TestDescribeFetchError(t *testing.T) {
	plain := errors.New("connection refused")
	if got := describeFetchError(plain); got != "connection refused" {
		t.Errorf("unexpected message: %q", got)
	}

	denied := &model.HTTPError{StatusCode: 403, Err: errors.New("forbidden")}
	if got := describeFetchError(denied); !strings.Contains(got, "access denied") {
		t.Errorf("expected access-denied message for 403, got %q", got)
	}

	server := &model.HTTPError{StatusCode: 500, Err: errors.New("boom")}
	if got := describeFetchError(server); strings.Contains(got, "access denied") {
		t.Errorf("unexpected access-denied message for 500: %q", got)
	}
}
