package model

import (
	"context"
	"time"
)

// Unified representation of a job listing from any upstream board.
// Field values are free text as mapped by the adapters; URL doubles as the
// deduplication key, so a Job with an empty URL never survives the pipeline.
type Job struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Description string `json:"description"` // normalized, truncated by the adapter
	Source      string `json:"source"`
	Salary      string `json:"salary"`      // free text, often "Not specified"
	PostedDate  string `json:"posted_date"` // raw upstream date string, may be empty
}

// Source fetches job listings from one upstream endpoint.
// Implementations apply the configured filter before returning, so the
// returned slice contains matches only. A non-nil error never invalidates
// the returned slice: callers log the error and keep whatever came back.
type Source interface {
	Name() string
	FetchJobs(ctx context.Context) ([]Job, error)
}

// JobStore tracks which job URLs have already been digested.
type JobStore interface {
	HasSeen(url string) (bool, error)
	MarkSeen(url string) error
	Cleanup(olderThan time.Duration) error
	IsEmpty() (bool, error)
}

// Notifier delivers a batch of matched jobs.
type Notifier interface {
	Notify(jobs []Job) error
}

// JobFilter decides whether a job matches the user's criteria.
type JobFilter interface {
	Match(job Job) bool
}
