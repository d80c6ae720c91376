package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"jobdigest/internal/model"
)

// Runner owns one scrape cycle across all enabled sources:
// fetch each source → merge → dedupe → drop already-seen jobs.
type Runner struct {
	sources []model.Source
	store   model.JobStore
	logger  *slog.Logger
	pause   time.Duration
}

// NewRunner creates a runner over the given sources. store may be nil, in
// which case no seen-job tracking happens and every match is reported.
func NewRunner(sources []model.Source, store model.JobStore, pause time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		sources: sources,
		store:   store,
		logger:  logger,
		pause:   pause,
	}
}

// Run executes one cycle and returns the deduplicated matches, in the order
// their URLs were first seen. A failing source is logged and skipped; the
// cycle never fails as a whole, so callers always reach the render stage.
func (r *Runner) Run(ctx context.Context) []model.Job {
	var all []model.Job
	for i, src := range r.sources {
		if i > 0 {
			// Politeness pause between upstreams.
			select {
			case <-ctx.Done():
				r.logger.Warn("scrape cycle cancelled", "error", ctx.Err())
				return r.unseen(Dedupe(all))
			case <-time.After(r.pause):
			}
		}

		jobs, err := src.FetchJobs(ctx)
		if err != nil {
			// Partial results still count; the error only means the source
			// could not finish.
			r.logger.Warn("source failed", "source", src.Name(), "kept", len(jobs), "error", describeFetchError(err))
		} else {
			r.logger.Info("fetched source", "source", src.Name(), "matched", len(jobs))
		}
		all = append(all, jobs...)
	}

	return r.unseen(Dedupe(all))
}

// unseen filters out jobs the store has already reported. Store errors fail
// open: a job whose status cannot be read is kept rather than dropped.
func (r *Runner) unseen(jobs []model.Job) []model.Job {
	if r.store == nil {
		return jobs
	}

	fresh := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		seen, err := r.store.HasSeen(job.URL)
		if err != nil {
			r.logger.Warn("seen check failed", "url", job.URL, "error", err)
			fresh = append(fresh, job)
			continue
		}
		if !seen {
			fresh = append(fresh, job)
		}
	}
	return fresh
}

// CommitSeen records the given jobs as reported. Called after notification
// succeeds so a failed delivery leaves them eligible for the next cycle.
func (r *Runner) CommitSeen(jobs []model.Job) {
	if r.store == nil {
		return
	}
	for _, job := range jobs {
		if err := r.store.MarkSeen(job.URL); err != nil {
			r.logger.Warn("mark seen failed", "url", job.URL, "error", err)
		}
	}
}

// describeFetchError keeps source failures readable in the log. Access
// denials get called out since boards commonly block non-browser clients.
func describeFetchError(err error) string {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusForbidden {
		return "access denied (source may be blocking automated clients): " + err.Error()
	}
	return err.Error()
}
