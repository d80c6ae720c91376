package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler owns the watch loop: it runs one scrape cycle immediately, then
// ticks on the configured interval until cancelled.
type Scheduler struct {
	cycle    func(ctx context.Context)
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that runs cycle at the given interval.
func NewScheduler(cycle func(ctx context.Context), interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cycle:    cycle,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. It runs one immediate cycle, then ticks on the
// configured interval. It returns nil when ctx is cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "interval", s.interval.String())

	// Run one immediate cycle.
	s.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.cycle(ctx)
		}
	}
}
