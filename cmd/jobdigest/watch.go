package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jobdigest/internal/filter"
	"jobdigest/internal/model"
	"jobdigest/internal/pipeline"
	"jobdigest/internal/ratelimit"
	"jobdigest/internal/scheduler"
	"jobdigest/internal/store"
)

// Seen entries older than this are pruned when watch mode starts.
const storeRetention = 90 * 24 * time.Hour

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Scrape on an interval and notify",
	Long:  "Runs the pipeline immediately and then on every interval, delivering new matches through the configured notifier; blocks until SIGINT/SIGTERM.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"interval", cfg.WatchInterval.String(),
		"sources", len(cfg.Sources),
		"job_titles", cfg.Filters.JobTitles,
		"region", cfg.Filters.Region,
	)

	var jobStore model.JobStore
	if cfg.Store.Enabled {
		sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer sqlStore.Close()
		if err := sqlStore.Cleanup(storeRetention); err != nil {
			logger.Warn("store cleanup failed", "error", err)
		}
		jobStore = sqlStore
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	jobFilter := filter.NewCriteriaFilter(cfg.Filters)
	limiter := ratelimit.NewHostLimiter(cfg.SourcePause)
	n := setupNotifier(cfg, httpClient, logger)

	sources := buildSources(cfg, jobFilter, httpClient, limiter, logger)
	if len(sources) == 0 {
		logger.Error("no sources to scrape")
		os.Exit(1)
	}

	runner := pipeline.NewRunner(sources, jobStore, cfg.SourcePause, logger)
	cycle := func(ctx context.Context) {
		jobs := runner.Run(ctx)
		if len(jobs) == 0 {
			logger.Info("no new matching jobs")
			return
		}
		if err := n.Notify(jobs); err != nil {
			// Leave the jobs unmarked so the next cycle retries them.
			logger.Error("notification failed", "error", err)
			return
		}
		runner.CommitSeen(jobs)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(cycle, cfg.WatchInterval, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
