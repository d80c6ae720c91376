package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jobdigest/internal/config"
	"jobdigest/internal/digest"
	"jobdigest/internal/filter"
	"jobdigest/internal/model"
	"jobdigest/internal/output"
	"jobdigest/internal/pipeline"
	"jobdigest/internal/ratelimit"
	"jobdigest/internal/store"
)

var notifyFlag bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the digest pipeline once",
	Long:  "Scrapes every enabled source, writes the snapshot and CI outputs, and exits. Pass --notify to also deliver the digest through the configured notifier.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&notifyFlag, "notify", false, "deliver matched jobs through the configured notifier")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"sources", len(cfg.Sources),
		"job_titles", cfg.Filters.JobTitles,
		"keywords", cfg.Filters.Keywords,
		"region", cfg.Filters.Region,
		"min_salary", cfg.Filters.MinSalary,
	)

	var jobStore model.JobStore
	if cfg.Store.Enabled {
		sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer sqlStore.Close()
		jobStore = sqlStore
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	jobFilter := filter.NewCriteriaFilter(cfg.Filters)
	limiter := ratelimit.NewHostLimiter(cfg.SourcePause)

	sources := buildSources(cfg, jobFilter, httpClient, limiter, logger)
	if len(sources) == 0 {
		logger.Error("no sources to scrape")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(sources, jobStore, cfg.SourcePause, logger)
	jobs := runner.Run(ctx)

	if err := emitOutputs(cfg, jobs, time.Now()); err != nil {
		logger.Error("failed to write outputs", "error", err)
		os.Exit(1)
	}

	if notifyFlag && len(jobs) > 0 {
		n := setupNotifier(cfg, httpClient, logger)
		if err := n.Notify(jobs); err != nil {
			// Skip the seen-store commit so the next run retries these jobs.
			logger.Error("notification failed", "error", err)
			return nil
		}
	}

	runner.CommitSeen(jobs)
	logger.Info("digest complete", "matched", len(jobs))
	return nil
}

// emitOutputs writes the snapshot, both digest bodies, and the found_jobs
// flag. Everything is written even when no jobs matched, so the downstream
// email step always has well-formed inputs.
func emitOutputs(cfg *config.Config, jobs []model.Job, now time.Time) error {
	if err := output.WriteSnapshot(cfg.SnapshotFile, jobs); err != nil {
		return err
	}

	out, err := output.Open(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := out.Set("found_jobs", strconv.FormatBool(len(jobs) > 0)); err != nil {
		return err
	}
	if err := out.SetMultiline("email_body", digest.RenderText(jobs, now)); err != nil {
		return err
	}
	return out.SetMultiline("email_body_html", digest.RenderHTML(jobs, now))
}
