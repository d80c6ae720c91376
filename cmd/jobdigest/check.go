package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jobdigest/internal/digest"
	"jobdigest/internal/filter"
	"jobdigest/internal/pipeline"
	"jobdigest/internal/ratelimit"
	"jobdigest/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Scrape once, print matches, exit",
	Long:  "One-shot scrape: fetches every enabled source, prints the matched jobs as a text digest, exits. Writes no outputs and marks nothing as seen.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("check mode: no jobs will be marked as seen")

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

	runner := pipeline.NewRunner(sources, store.NewNopStore(), cfg.SourcePause, logger)
	jobs := runner.Run(ctx)

	fmt.Println(digest.RenderText(jobs, time.Now()))
	logger.Info("check complete", "matched", len(jobs))
	return nil
}
