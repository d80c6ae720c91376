package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"jobdigest/internal/browse"
	"jobdigest/internal/filter"
	"jobdigest/internal/model"
	"jobdigest/internal/pipeline"
	"jobdigest/internal/ratelimit"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse matched jobs interactively (TUI)",
	Long:  "Scrapes every enabled source behind a progress spinner, then opens a list/detail view over the matched jobs.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The pipeline runs while the loader TUI owns the terminal, so its log
	// output has to be discarded or it corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	jobFilter := filter.NewCriteriaFilter(cfg.Filters)
	limiter := ratelimit.NewHostLimiter(cfg.SourcePause)

	sources := buildSources(cfg, jobFilter, httpClient, limiter, silentLogger)
	if len(sources) == 0 {
		fmt.Println("No enabled sources in config.")
		return nil
	}

	// No store: browsing shows every current match, seen or not.
	runner := pipeline.NewRunner(sources, nil, cfg.SourcePause, silentLogger)
	jobs, err := browse.RunLoader("job boards", func(ctx context.Context) ([]model.Job, error) {
		return runner.Run(ctx), nil
	})
	if err != nil {
		fmt.Printf("Error fetching jobs: %v\n", err)
		return nil
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs matching your criteria found.")
		return nil
	}

	if err := browse.RunBrowseTUI(jobs); err != nil {
		fmt.Printf("TUI error: %v\n", err)
	}
	return nil
}
