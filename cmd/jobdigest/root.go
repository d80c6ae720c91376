package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"jobdigest/internal/adapter"
	"jobdigest/internal/config"
	"jobdigest/internal/model"
	"jobdigest/internal/notifier"
	"jobdigest/internal/ratelimit"
	"jobdigest/internal/retry"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobdigest",
	Short: "Scrape remote job boards and emit a filtered digest",
	Long:  "JobDigest scrapes public job boards, filters the listings against your criteria, and renders email-ready digest bodies.",
	// Default to `run` so that `jobdigest` with no args performs a digest run.
	// This lets the CI workflow invoke the binary directly.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBDIGEST_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBDIGEST_CONFIG env var > "./config.yaml"
// when present. With no file at all, defaults plus environment overrides
// apply, which is how the CI workflow runs.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBDIGEST_CONFIG"); env != "" {
			path = env
		} else if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

// buildSources assembles the enabled source adapters in config order,
// wrapping each in the retry decorator when retries are configured.
func buildSources(cfg *config.Config, jobFilter model.JobFilter, httpClient *http.Client, limiter *ratelimit.HostLimiter, logger *slog.Logger) []model.Source {
	var sources []model.Source
	for _, sc := range cfg.Sources {
		if !sc.Enabled {
			continue
		}

		var src model.Source
		switch sc.Name {
		case "remoteok":
			src = adapter.NewRemoteOKAdapter(jobFilter, httpClient, limiter)
		case "firehose":
			src = adapter.NewFeedAdapter(nil, jobFilter, httpClient, limiter, logger)
		case "jsearch":
			src = adapter.NewJSearchAdapter(cfg.RapidAPIKey, jsearchQuery(cfg), jobFilter, httpClient, limiter, logger)
		case "jobicy":
			src = adapter.NewJobicyAdapter(jobFilter, httpClient, limiter, logger)
		default:
			logger.Warn("unknown source, skipping", "source", sc.Name)
			continue
		}

		if cfg.MaxRetries > 0 {
			src = retry.NewRetrySource(src, cfg.MaxRetries, cfg.RetryDelay, logger)
		}
		sources = append(sources, src)
		logger.Info("registered source", "source", sc.Name)
	}
	return sources
}

// jsearchQuery derives the search term from the first configured job title.
func jsearchQuery(cfg *config.Config) string {
	if len(cfg.Filters.JobTitles) > 0 {
		return cfg.Filters.JobTitles[0]
	}
	return "software engineer"
}
