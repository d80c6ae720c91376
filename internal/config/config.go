package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for a jobdigest run.
type Config struct {
	Filters       Filters
	Sources       []SourceConfig
	HTTPTimeout   time.Duration // per-request client timeout
	SourcePause   time.Duration // politeness gap between sources
	WatchInterval time.Duration // cycle interval for watch mode
	MaxRetries    int           // extra attempts on retryable fetch errors
	RetryDelay    time.Duration // base backoff delay between attempts
	SnapshotFile  string        // debug JSON dump path
	OutputFile    string        // CI key/value sink, from GITHUB_OUTPUT
	RapidAPIKey   string        // unlocks the key-gated source
	Store         StoreConfig
	Notification  NotificationConfig
}

// Filters holds the matching criteria applied inside every source.
type Filters struct {
	MinSalary          int      // monthly floor
	JobTitles          []string // lower-cased, OR-matched as substrings
	Keywords           []string // lower-cased, OR-matched as substrings
	Region             string   // "asia" enables the location gate, anything else disables it
	AnnualSalaryCutoff int      // parsed figures above this are treated as annual
}

// SourceConfig enables or disables a single upstream source by name.
type SourceConfig struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
}

// StoreConfig controls the optional seen-store used for notify-once runs.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

const (
	defaultMinSalary          = 4000
	defaultAnnualSalaryCutoff = 100000
	defaultRegion             = "asia"
	defaultHTTPTimeout        = 10 * time.Second
	defaultSourcePause        = 1 * time.Second
	defaultWatchInterval      = 1 * time.Hour
	defaultRetryDelay         = 5 * time.Second
	defaultSnapshotFile       = "jobs_found.json"
)

// Default returns the configuration used when no file and no environment
// overrides are present: all sources enabled, asia region, log notifier.
func Default() *Config {
	return &Config{
		Filters: Filters{
			MinSalary:          defaultMinSalary,
			JobTitles:          []string{"software engineer"},
			Keywords:           []string{"ai"},
			Region:             defaultRegion,
			AnnualSalaryCutoff: defaultAnnualSalaryCutoff,
		},
		Sources: []SourceConfig{
			{Name: "remoteok", Enabled: true},
			{Name: "firehose", Enabled: true},
			{Name: "jsearch", Enabled: true},
			{Name: "jobicy", Enabled: true},
		},
		HTTPTimeout:   defaultHTTPTimeout,
		SourcePause:   defaultSourcePause,
		WatchInterval: defaultWatchInterval,
		MaxRetries:    0,
		RetryDelay:    defaultRetryDelay,
		SnapshotFile:  defaultSnapshotFile,
		Notification:  NotificationConfig{Type: "log"},
	}
}

// rawConfig mirrors the YAML layout (snake_case keys, durations as strings,
// pointers where absence must stay distinguishable from the zero value).
type rawConfig struct {
	Filters       rawFilters         `yaml:"filters"`
	Sources       []SourceConfig     `yaml:"sources"`
	HTTPTimeout   string             `yaml:"http_timeout"`
	SourcePause   string             `yaml:"source_pause"`
	WatchInterval string             `yaml:"watch_interval"`
	MaxRetries    *int               `yaml:"max_retries"`
	RetryDelay    string             `yaml:"retry_delay"`
	SnapshotFile  string             `yaml:"snapshot_file"`
	Store         StoreConfig        `yaml:"store"`
	Notification  NotificationConfig `yaml:"notification"`
}

type rawFilters struct {
	MinSalary          *int     `yaml:"min_salary"`
	JobTitles          []string `yaml:"job_titles"`
	Keywords           []string `yaml:"keywords"`
	Region             *string  `yaml:"region"`
	AnnualSalaryCutoff *int     `yaml:"annual_salary_cutoff"`
}

// Load builds the effective configuration: defaults first, then the optional
// YAML file at path (skipped entirely when path is empty), then environment
// variable overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.Filters.JobTitles = normalizeTokens(cfg.Filters.JobTitles)
	cfg.Filters.Keywords = normalizeTokens(cfg.Filters.Keywords)
	cfg.Filters.Region = strings.ToLower(strings.TrimSpace(cfg.Filters.Region))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	// Expand ${VAR} references so secrets can live in the environment.
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if raw.Filters.MinSalary != nil {
		cfg.Filters.MinSalary = *raw.Filters.MinSalary
	}
	if raw.Filters.JobTitles != nil {
		cfg.Filters.JobTitles = raw.Filters.JobTitles
	}
	if raw.Filters.Keywords != nil {
		cfg.Filters.Keywords = raw.Filters.Keywords
	}
	if raw.Filters.Region != nil {
		cfg.Filters.Region = *raw.Filters.Region
	}
	if raw.Filters.AnnualSalaryCutoff != nil {
		cfg.Filters.AnnualSalaryCutoff = *raw.Filters.AnnualSalaryCutoff
	}
	if raw.Sources != nil {
		cfg.Sources = raw.Sources
	}
	if raw.MaxRetries != nil {
		cfg.MaxRetries = *raw.MaxRetries
	}
	if raw.SnapshotFile != "" {
		cfg.SnapshotFile = raw.SnapshotFile
	}
	cfg.Store = raw.Store
	if raw.Notification.Type != "" || raw.Notification.WebhookURL != "" {
		cfg.Notification = raw.Notification
	}

	if err := overrideDuration(&cfg.HTTPTimeout, "http_timeout", raw.HTTPTimeout); err != nil {
		return err
	}
	if err := overrideDuration(&cfg.SourcePause, "source_pause", raw.SourcePause); err != nil {
		return err
	}
	if err := overrideDuration(&cfg.WatchInterval, "watch_interval", raw.WatchInterval); err != nil {
		return err
	}
	if err := overrideDuration(&cfg.RetryDelay, "retry_delay", raw.RetryDelay); err != nil {
		return err
	}

	return nil
}

// overrideDuration parses val into dst, leaving dst untouched when val is empty.
func overrideDuration(dst *time.Duration, field, val string) error {
	if val == "" {
		return nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("parse %s %q: %w", field, val, err)
	}
	*dst = d
	return nil
}

// applyEnv layers the environment on top of whatever the file set. A variable
// that is set but empty still counts as set, matching the usual CI behavior
// where an empty secret expands to an empty string.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("MIN_SALARY"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse MIN_SALARY %q: %w", v, err)
		}
		cfg.Filters.MinSalary = n
	}
	if v, ok := os.LookupEnv("JOB_TITLES"); ok {
		cfg.Filters.JobTitles = strings.Split(v, ",")
	}
	if v, ok := os.LookupEnv("KEYWORDS"); ok {
		cfg.Filters.Keywords = strings.Split(v, ",")
	}
	if v, ok := os.LookupEnv("REGION"); ok {
		cfg.Filters.Region = v
	}
	if v, ok := os.LookupEnv("RAPIDAPI_KEY"); ok {
		cfg.RapidAPIKey = v
	}
	if v, ok := os.LookupEnv("SLACK_WEBHOOK_URL"); ok && v != "" {
		cfg.Notification = NotificationConfig{Type: "slack", WebhookURL: v}
	}
	if v, ok := os.LookupEnv("GITHUB_OUTPUT"); ok {
		cfg.OutputFile = v
	}
	return nil
}

// normalizeTokens lowercases and trims each token and drops empties. An empty
// result list means "match everything" to the filter, which preserves the
// behavior of an empty JOB_TITLES or KEYWORDS value.
func normalizeTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(strings.ToLower(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func validate(cfg *Config) error {
	if cfg.Filters.MinSalary < 0 {
		return fmt.Errorf("filters.min_salary must not be negative, got %d", cfg.Filters.MinSalary)
	}
	if cfg.Filters.AnnualSalaryCutoff <= 0 {
		return fmt.Errorf("filters.annual_salary_cutoff must be positive, got %d", cfg.Filters.AnnualSalaryCutoff)
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %v", cfg.HTTPTimeout)
	}
	if cfg.WatchInterval <= 0 {
		return fmt.Errorf("watch_interval must be positive, got %v", cfg.WatchInterval)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative, got %d", cfg.MaxRetries)
	}

	enabled := 0
	for _, s := range cfg.Sources {
		if s.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one source must be enabled")
	}

	if cfg.Store.Enabled && cfg.Store.Path == "" {
		return fmt.Errorf("store.path is required when store.enabled is true")
	}

	switch cfg.Notification.Type {
	case "", "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}

	return nil
}
