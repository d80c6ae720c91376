package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads, restoring originals afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MIN_SALARY", "JOB_TITLES", "KEYWORDS", "REGION",
		"RAPIDAPI_KEY", "SLACK_WEBHOOK_URL", "GITHUB_OUTPUT",
	} {
		if v, ok := os.LookupEnv(k); ok {
			t.Setenv(k, v) // registers restore on cleanup
			os.Unsetenv(k)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Filters.MinSalary != 4000 {
		t.Errorf("MinSalary = %d, want 4000", cfg.Filters.MinSalary)
	}
	if len(cfg.Filters.JobTitles) != 1 || cfg.Filters.JobTitles[0] != "software engineer" {
		t.Errorf("JobTitles = %v, want [software engineer]", cfg.Filters.JobTitles)
	}
	if len(cfg.Filters.Keywords) != 1 || cfg.Filters.Keywords[0] != "ai" {
		t.Errorf("Keywords = %v, want [ai]", cfg.Filters.Keywords)
	}
	if cfg.Filters.Region != "asia" {
		t.Errorf("Region = %q, want asia", cfg.Filters.Region)
	}
	if cfg.Filters.AnnualSalaryCutoff != 100000 {
		t.Errorf("AnnualSalaryCutoff = %d, want 100000", cfg.Filters.AnnualSalaryCutoff)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if len(cfg.Sources) != 4 {
		t.Fatalf("Sources = %d entries, want 4", len(cfg.Sources))
	}
	for _, s := range cfg.Sources {
		if !s.Enabled {
			t.Errorf("source %s disabled by default", s.Name)
		}
	}
	if cfg.Notification.Type != "log" {
		t.Errorf("Notification.Type = %q, want log", cfg.Notification.Type)
	}
	if cfg.SnapshotFile != "jobs_found.json" {
		t.Errorf("SnapshotFile = %q, want jobs_found.json", cfg.SnapshotFile)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
filters:
  min_salary: 6000
  job_titles: ["Backend Engineer", " Platform Engineer "]
  keywords: ["Go"]
  region: ""
  annual_salary_cutoff: 120000
sources:
  - name: remoteok
    enabled: true
  - name: jobicy
    enabled: false
http_timeout: 15s
max_retries: 2
retry_delay: 2s
snapshot_file: out/jobs.json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Filters.MinSalary != 6000 {
		t.Errorf("MinSalary = %d, want 6000", cfg.Filters.MinSalary)
	}
	want := []string{"backend engineer", "platform engineer"}
	if len(cfg.Filters.JobTitles) != 2 || cfg.Filters.JobTitles[0] != want[0] || cfg.Filters.JobTitles[1] != want[1] {
		t.Errorf("JobTitles = %v, want %v (lower-cased, trimmed)", cfg.Filters.JobTitles, want)
	}
	if cfg.Filters.Region != "" {
		t.Errorf("Region = %q, want empty (explicit empty disables the gate)", cfg.Filters.Region)
	}
	if cfg.Filters.AnnualSalaryCutoff != 120000 {
		t.Errorf("AnnualSalaryCutoff = %d, want 120000", cfg.Filters.AnnualSalaryCutoff)
	}
	if len(cfg.Sources) != 2 || cfg.Sources[1].Enabled {
		t.Errorf("Sources = %+v, want remoteok enabled and jobicy disabled", cfg.Sources)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", cfg.HTTPTimeout)
	}
	if cfg.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", cfg.MaxRetries)
	}
	if cfg.SnapshotFile != "out/jobs.json" {
		t.Errorf("SnapshotFile = %q, want out/jobs.json", cfg.SnapshotFile)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
filters:
  min_salary: 6000
  keywords: ["go"]
`)

	t.Setenv("MIN_SALARY", "8000")
	t.Setenv("JOB_TITLES", "Data Engineer, ML Engineer")
	t.Setenv("KEYWORDS", "python")
	t.Setenv("REGION", "EU")
	t.Setenv("RAPIDAPI_KEY", "k-123")
	t.Setenv("GITHUB_OUTPUT", "/tmp/out")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Filters.MinSalary != 8000 {
		t.Errorf("MinSalary = %d, want 8000 (env wins over file)", cfg.Filters.MinSalary)
	}
	if len(cfg.Filters.JobTitles) != 2 || cfg.Filters.JobTitles[0] != "data engineer" || cfg.Filters.JobTitles[1] != "ml engineer" {
		t.Errorf("JobTitles = %v, want [data engineer, ml engineer]", cfg.Filters.JobTitles)
	}
	if len(cfg.Filters.Keywords) != 1 || cfg.Filters.Keywords[0] != "python" {
		t.Errorf("Keywords = %v, want [python]", cfg.Filters.Keywords)
	}
	if cfg.Filters.Region != "eu" {
		t.Errorf("Region = %q, want eu", cfg.Filters.Region)
	}
	if cfg.RapidAPIKey != "k-123" {
		t.Errorf("RapidAPIKey = %q, want k-123", cfg.RapidAPIKey)
	}
	if cfg.OutputFile != "/tmp/out" {
		t.Errorf("OutputFile = %q, want /tmp/out", cfg.OutputFile)
	}
}

func TestLoad_EmptyTitlesEnvMeansMatchAll(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOB_TITLES", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Filters.JobTitles) != 0 {
		t.Errorf("JobTitles = %v, want empty list (set-but-empty env)", cfg.Filters.JobTitles)
	}
}

func TestLoad_SlackWebhookEnvSelectsSlack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/x")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notification.Type != "slack" {
		t.Errorf("Notification.Type = %q, want slack", cfg.Notification.Type)
	}
	if cfg.Notification.WebhookURL != "https://hooks.slack.com/services/T/B/x" {
		t.Errorf("WebhookURL = %q", cfg.Notification.WebhookURL)
	}
}

func TestLoad_ExpandsEnvInFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_WEBHOOK", "https://hooks.slack.com/services/T/B/y")

	path := writeConfig(t, `
notification:
  type: slack
  webhook_url: ${TEST_WEBHOOK}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notification.WebhookURL != "https://hooks.slack.com/services/T/B/y" {
		t.Errorf("WebhookURL = %q, want expanded env value", cfg.Notification.WebhookURL)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantSub string
	}{
		{
			name:    "bad min salary env",
			env:     map[string]string{"MIN_SALARY": "lots"},
			wantSub: "MIN_SALARY",
		},
		{
			name:    "negative min salary",
			env:     map[string]string{"MIN_SALARY": "-1"},
			wantSub: "min_salary",
		},
		{
			name:    "bad http timeout",
			yaml:    "http_timeout: fast\n",
			wantSub: "http_timeout",
		},
		{
			name:    "all sources disabled",
			yaml:    "sources:\n  - name: remoteok\n    enabled: false\n",
			wantSub: "at least one source",
		},
		{
			name:    "store without path",
			yaml:    "store:\n  enabled: true\n",
			wantSub: "store.path",
		},
		{
			name:    "slack without webhook",
			yaml:    "notification:\n  type: slack\n",
			wantSub: "webhook_url",
		},
		{
			name:    "bad webhook prefix",
			yaml:    "notification:\n  type: slack\n  webhook_url: https://example.com/hook\n",
			wantSub: "hooks.slack.com",
		},
		{
			name:    "unknown notifier type",
			yaml:    "notification:\n  type: pager\n",
			wantSub: "notification.type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeConfig(t, tt.yaml)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load succeeded, want error containing %q", tt.wantSub)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load succeeded, want error for missing file")
	}
}
