package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"jobdigest/internal/model"
	"jobdigest/internal/ratelimit"
)

// defaultFeedEndpoints are the JSON job feeds polled by the firehose adapter.
var defaultFeedEndpoints = []string{
	"https://www.thefirehose.dev/jobs.json",
}

// Ensure FeedAdapter implements model.Source.
var _ model.Source = (*FeedAdapter)(nil)

// FeedAdapter polls plain JSON job feeds. Each endpoint may serve either a
// top-level array of postings or an object wrapping one in a "jobs" field.
// A failing endpoint is logged and skipped so the others still contribute.
type FeedAdapter struct {
	endpoints []string
	filter    model.JobFilter
	client    *http.Client
	limiter   *ratelimit.HostLimiter
	logger    *slog.Logger
}

// NewFeedAdapter creates an adapter over the given feed endpoints. A nil
// slice selects the default feed list.
func NewFeedAdapter(endpoints []string, filter model.JobFilter, client *http.Client, limiter *ratelimit.HostLimiter, logger *slog.Logger) *FeedAdapter {
	if endpoints == nil {
		endpoints = defaultFeedEndpoints
	}
	return &FeedAdapter{endpoints: endpoints, filter: filter, client: client, limiter: limiter, logger: logger}
}

// feedJob is the common field set served by the aggregated feeds.
type feedJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Salary      string `json:"salary"`
	PostedDate  string `json:"posted_date"`
}

func (a *FeedAdapter) Name() string { return "firehose" }

// FetchJobs polls every configured endpoint and merges the matching entries.
func (a *FeedAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	for _, endpoint := range a.endpoints {
		if ctx.Err() != nil {
			return jobs, ctx.Err()
		}
		list, err := a.fetchEndpoint(ctx, endpoint)
		if err != nil {
			a.logger.Warn("feed endpoint failed", "endpoint", endpoint, "error", err)
			continue
		}
		jobs = append(jobs, list...)
	}
	return jobs, nil
}

func (a *FeedAdapter) fetchEndpoint(ctx context.Context, endpoint string) ([]model.Job, error) {
	var body json.RawMessage
	if err := getJSON(ctx, a.client, a.limiter, endpoint, nil, &body); err != nil {
		return nil, err
	}

	var items []feedJob
	if err := json.Unmarshal(body, &items); err != nil {
		// Not a bare array; try the wrapped form.
		var wrapped struct {
			Jobs []feedJob `json:"jobs"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("decode feed: %w", err)
		}
		items = wrapped.Jobs
	}

	source := endpoint
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		source = u.Host
	}

	jobs := make([]model.Job, 0, len(items))
	for _, item := range items {
		job := model.Job{
			Title:       item.Title,
			Company:     item.Company,
			Location:    item.Location,
			URL:         item.URL,
			Description: item.Description,
			Source:      source,
			Salary:      item.Salary,
			PostedDate:  item.PostedDate,
		}
		if !a.filter.Match(job) {
			continue
		}
		finalize(&job)
		jobs = append(jobs, job)
	}
	return jobs, nil
}
