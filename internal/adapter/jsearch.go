package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"jobdigest/internal/model"
	"jobdigest/internal/ratelimit"
)

const (
	jsearchURL  = "https://jsearch.p.rapidapi.com/search"
	jsearchHost = "jsearch.p.rapidapi.com"
)

// Ensure JSearchAdapter implements model.Source.
var _ model.Source = (*JSearchAdapter)(nil)

// JSearchAdapter queries the JSearch aggregator on RapidAPI. The API needs a
// subscription key; without one the adapter reports zero records instead of
// failing the whole run.
type JSearchAdapter struct {
	apiKey  string
	query   string
	filter  model.JobFilter
	client  *http.Client
	limiter *ratelimit.HostLimiter
	logger  *slog.Logger
}

// NewJSearchAdapter creates an adapter searching JSearch for the given query.
func NewJSearchAdapter(apiKey, query string, filter model.JobFilter, client *http.Client, limiter *ratelimit.HostLimiter, logger *slog.Logger) *JSearchAdapter {
	return &JSearchAdapter{apiKey: apiKey, query: query, filter: filter, client: client, limiter: limiter, logger: logger}
}

// jsearchResponse is the search envelope returned by the API.
type jsearchResponse struct {
	Data []jsearchJob `json:"data"`
}

// jsearchJob is the subset of a search hit this adapter maps.
type jsearchJob struct {
	Title       string   `json:"job_title"`
	Employer    string   `json:"employer_name"`
	City        string   `json:"job_city"`
	Country     string   `json:"job_country"`
	IsRemote    bool     `json:"job_is_remote"`
	ApplyLink   string   `json:"job_apply_link"`
	Description string   `json:"job_description"`
	PostedAt    string   `json:"job_posted_at_datetime_utc"`
	MinSalary   *float64 `json:"job_min_salary"`
	MaxSalary   *float64 `json:"job_max_salary"`
}

func (a *JSearchAdapter) Name() string { return "jsearch" }

// FetchJobs runs one search page and returns the hits passing the filter.
func (a *JSearchAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	if a.apiKey == "" {
		a.logger.Info("skipping jsearch: RAPIDAPI_KEY not set")
		return nil, nil
	}

	q := url.Values{}
	q.Set("query", a.query)
	q.Set("page", "1")
	q.Set("num_pages", "1")

	header := http.Header{}
	header.Set("X-RapidAPI-Key", a.apiKey)
	header.Set("X-RapidAPI-Host", jsearchHost)

	var resp jsearchResponse
	if err := getJSON(ctx, a.client, a.limiter, jsearchURL+"?"+q.Encode(), header, &resp); err != nil {
		return nil, fmt.Errorf("jsearch fetch: %w", err)
	}

	jobs := make([]model.Job, 0, len(resp.Data))
	for _, item := range resp.Data {
		job := model.Job{
			Title:       item.Title,
			Company:     item.Employer,
			Location:    jsearchLocation(item),
			URL:         item.ApplyLink,
			Description: item.Description,
			Source:      "JSearch",
			Salary:      jsearchSalary(item),
			PostedDate:  item.PostedAt,
		}
		if !a.filter.Match(job) {
			continue
		}
		finalize(&job)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// jsearchLocation assembles a display location from the city and country
// fields, marking remote hits so the region gate can see the country.
func jsearchLocation(j jsearchJob) string {
	switch {
	case j.City != "" && j.Country != "":
		return j.City + ", " + j.Country
	case j.City != "":
		return j.City
	case j.Country != "" && j.IsRemote:
		return "Remote, " + j.Country
	case j.Country != "":
		return j.Country
	case j.IsRemote:
		return "Remote"
	}
	return ""
}

func jsearchSalary(j jsearchJob) string {
	switch {
	case j.MinSalary != nil && j.MaxSalary != nil:
		return fmt.Sprintf("$%.0f - $%.0f", *j.MinSalary, *j.MaxSalary)
	case j.MinSalary != nil:
		return fmt.Sprintf("$%.0f", *j.MinSalary)
	case j.MaxSalary != nil:
		return fmt.Sprintf("$%.0f", *j.MaxSalary)
	}
	return ""
}
