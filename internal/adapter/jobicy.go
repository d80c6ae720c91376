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

const jobicyURL = "https://jobicy.com/api/v2/remote-jobs"

// jobicyGeos is the fixed list of target locations queried one by one.
var jobicyGeos = []string{"singapore", "japan", "india", "vietnam"}

// Ensure JobicyAdapter implements model.Source.
var _ model.Source = (*JobicyAdapter)(nil)

// JobicyAdapter queries the Jobicy remote-jobs API once per target geo. A
// location that errors out is logged and skipped while the remaining
// locations still contribute.
type JobicyAdapter struct {
	filter  model.JobFilter
	client  *http.Client
	limiter *ratelimit.HostLimiter
	logger  *slog.Logger
}

// NewJobicyAdapter creates an adapter for the Jobicy API.
func NewJobicyAdapter(filter model.JobFilter, client *http.Client, limiter *ratelimit.HostLimiter, logger *slog.Logger) *JobicyAdapter {
	return &JobicyAdapter{filter: filter, client: client, limiter: limiter, logger: logger}
}

// jobicyResponse is the envelope returned by the API.
type jobicyResponse struct {
	Jobs []jobicyJob `json:"jobs"`
}

// jobicyJob is the subset of a Jobicy posting this adapter maps.
type jobicyJob struct {
	Title     string `json:"jobTitle"`
	Company   string `json:"companyName"`
	Geo       string `json:"jobGeo"`
	URL       string `json:"url"`
	Excerpt   string `json:"jobExcerpt"`
	PubDate   string `json:"pubDate"`
	SalaryMin int    `json:"annualSalaryMin"`
	SalaryMax int    `json:"annualSalaryMax"`
}

func (a *JobicyAdapter) Name() string { return "jobicy" }

// FetchJobs queries every target geo and merges the matching postings.
func (a *JobicyAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	for _, geo := range jobicyGeos {
		if ctx.Err() != nil {
			return jobs, ctx.Err()
		}
		list, err := a.fetchGeo(ctx, geo)
		if err != nil {
			a.logger.Warn("jobicy location failed", "geo", geo, "error", err)
			continue
		}
		jobs = append(jobs, list...)
	}
	return jobs, nil
}

func (a *JobicyAdapter) fetchGeo(ctx context.Context, geo string) ([]model.Job, error) {
	q := url.Values{}
	q.Set("count", "50")
	q.Set("geo", geo)

	var resp jobicyResponse
	if err := getJSON(ctx, a.client, a.limiter, jobicyURL+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	jobs := make([]model.Job, 0, len(resp.Jobs))
	for _, item := range resp.Jobs {
		job := model.Job{
			Title:       item.Title,
			Company:     item.Company,
			Location:    item.Geo,
			URL:         item.URL,
			Description: item.Excerpt,
			Source:      "Jobicy",
			Salary:      jobicySalary(item),
			PostedDate:  item.PubDate,
		}
		if !a.filter.Match(job) {
			continue
		}
		finalize(&job)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func jobicySalary(j jobicyJob) string {
	switch {
	case j.SalaryMin > 0 && j.SalaryMax > 0:
		return fmt.Sprintf("$%d - $%d", j.SalaryMin, j.SalaryMax)
	case j.SalaryMin > 0:
		return fmt.Sprintf("$%d", j.SalaryMin)
	case j.SalaryMax > 0:
		return fmt.Sprintf("$%d", j.SalaryMax)
	}
	return ""
}
