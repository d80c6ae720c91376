package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"jobdigest/internal/model"
	"jobdigest/internal/ratelimit"
)

const remoteOKURL = "https://remoteok.com/api"

// Ensure RemoteOKAdapter implements model.Source.
var _ model.Source = (*RemoteOKAdapter)(nil)

// RemoteOKAdapter fetches the public RemoteOK listings feed.
type RemoteOKAdapter struct {
	filter  model.JobFilter
	client  *http.Client
	limiter *ratelimit.HostLimiter
}

// NewRemoteOKAdapter creates an adapter for the RemoteOK API.
func NewRemoteOKAdapter(filter model.JobFilter, client *http.Client, limiter *ratelimit.HostLimiter) *RemoteOKAdapter {
	return &RemoteOKAdapter{filter: filter, client: client, limiter: limiter}
}

// remoteokItem is the subset of a RemoteOK feed entry this adapter maps.
type remoteokItem struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Description string `json:"description"`
	SalaryMin   int    `json:"salary_min"`
	SalaryMax   int    `json:"salary_max"`
	Date        string `json:"date"`
}

func (a *RemoteOKAdapter) Name() string { return "remoteok" }

// FetchJobs retrieves the feed and returns the entries passing the filter.
// Items are decoded one by one so a malformed element drops alone rather
// than failing the batch; the leading API-notice element carries no job
// fields and falls out at the filter.
func (a *RemoteOKAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	var items []json.RawMessage
	if err := getJSON(ctx, a.client, a.limiter, remoteOKURL, nil, &items); err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}

	jobs := make([]model.Job, 0, len(items))
	for _, raw := range items {
		var item remoteokItem
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		job := model.Job{
			Title:       item.Position,
			Company:     item.Company,
			Location:    item.Location,
			URL:         item.URL,
			Description: item.Description,
			Source:      "RemoteOK",
			Salary:      remoteokSalary(item),
			PostedDate:  item.Date,
		}
		if !a.filter.Match(job) {
			continue
		}
		finalize(&job)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// remoteokSalary renders the numeric bounds as the free-text form the salary
// gate parses. Zero bounds mean the posting omitted them.
func remoteokSalary(item remoteokItem) string {
	switch {
	case item.SalaryMin > 0 && item.SalaryMax > 0:
		return fmt.Sprintf("$%d - $%d", item.SalaryMin, item.SalaryMax)
	case item.SalaryMin > 0:
		return fmt.Sprintf("$%d", item.SalaryMin)
	case item.SalaryMax > 0:
		return fmt.Sprintf("$%d", item.SalaryMax)
	}
	return ""
}
