package pipeline

import "jobdigest/internal/model"

// Dedupe collapses jobs sharing a URL, keeping first-seen order. When two
// records carry the same URL the later one wins but stays at the position
// the URL first appeared. Records without a URL are dropped entirely.
func Dedupe(jobs []model.Job) []model.Job {
	deduped := make([]model.Job, 0, len(jobs))
	index := make(map[string]int, len(jobs))

	for _, job := range jobs {
		if job.URL == "" {
			continue
		}
		if at, ok := index[job.URL]; ok {
			deduped[at] = job
			continue
		}
		index[job.URL] = len(deduped)
		deduped = append(deduped, job)
	}
	return deduped
}
