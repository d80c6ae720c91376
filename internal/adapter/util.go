package adapter

import (
	"html"
	"regexp"
	"strings"

	"jobdigest/internal/model"
)

// descriptionLimit caps the normalized description carried into the digest.
const descriptionLimit = 300

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// normalize converts an HTML or HTML-encoded string to plain text: unescapes
// entities (handles double-encoded feeds; no-op on real HTML), strips all
// tags, then collapses whitespace runs to single spaces.
func normalize(content string) string {
	if content == "" {
		return ""
	}
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, "")
	return strings.Join(strings.Fields(plain), " ")
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// applyFallbacks fills the literal placeholder values for fields an upstream
// item omitted. Runs after matching, so the filter only ever sees raw values.
func applyFallbacks(job *model.Job) {
	if job.Title == "" {
		job.Title = "N/A"
	}
	if job.Company == "" {
		job.Company = "N/A"
	}
	if job.Location == "" {
		job.Location = "Remote"
	}
	if job.Salary == "" {
		job.Salary = "Not specified"
	}
}

// finalize is the shared post-match step: placeholder fallbacks, then the
// description is normalized and truncated for rendering.
func finalize(job *model.Job) {
	applyFallbacks(job)
	job.Description = truncate(normalize(job.Description), descriptionLimit)
}
