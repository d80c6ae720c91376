package digest

import (
	"fmt"
	"html"
	"strings"
	"time"

	"jobdigest/internal/model"
)

// noMatches is the body emitted when a cycle finds nothing.
const noMatches = "No jobs matching your criteria found today."

// RenderText formats jobs as a Markdown digest: a dated header with the
// match count, then one numbered section per job in input order. The posted
// date line appears only when the source supplied one.
func RenderText(jobs []model.Job, now time.Time) string {
	if len(jobs) == 0 {
		return noMatches
	}

	var b strings.Builder
	b.WriteString("# 🎯 Job Opportunities Found!\n\n")
	fmt.Fprintf(&b, "Found **%d** matching job(s) on %s\n\n", len(jobs), now.Format("2006-01-02"))
	b.WriteString("---\n\n")

	for i, job := range jobs {
		fmt.Fprintf(&b, "## %d. %s\n", i+1, job.Title)
		fmt.Fprintf(&b, "**Company:** %s\n", job.Company)
		fmt.Fprintf(&b, "**Location:** %s\n", job.Location)
		fmt.Fprintf(&b, "**Salary:** %s\n", job.Salary)
		fmt.Fprintf(&b, "**Source:** %s\n", job.Source)
		if job.PostedDate != "" {
			fmt.Fprintf(&b, "**Posted:** %s\n", job.PostedDate)
		}
		fmt.Fprintf(&b, "**Description:** %s...\n", job.Description)
		fmt.Fprintf(&b, "**Link:** %s\n\n", job.URL)
		b.WriteString("---\n\n")
	}
	return b.String()
}

// RenderHTML formats jobs as a minimal HTML digest mirroring RenderText's
// field order. All interpolated values are entity-escaped.
func RenderHTML(jobs []model.Job, now time.Time) string {
	if len(jobs) == 0 {
		return "<p>" + noMatches + "</p>"
	}

	var b strings.Builder
	b.WriteString("<h1>🎯 Job Opportunities Found!</h1>\n")
	fmt.Fprintf(&b, "<p>Found <strong>%d</strong> matching job(s) on %s</p>\n", len(jobs), now.Format("2006-01-02"))
	b.WriteString("<hr>\n")

	for i, job := range jobs {
		fmt.Fprintf(&b, "<h2>%d. %s</h2>\n", i+1, html.EscapeString(job.Title))
		fmt.Fprintf(&b, "<p><strong>Company:</strong> %s</p>\n", html.EscapeString(job.Company))
		fmt.Fprintf(&b, "<p><strong>Location:</strong> %s</p>\n", html.EscapeString(job.Location))
		fmt.Fprintf(&b, "<p><strong>Salary:</strong> %s</p>\n", html.EscapeString(job.Salary))
		fmt.Fprintf(&b, "<p><strong>Source:</strong> %s</p>\n", html.EscapeString(job.Source))
		if job.PostedDate != "" {
			fmt.Fprintf(&b, "<p><strong>Posted:</strong> %s</p>\n", html.EscapeString(job.PostedDate))
		}
		fmt.Fprintf(&b, "<p><strong>Description:</strong> %s...</p>\n", html.EscapeString(job.Description))
		fmt.Fprintf(&b, "<p><a href=\"%s\">View Full Job</a></p>\n", html.EscapeString(job.URL))
		b.WriteString("<hr>\n")
	}
	return b.String()
}
