package filter

import (
	"strings"

	"jobdigest/internal/config"
	"jobdigest/internal/model"
)

// Ensure CriteriaFilter implements model.JobFilter.
var _ model.JobFilter = (*CriteriaFilter)(nil)

// asiaLocations is the fixed gazetteer backing the "asia" region gate.
// Tokens are matched as substrings of the lower-cased location.
var asiaLocations = []string{
	"singapore", "india", "japan", "south korea", "korea", "thailand",
	"vietnam", "malaysia", "indonesia", "philippines", "pakistan",
	"bangladesh", "sri lanka", "hong kong", "china", "taiwan",
	"asia", "asiapac", "apac",
	"sg", "jp", "in", "th", "vn", "my",
}

// CriteriaFilter applies the digest gates in order: title keyword, general
// keyword, region allow-list, salary floor. All gates must pass. Matching is
// case-insensitive substring containment throughout.
type CriteriaFilter struct {
	titles       []string
	keywords     []string
	region       string
	minSalary    int
	annualCutoff int
}

// NewCriteriaFilter builds a filter from loaded criteria. Token lists arrive
// lower-cased and trimmed (config.Load guarantees this); an empty list is
// treated as "match all".
func NewCriteriaFilter(cfg config.Filters) *CriteriaFilter {
	return &CriteriaFilter{
		titles:       cfg.JobTitles,
		keywords:     cfg.Keywords,
		region:       cfg.Region,
		minSalary:    cfg.MinSalary,
		annualCutoff: cfg.AnnualSalaryCutoff,
	}
}

// Match reports whether the job passes every configured gate. Adapters call
// it on the raw upstream fields, before description truncation.
func (f *CriteriaFilter) Match(job model.Job) bool {
	title := strings.ToLower(job.Title)
	location := strings.ToLower(job.Location)
	composite := title + " " +
		strings.ToLower(job.Description) + " " +
		strings.ToLower(job.Company) + " " +
		location

	if !containsAny(title, f.titles) {
		return false
	}
	if !containsAny(composite, f.keywords) {
		return false
	}

	// Region gate: only the "asia" region carries an allow-list. A location
	// with no gazetteer token fails, which covers the unqualified "Remote"
	// case (region unverifiable), while "Remote, Singapore" still passes.
	if f.region == "asia" && !containsAny(location, asiaLocations) {
		return false
	}

	return f.salaryAcceptable(job.Salary)
}

// salaryAcceptable applies the salary gate. Absent or "not specified"
// salaries skip the gate, as do strings yielding no parseable figure.
func (f *CriteriaFilter) salaryAcceptable(salary string) bool {
	if salary == "" || strings.EqualFold(salary, "not specified") {
		return true
	}
	monthly, ok := monthlyMinimum(salary, f.annualCutoff)
	if !ok {
		return true
	}
	return monthly >= f.minSalary
}

// containsAny reports whether s contains at least one of the tokens. An
// empty token list passes everything.
func containsAny(s string, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
