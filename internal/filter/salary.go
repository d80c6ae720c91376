package filter

import (
	"strconv"
	"strings"
)

var salaryCleaner = strings.NewReplacer("$", "", ",", "")

// monthlyMinimum extracts the lowest plain-digit figure from a free-text
// salary string and reduces it to a monthly amount. The boolean is false when
// the string yields no usable figure; callers must treat that as "cannot
// determine", never as a rejection.
func monthlyMinimum(salary string, annualCutoff int) (int, bool) {
	cleaned := salaryCleaner.Replace(salary)

	lowest := 0
	found := false
	for _, tok := range strings.Fields(cleaned) {
		if !allDigits(tok) {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if !found || n < lowest {
			lowest = n
			found = true
		}
	}
	if !found {
		return 0, false
	}

	// Figures above the cutoff read as annual quotes; bring them to monthly.
	if lowest > annualCutoff {
		lowest /= 12
	}
	return lowest, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
