package analytics

import (
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

// LongestRun returns the members of the longest run of consecutive days,
// ascending. When two runs have the same length the earlier one wins.
func LongestRun(dates domain.DateSet) []domain.Date {
	sorted := dates.Sorted()
	if len(sorted) == 0 {
		return []domain.Date{}
	}

	longest := sorted[0:1]
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i-1].AddDays(1) == sorted[i] {
			continue
		}
		if run := sorted[start:i]; len(run) > len(longest) {
			longest = run
		}
		start = i
	}

	out := make([]domain.Date, len(longest))
	copy(out, longest)
	return out
}

// LongestRunSet is LongestRun as a set, for membership checks.
func LongestRunSet(dates domain.DateSet) domain.DateSet {
	return domain.NewDateSet(LongestRun(dates)...)
}
