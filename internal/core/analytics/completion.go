package analytics

import (
	"math"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

// CompletionRate is the percentage of days from the first completion through
// asOf (inclusive) that were completed, rounded to two decimals.
// An empty set, or a first completion after asOf, yields 0.
func CompletionRate(dates domain.DateSet, asOf domain.Date) float64 {
	first, ok := dates.Earliest()
	if !ok {
		return 0
	}

	totalDays := first.DaysUntil(asOf) + 1
	if totalDays <= 0 {
		return 0
	}

	completed := 0
	for _, d := range dates.Sorted() {
		if d.After(asOf) {
			break
		}
		completed++
	}

	rate := float64(completed) / float64(totalDays) * 100
	return math.Round(rate*100) / 100
}
