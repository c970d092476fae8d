// Package analytics derives streak, completion and run statistics from a
// habit's completion dates. Every function is pure: callers pass the frozen
// "today" of their session and the engine never reads the wall clock.
package analytics

import (
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

// CurrentStreak counts consecutive completed days walking backward from asOf.
// It is 0 when asOf itself is not completed.
func CurrentStreak(dates domain.DateSet, asOf domain.Date) int {
	streak := 0
	for day := asOf; dates.Contains(day); day = day.AddDays(-1) {
		streak++
	}
	return streak
}
