package analytics

import (
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

// ProgressPoint is one sample of the completion time series fed to charts.
// Total is the number of completed days up to and including Date.
type ProgressPoint struct {
	Date  domain.Date `json:"date"`
	Total int         `json:"total"`
}

// Progress returns one point per completed day, ascending, with a running total.
func Progress(dates domain.DateSet) []ProgressPoint {
	sorted := dates.Sorted()
	points := make([]ProgressPoint, 0, len(sorted))
	for i, d := range sorted {
		points = append(points, ProgressPoint{Date: d, Total: i + 1})
	}
	return points
}
