// Package calendar lays out one month of a habit as a Monday-first grid of
// classified day cells.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

const (
	MinOffset = -12
	MaxOffset = 12
)

var (
	ErrOffsetOutOfRange = errors.New("month offset out of range (must be -12..12)")
)

type CellClass int

const (
	CellEmpty CellClass = iota
	CellNone
	CellCompleted
	CellLongestStreak
)

func (c CellClass) String() string {
	switch c {
	case CellNone:
		return "none"
	case CellCompleted:
		return "completed"
	case CellLongestStreak:
		return "longest-streak"
	default:
		return "empty"
	}
}

func (c CellClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CellClass) UnmarshalText(text []byte) error {
	for _, candidate := range []CellClass{CellEmpty, CellNone, CellCompleted, CellLongestStreak} {
		if candidate.String() == string(text) {
			*c = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown cell class %q", text)
}

// Cell is one slot of the grid. Day is 0 for out-of-month filler.
type Cell struct {
	Day   int       `json:"day"`
	Class CellClass `json:"class"`
}

type Week [7]Cell

type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Weeks []Week     `json:"weeks"`
}

func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// InMonthDays counts the non-filler cells.
func (m Month) InMonthDays() int {
	n := 0
	for _, w := range m.Weeks {
		for _, c := range w {
			if c.Class != CellEmpty {
				n++
			}
		}
	}
	return n
}

// MonthForOffset moves whole calendar months away from today's month.
func MonthForOffset(today domain.Date, offset int) (int, time.Month, error) {
	if offset < MinOffset || offset > MaxOffset {
		return 0, 0, fmt.Errorf("%w: %d", ErrOffsetOutOfRange, offset)
	}

	first := time.Date(today.Year, today.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
	return first.Year(), first.Month(), nil
}

// ProjectMonth classifies every day of the month. A day in longestRun is
// longest-streak, otherwise completed when in dates, otherwise none.
func ProjectMonth(year int, month time.Month, dates, longestRun domain.DateSet) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// time.Weekday has Sunday at 0; shift so Monday is column 0.
	lead := (int(first.Weekday()) + 6) % 7

	m := Month{Year: year, Month: month}
	var week Week
	col := lead
	for day := 1; day <= daysInMonth; day++ {
		week[col] = Cell{Day: day, Class: classify(domain.NewDate(year, month, day), dates, longestRun)}
		col++
		if col == 7 {
			m.Weeks = append(m.Weeks, week)
			week = Week{}
			col = 0
		}
	}
	if col > 0 {
		m.Weeks = append(m.Weeks, week)
	}
	return m
}

// Project resolves the offset against today and projects that month.
func Project(today domain.Date, offset int, dates, longestRun domain.DateSet) (Month, error) {
	year, month, err := MonthForOffset(today, offset)
	if err != nil {
		return Month{}, err
	}
	return ProjectMonth(year, month, dates, longestRun), nil
}

func classify(d domain.Date, dates, longestRun domain.DateSet) CellClass {
	switch {
	case longestRun.Contains(d):
		return CellLongestStreak
	case dates.Contains(d):
		return CellCompleted
	default:
		return CellNone
	}
}
