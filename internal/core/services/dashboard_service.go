package services

import (
	"context"
	"fmt"
	"log"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/achievement"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

type HabitReport struct {
	Name           string                    `json:"name"`
	DoneToday      bool                      `json:"done_today"`
	CurrentStreak  int                       `json:"current_streak"`
	CompletionRate float64                   `json:"completion_rate"`
	LongestRun     []domain.Date             `json:"longest_run"`
	LongestStreak  int                       `json:"longest_streak"`
	Badge          achievement.Badge         `json:"badge"`
	BadgeTitle     string                    `json:"badge_title,omitempty"`
	Offset         int                       `json:"month_offset"`
	Calendar       calendar.Month            `json:"calendar"`
	Progress       []analytics.ProgressPoint `json:"progress"`
}

// Dashboard is the immutable snapshot of one render pass.
type Dashboard struct {
	Username string           `json:"username"`
	Today    domain.Date      `json:"today"`
	Habits   []HabitReport    `json:"habits"`
	Warnings []domain.Warning `json:"warnings,omitempty"`
}

type DashboardService struct {
	repo domain.LedgerRepository
}

func NewDashboardService(repo domain.LedgerRepository) *DashboardService {
	return &DashboardService{
		repo: repo,
	}
}

// Snapshot loads the ledger once and computes every habit's report against
// session.Today. offsets selects each habit's calendar month; habits without
// an entry use defaultOffset.
func (s *DashboardService) Snapshot(ctx context.Context, session domain.Session, offsets map[string]int, defaultOffset int) (*Dashboard, error) {
	ledger, err := s.load(ctx, session.Username)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		Username: session.Username,
		Today:    session.Today,
		Habits:   make([]HabitReport, 0, len(ledger)),
		Warnings: ledger.Corruption(),
	}

	for _, name := range ledger.Names() {
		offset, ok := offsets[name]
		if !ok {
			offset = defaultOffset
		}
		report, err := buildReport(name, ledger[name], session.Today, offset)
		if err != nil {
			return nil, err
		}
		dash.Habits = append(dash.Habits, report)
	}

	return dash, nil
}

func (s *DashboardService) Report(ctx context.Context, session domain.Session, name string, offset int) (*HabitReport, []domain.Warning, error) {
	ledger, err := s.load(ctx, session.Username)
	if err != nil {
		return nil, nil, err
	}

	dates, ok := ledger[name]
	if !ok {
		return nil, nil, domain.ErrHabitNotFound
	}

	report, err := buildReport(name, dates, session.Today, offset)
	if err != nil {
		return nil, nil, err
	}

	var warnings []domain.Warning
	for _, w := range ledger.Corruption() {
		if w.Habit == name {
			warnings = append(warnings, w)
		}
	}
	return &report, warnings, nil
}

func (s *DashboardService) load(ctx context.Context, username string) (domain.Ledger, error) {
	ledger, err := s.repo.Load(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: load failed: %w", err)
	}
	if err := ledger.Validate(); err != nil {
		log.Printf("[LEDGER] user %s: %v", username, err)
	}
	return ledger, nil
}

func buildReport(name string, dates domain.DateSet, today domain.Date, offset int) (HabitReport, error) {
	longest := analytics.LongestRun(dates)

	month, err := calendar.Project(today, offset, dates, domain.NewDateSet(longest...))
	if err != nil {
		return HabitReport{}, err
	}

	streak := analytics.CurrentStreak(dates, today)
	badge := achievement.Evaluate(streak)

	return HabitReport{
		Name:           name,
		DoneToday:      dates.Contains(today),
		CurrentStreak:  streak,
		CompletionRate: analytics.CompletionRate(dates, today),
		LongestRun:     longest,
		LongestStreak:  len(longest),
		Badge:          badge,
		BadgeTitle:     badge.Title(),
		Offset:         offset,
		Calendar:       month,
		Progress:       analytics.Progress(dates),
	}, nil
}
