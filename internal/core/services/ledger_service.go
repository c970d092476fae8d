package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

// Outcome reports what a ledger mutation did. Warnings never come with a save.
type Outcome struct {
	Changed  bool             `json:"changed"`
	Warnings []domain.Warning `json:"warnings,omitempty"`
}

func warned(w domain.Warning) Outcome {
	return Outcome{Warnings: []domain.Warning{w}}
}

type LedgerService struct {
	repo domain.LedgerRepository
}

func NewLedgerService(repo domain.LedgerRepository) *LedgerService {
	return &LedgerService{
		repo: repo,
	}
}

// Habits returns the user's habit names, sorted.
func (s *LedgerService) Habits(ctx context.Context, session domain.Session) ([]string, error) {
	ledger, err := s.repo.Load(ctx, session.Username)
	if err != nil {
		return nil, fmt.Errorf("ledger service: load failed: %w", err)
	}
	return ledger.Names(), nil
}

func (s *LedgerService) AddHabit(ctx context.Context, session domain.Session, name string) (Outcome, error) {
	name, err := domain.NormalizeHabitName(name)
	if err != nil {
		return Outcome{}, err
	}

	ledger, err := s.repo.Load(ctx, session.Username)
	if err != nil {
		return Outcome{}, fmt.Errorf("ledger service: load failed: %w", err)
	}

	if ledger.Has(name) {
		return warned(domain.NewWarning(domain.WarningHabitExists, name, "Habit already exists.")), nil
	}

	next := ledger.Clone()
	next[name] = domain.NewDateSet()

	return s.commit(ctx, session.Username, next)
}

// RemoveHabit deletes a habit and its history. The name is matched as stored,
// so habits created outside AddHabit can still be removed.
func (s *LedgerService) RemoveHabit(ctx context.Context, session domain.Session, name string) (Outcome, error) {
	if name == "" {
		return Outcome{}, domain.ErrHabitNameEmpty
	}

	ledger, err := s.repo.Load(ctx, session.Username)
	if err != nil {
		return Outcome{}, fmt.Errorf("ledger service: load failed: %w", err)
	}

	name, ok := ledger.Lookup(name)
	if !ok {
		return warned(domain.NewWarning(domain.WarningHabitNotFound, name, "Habit does not exist.")), nil
	}

	next := ledger.Clone()
	delete(next, name)

	return s.commit(ctx, session.Username, next)
}

// Toggle marks day as done or not done for the habit. Asking for the state the
// day already has changes nothing and skips the save.
func (s *LedgerService) Toggle(ctx context.Context, session domain.Session, name string, day domain.Date, done bool) (Outcome, error) {
	if name == "" {
		return Outcome{}, domain.ErrHabitNameEmpty
	}

	ledger, err := s.repo.Load(ctx, session.Username)
	if err != nil {
		return Outcome{}, fmt.Errorf("ledger service: load failed: %w", err)
	}

	name, ok := ledger.Lookup(name)
	if !ok {
		return warned(domain.NewWarning(domain.WarningHabitNotFound, name, "Habit does not exist.")), nil
	}

	dates := ledger[name]
	if dates.Contains(day) == done {
		return Outcome{}, nil
	}

	next := ledger.Clone()
	next[name] = dates.Set(day, done)

	return s.commit(ctx, session.Username, next)
}

func (s *LedgerService) commit(ctx context.Context, username string, ledger domain.Ledger) (Outcome, error) {
	if err := s.repo.Save(ctx, username, ledger); err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
	return Outcome{Changed: true}, nil
}
