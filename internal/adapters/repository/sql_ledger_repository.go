package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

var _ domain.LedgerRepository = (*SQLLedgerRepository)(nil)

// SQLLedgerRepository stores a ledger as one row per habit plus one row per
// stored date string. Queries are written with ? placeholders and rebound for
// the connected driver.
type SQLLedgerRepository struct {
	db *sqlx.DB
}

func NewSQLLedgerRepository(db *sqlx.DB) *SQLLedgerRepository {
	return &SQLLedgerRepository{db: db}
}

type completionRow struct {
	Habit string `db:"habit"`
	Day   string `db:"day"`
}

func (r *SQLLedgerRepository) Load(ctx context.Context, username string) (domain.Ledger, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var names []string
	query := r.db.Rebind(`SELECT name FROM ledger_habits WHERE username = ?`)
	if err := r.db.SelectContext(ctx, &names, query, username); err != nil {
		return nil, fmt.Errorf("repository: load habits failed: %w", err)
	}

	raw := make(map[string][]string, len(names))
	for _, name := range names {
		raw[name] = []string{}
	}

	var rows []completionRow
	query = r.db.Rebind(`
		SELECT habit, day
		FROM ledger_completions
		WHERE username = ?
		ORDER BY habit, position
	`)
	if err := r.db.SelectContext(ctx, &rows, query, username); err != nil {
		return nil, fmt.Errorf("repository: load completions failed: %w", err)
	}

	for _, row := range rows {
		if _, ok := raw[row.Habit]; !ok {
			continue
		}
		raw[row.Habit] = append(raw[row.Habit], row.Day)
	}

	return domain.ParseLedger(raw), nil
}

// Save replaces all of the user's rows in one transaction.
func (r *SQLLedgerRepository) Save(ctx context.Context, username string, ledger domain.Ledger) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin tx failed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM ledger_completions WHERE username = ?`), username); err != nil {
		return fmt.Errorf("repository: clear completions failed: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM ledger_habits WHERE username = ?`), username); err != nil {
		return fmt.Errorf("repository: clear habits failed: %w", err)
	}

	insertHabit := tx.Rebind(`INSERT INTO ledger_habits (username, name) VALUES (?, ?)`)
	insertDay := tx.Rebind(`INSERT INTO ledger_completions (username, habit, position, day) VALUES (?, ?, ?, ?)`)

	for name, dates := range ledger.Raw() {
		if _, err := tx.ExecContext(ctx, insertHabit, username, name); err != nil {
			return fmt.Errorf("repository: insert habit %q failed: %w", name, err)
		}
		for i, day := range dates {
			if _, err := tx.ExecContext(ctx, insertDay, username, name, i, day); err != nil {
				return fmt.Errorf("repository: insert completion failed: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit failed: %w", err)
	}
	return nil
}
