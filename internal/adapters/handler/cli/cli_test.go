package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func run(t *testing.T, deps Deps, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(deps)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--user", "alice"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func memoryDeps() Deps {
	return Deps{Repo: repository.NewInMemoryLedgerRepository(), Clock: fixedClock}
}

type failingSaveRepo struct {
	*repository.InMemoryLedgerRepository
}

func (failingSaveRepo) Save(ctx context.Context, username string, ledger domain.Ledger) error {
	return errors.New("read-only file system")
}

func TestHabitLifecycle(t *testing.T) {
	deps := memoryDeps()

	out, err := run(t, deps, "add", "Read")
	require.NoError(t, err)
	assert.Contains(t, out, `Habit "Read" added.`)

	out, err = run(t, deps, "add", "Read")
	require.NoError(t, err)
	assert.Contains(t, out, "warning: Habit already exists.")

	out, err = run(t, deps, "done", "Read")
	require.NoError(t, err)
	assert.Contains(t, out, `Marked "Read" done on 2024-03-10.`)

	_, err = run(t, deps, "done", "Read", "--date", "2024-03-09")
	require.NoError(t, err)

	out, err = run(t, deps, "list")
	require.NoError(t, err)
	assert.Equal(t, "Read\n", out)

	out, err = run(t, deps, "done", "Read", "--date", "2024-03-09", "--undo")
	require.NoError(t, err)
	assert.Contains(t, out, `Unmarked "Read" on 2024-03-09.`)

	ledger, err := deps.Repo.Load(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-10"}, ledger.Raw()["Read"])

	out, err = run(t, deps, "remove", "Read")
	require.NoError(t, err)
	assert.Contains(t, out, `Habit "Read" removed.`)

	out, err = run(t, deps, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No habits yet")
}

func TestDone_Errors(t *testing.T) {
	deps := memoryDeps()
	_, err := run(t, deps, "add", "Read")
	require.NoError(t, err)

	_, err = run(t, deps, "done", "Read", "--date", "10/03/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	out, err := run(t, deps, "done", "Swim")
	require.NoError(t, err)
	assert.Contains(t, out, "warning: Habit does not exist.")
}

func TestPersistenceFailure(t *testing.T) {
	deps := Deps{
		Repo:  failingSaveRepo{repository.NewInMemoryLedgerRepository()},
		Clock: fixedClock,
	}

	_, err := run(t, deps, "add", "Read")

	assert.ErrorIs(t, err, domain.ErrPersistenceFailure)
	assert.ErrorContains(t, err, "changes could not be saved")
}

func TestShow(t *testing.T) {
	deps := memoryDeps()
	ctx := context.Background()
	require.NoError(t, deps.Repo.Save(ctx, "alice", domain.ParseLedger(map[string][]string{
		"Read": {"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-09", "2024-03-10", "garbage"},
	})))

	t.Run("Single habit", func(t *testing.T) {
		out, err := run(t, deps, "show", "Read")
		require.NoError(t, err)

		assert.Contains(t, out, "Read")
		assert.Contains(t, out, "done today")
		assert.Contains(t, out, "2 days")
		assert.Contains(t, out, "3 days")
		assert.Contains(t, out, "March 2024")
		assert.Regexp(t, `Mo\s+Tu\s+We\s+Th\s+Fr\s+Sa\s+Su`, out)
		assert.Contains(t, out, markLongest+" 1")
		assert.Contains(t, out, markCompleted+"10")
		assert.Equal(t, 3+1, strings.Count(out, markLongest), "three longest-run days plus the legend")
		assert.Equal(t, 2+2, strings.Count(out, markCompleted), "two other done days, the status and the legend")
		assert.Contains(t, out, `warning: Read: ignoring unparseable date "garbage"`)
	})

	t.Run("Offset selects another month", func(t *testing.T) {
		out, err := run(t, deps, "show", "Read", "--offset", "-1")
		require.NoError(t, err)
		assert.Contains(t, out, "February 2024")
	})

	t.Run("Offset out of range", func(t *testing.T) {
		_, err := run(t, deps, "show", "--offset", "13")
		assert.Error(t, err)
	})

	t.Run("Unknown habit", func(t *testing.T) {
		_, err := run(t, deps, "show", "Swim")
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("All habits", func(t *testing.T) {
		out, err := run(t, deps, "show")
		require.NoError(t, err)
		assert.Contains(t, out, "March 2024")
	})
}

func TestRenderCell(t *testing.T) {
	tests := []struct {
		name string
		cell calendar.Cell
		want string
	}{
		{name: "Padding", cell: calendar.Cell{Class: calendar.CellEmpty}, want: "    "},
		{name: "Plain day", cell: calendar.Cell{Day: 7, Class: calendar.CellNone}, want: "   7"},
		{name: "Longest run keeps the day", cell: calendar.Cell{Day: 5, Class: calendar.CellLongestStreak}, want: "🌟 5"},
		{name: "Completed keeps the day", cell: calendar.Cell{Day: 12, Class: calendar.CellCompleted}, want: "✅12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderCell(tt.cell))
		})
	}
}

func TestRenderMonth_Badge(t *testing.T) {
	deps := memoryDeps()
	dates := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, domain.DateOf(fixedClock()).AddDays(-i).String())
	}
	require.NoError(t, deps.Repo.Save(context.Background(), "alice",
		domain.ParseLedger(map[string][]string{"Read": dates})))

	out, err := run(t, deps, "show", "Read")

	require.NoError(t, err)
	assert.Contains(t, out, "7-Day Starter Streak!")
}

func TestExport(t *testing.T) {
	deps := memoryDeps()
	require.NoError(t, deps.Repo.Save(context.Background(), "alice", domain.ParseLedger(map[string][]string{
		"Read": {"2024-03-09", "2024-03-10"},
	})))

	t.Run("JSON", func(t *testing.T) {
		out, err := run(t, deps, "export")
		require.NoError(t, err)

		var doc exportDocument
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "alice", doc.User)
		assert.Equal(t, "2024-03-10", doc.Today)
		require.Len(t, doc.Habits, 1)
		assert.Equal(t, []string{"2024-03-09", "2024-03-10"}, doc.Habits[0].Dates)
		assert.Equal(t, 2, doc.Habits[0].CurrentStreak)
		assert.Equal(t, "none", doc.Habits[0].Badge)
	})

	t.Run("YAML", func(t *testing.T) {
		out, err := run(t, deps, "export", "--format", "yaml")
		require.NoError(t, err)

		var doc exportDocument
		require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "alice", doc.User)
		assert.Equal(t, 100.0, doc.Habits[0].CompletionRate)
	})

	t.Run("Unknown format", func(t *testing.T) {
		_, err := run(t, deps, "export", "--format", "csv")
		assert.ErrorContains(t, err, "unsupported export format")
	})
}

func TestFileLedgerFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	deps := Deps{Clock: fixedClock}

	_, err := run(t, deps, "--ledger-file", path, "add", "Read")
	require.NoError(t, err)

	repo, err := repository.NewFileLedgerRepository(path)
	require.NoError(t, err)
	ledger, err := repo.Load(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, ledger.Has("Read"))
}
