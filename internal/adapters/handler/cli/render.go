package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

const (
	markLongest   = "🌟"
	markCompleted = "✅"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	badgeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9e2af"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	headerStyle  = lipgloss.NewStyle().Underline(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

func renderDashboard(w io.Writer, dash *services.Dashboard) {
	renderWarnings(w, dash.Warnings)
	if len(dash.Habits) == 0 {
		fmt.Fprintln(w, "No habits yet. Add one with: habitctl add NAME")
		return
	}
	for _, report := range dash.Habits {
		renderReport(w, report)
	}
}

func renderWarnings(w io.Writer, warnings []domain.Warning) {
	for _, warn := range warnings {
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("warning: %s: %s", warn.Habit, warn.Message)))
	}
}

func renderReport(w io.Writer, r services.HabitReport) {
	var b strings.Builder

	status := "not done today"
	if r.DoneToday {
		status = "done today " + markCompleted
	}

	b.WriteString(titleStyle.Render(r.Name) + "  " + labelStyle.Render(status) + "\n")
	fmt.Fprintf(&b, "%s %d days\n", labelStyle.Render("Current streak: "), r.CurrentStreak)
	fmt.Fprintf(&b, "%s %d days\n", labelStyle.Render("Longest streak: "), r.LongestStreak)
	fmt.Fprintf(&b, "%s %.2f%%\n", labelStyle.Render("Completion:     "), r.CompletionRate)
	if title := r.Badge.Title(); title != "" {
		b.WriteString(badgeStyle.Render("🏆 "+title) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(renderMonth(r.Calendar))

	fmt.Fprintln(w, boxStyle.Render(b.String()))
}

// renderMonth draws the grid with four-column cells: a two-column marker slot
// then the day number, so marked and plain days line up.
func renderMonth(m calendar.Month) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Title()) + "\n")
	header := make([]string, len(weekdayHeader))
	for i, day := range weekdayHeader {
		header[i] = fmt.Sprintf("%4s", day)
	}
	b.WriteString(headerStyle.Render(strings.Join(header, " ")) + "\n")

	for _, week := range m.Weeks {
		cells := make([]string, len(week))
		for i, cell := range week {
			cells[i] = renderCell(cell)
		}
		b.WriteString(strings.Join(cells, " ") + "\n")
	}

	b.WriteString(labelStyle.Render(markLongest+" longest streak  "+markCompleted+" completed"))
	return b.String()
}

func renderCell(c calendar.Cell) string {
	switch c.Class {
	case calendar.CellEmpty:
		return "    "
	case calendar.CellLongestStreak:
		return fmt.Sprintf("%s%2d", markLongest, c.Day)
	case calendar.CellCompleted:
		return fmt.Sprintf("%s%2d", markCompleted, c.Day)
	default:
		return fmt.Sprintf("  %2d", c.Day)
	}
}
