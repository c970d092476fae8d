package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

func printOutcome(w io.Writer, out services.Outcome, success string) {
	for _, warn := range out.Warnings {
		fmt.Fprintln(w, warningStyle.Render("warning: "+warn.Message))
	}
	if out.Changed {
		fmt.Fprintln(w, success)
	}
}

func persistenceHint(err error) error {
	if errors.Is(err, domain.ErrPersistenceFailure) {
		return fmt.Errorf("changes could not be saved: %w", err)
	}
	return err
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Start tracking a new habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.ledger.AddHabit(cmd.Context(), a.session, args[0])
			if err != nil {
				return persistenceHint(err)
			}
			printOutcome(cmd.OutOrStdout(), out, fmt.Sprintf("Habit %q added.", args[0]))
			return nil
		},
	}
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Stop tracking a habit and drop its history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.ledger.RemoveHabit(cmd.Context(), a.session, args[0])
			if err != nil {
				return persistenceHint(err)
			}
			printOutcome(cmd.OutOrStdout(), out, fmt.Sprintf("Habit %q removed.", args[0]))
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tracked habits",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.ledger.Habits(cmd.Context(), a.session)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(w, "No habits yet. Add one with: habitctl add NAME")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(w, name)
			}
			return nil
		},
	}
}

func (a *app) doneCmd() *cobra.Command {
	var (
		date string
		undo bool
	)

	cmd := &cobra.Command{
		Use:   "done NAME",
		Short: "Mark a habit as done for today (or --date)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := a.session.Today
			if date != "" {
				d, err := domain.ParseDateInput(date)
				if err != nil {
					return err
				}
				day = d
			}

			out, err := a.ledger.Toggle(cmd.Context(), a.session, args[0], day, !undo)
			if err != nil {
				return persistenceHint(err)
			}

			msg := fmt.Sprintf("Marked %q done on %s.", args[0], day)
			if undo {
				msg = fmt.Sprintf("Unmarked %q on %s.", args[0], day)
			}
			printOutcome(cmd.OutOrStdout(), out, msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to mark, YYYY-MM-DD")
	cmd.Flags().BoolVar(&undo, "undo", false, "Unmark the day instead")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "show [NAME]",
		Short: "Show streaks, badges and a month calendar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				report, warnings, err := a.dash.Report(cmd.Context(), a.session, args[0], offset)
				if err != nil {
					return err
				}
				renderWarnings(w, warnings)
				renderReport(w, *report)
				return nil
			}

			dash, err := a.dash.Snapshot(cmd.Context(), a.session, nil, offset)
			if err != nil {
				return err
			}
			renderDashboard(w, dash)
			return nil
		},
	}

	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "Months from the current one, -12..12")
	return cmd
}
