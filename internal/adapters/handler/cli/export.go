package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

type exportHabit struct {
	Name           string   `json:"name" yaml:"name"`
	Dates          []string `json:"dates" yaml:"dates"`
	CurrentStreak  int      `json:"current_streak" yaml:"current_streak"`
	LongestStreak  int      `json:"longest_streak" yaml:"longest_streak"`
	CompletionRate float64  `json:"completion_rate" yaml:"completion_rate"`
	Badge          string   `json:"badge" yaml:"badge"`
}

type exportDocument struct {
	User     string           `json:"user" yaml:"user"`
	Today    string           `json:"today" yaml:"today"`
	Habits   []exportHabit    `json:"habits" yaml:"habits"`
	Warnings []domain.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// buildExport flattens a snapshot; corrupt entries appear only as warnings.
func buildExport(dash *services.Dashboard) exportDocument {
	doc := exportDocument{
		User:     dash.Username,
		Today:    dash.Today.String(),
		Habits:   make([]exportHabit, 0, len(dash.Habits)),
		Warnings: dash.Warnings,
	}
	for _, r := range dash.Habits {
		dates := make([]string, 0, len(r.Progress))
		for _, p := range r.Progress {
			dates = append(dates, p.Date.String())
		}
		doc.Habits = append(doc.Habits, exportHabit{
			Name:           r.Name,
			Dates:          dates,
			CurrentStreak:  r.CurrentStreak,
			LongestStreak:  r.LongestStreak,
			CompletionRate: r.CompletionRate,
			Badge:          r.Badge.String(),
		})
	}
	return doc
}

func writeExport(w io.Writer, doc exportDocument, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q (use json or yaml)", format)
	}
}

func (a *app) exportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ledger and its statistics as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dash, err := a.dash.Snapshot(cmd.Context(), a.session, nil, 0)
			if err != nil {
				return err
			}
			return writeExport(cmd.OutOrStdout(), buildExport(dash), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}
