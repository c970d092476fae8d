// Package cli is the habitctl command line front end. It runs the same ledger
// and dashboard services as the HTTP API against a local JSON ledger file.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/config"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

var Version = "dev"

// Deps lets tests swap the store and the clock. Zero values mean the JSON
// file named by --ledger-file and the system clock.
type Deps struct {
	Repo  domain.LedgerRepository
	Clock domain.Clock
}

type app struct {
	v       *viper.Viper
	deps    Deps
	ledger  *services.LedgerService
	dash    *services.DashboardService
	session domain.Session
}

func NewRootCommand(deps Deps) *cobra.Command {
	a := &app{v: config.NewViper(), deps: deps}
	a.v.SetDefault("habit_user", defaultUser())

	root := &cobra.Command{
		Use:           "habitctl",
		Short:         "Track daily habits, streaks and badges from the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}

	root.PersistentFlags().StringP("user", "u", "", "Ledger owner (env HABIT_USER)")
	root.PersistentFlags().String("ledger-file", "", "Path of the JSON ledger (env LEDGER_FILE)")
	_ = a.v.BindPFlag("habit_user", root.PersistentFlags().Lookup("user"))
	_ = a.v.BindPFlag("ledger_file", root.PersistentFlags().Lookup("ledger-file"))

	root.AddCommand(
		a.addCmd(),
		a.removeCmd(),
		a.listCmd(),
		a.doneCmd(),
		a.showCmd(),
		a.exportCmd(),
	)
	return root
}

// Execute runs habitctl with os.Args and returns the process exit code.
func Execute(ctx context.Context, stdout, stderr io.Writer) int {
	root := NewRootCommand(Deps{})
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("Error:", err)
		return 1
	}
	return 0
}

func (a *app) open(ctx context.Context) error {
	repo := a.deps.Repo
	if repo == nil {
		fileRepo, err := repository.NewFileLedgerRepository(a.v.GetString("ledger_file"))
		if err != nil {
			return err
		}
		repo = fileRepo
	}

	clock := a.deps.Clock
	if clock == nil {
		clock = domain.SystemClock
	}

	username := a.v.GetString("habit_user")
	if username == "" {
		return domain.ErrInvalidUsername
	}

	a.ledger = services.NewLedgerService(repo)
	a.dash = services.NewDashboardService(repo)
	a.session = domain.NewSession(username, clock())
	return nil
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "default"
}
