// Package commands implements the clockify-tracker CLI.
package commands

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"clockify-tracker/internal/app"
	"clockify-tracker/internal/config"
	"clockify-tracker/internal/domain"
)

// NewRootCmd assembles the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clockify-tracker",
		Short:         "Track time against Clockify from the terminal",
		Long:          "Start and stop Clockify timers, browse projects, and roll up monthly billables without leaving the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "config file (default ~/.config/clockify-tracker/config.toml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")

	root.AddCommand(
		NewStartCmd(),
		NewStopCmd(),
		NewStatusCmd(),
		NewProjectsCmd(),
		NewClientsCmd(),
		NewWhoamiCmd(),
		NewSummaryCmd(),
		NewSyncCmd(),
		NewServeCmd(),
		NewUICmd(),
	)
	return root
}

// env is the per-invocation setup shared by every subcommand.
type env struct {
	log     *slog.Logger
	cfg     config.Config
	cfgPath string
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	flags := cmd.Root().PersistentFlags()
	cfgPath, _ := flags.GetString("config")
	verbose, _ := flags.GetBool("verbose")

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return &env{log: logger, cfg: cfg, cfgPath: cfgPath}, nil
}

func (e *env) openApp() (*app.App, error) {
	return app.New(e.log, e.cfg)
}

// resolveProject matches arg against the cached projects by ID first,
// then by case-insensitive name.
func resolveProject(list domain.ProjectList, arg string) (domain.Project, bool) {
	if p, ok := list.ByID(arg); ok {
		return p, true
	}
	for _, p := range list.Projects {
		if strings.EqualFold(p.Name, arg) {
			return p, true
		}
	}
	return domain.Project{}, false
}

// parseStart parses a start boundary that may be RFC3339 or YYYY-MM-DD.
// If empty, defaultVal is returned.
func parseStart(val string, defaultVal time.Time) (time.Time, error) {
	if val == "" {
		return defaultVal, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if d, err := time.Parse("2006-01-02", val); err == nil {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, errInvalidTime(val)
}

// parseEnd parses an end boundary that may be RFC3339 or YYYY-MM-DD.
// Date-only form is treated as inclusive by converting to next-day 00:00 UTC.
func parseEnd(val string, defaultVal time.Time) (time.Time, error) {
	if val == "" {
		return defaultVal, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if d, err := time.Parse("2006-01-02", val); err == nil {
		next := d.Add(24 * time.Hour)
		return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, errInvalidTime(val)
}

type errInvalidTime string

func (e errInvalidTime) Error() string {
	return "invalid time " + string(e) + ", expected RFC3339 or YYYY-MM-DD"
}
