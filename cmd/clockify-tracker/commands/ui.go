package commands

import (
	"github.com/spf13/cobra"

	"clockify-tracker/internal/ui"
)

// NewUICmd creates the interactive panel command.
func NewUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Interactive tracker panel",
		Long:  "Open the full-screen tracker panel: browse projects, start and stop timers, and watch the running total.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if err := e.cfg.RequireCredentials(true); err != nil {
				return err
			}
			a, err := e.openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			return ui.Run(ui.Options{
				Context: cmd.Context(),
				Timer:   a.Timer(),
				Summary: a.Summary(),
				Display: e.cfg.Display,
				Rate:    e.cfg.HourlyRate,
			})
		},
	}
}
