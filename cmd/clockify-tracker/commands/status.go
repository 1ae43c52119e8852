package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clockify-tracker/internal/domain"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current timer",
		Long:  "Show the locally tracked timer. With --remote the state is reconciled against the Clockify server first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if remote {
				if err := e.cfg.RequireCredentials(true); err != nil {
					return err
				}
			}
			a, err := e.openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			snap, err := a.Timer().Status(cmd.Context(), remote)
			if err != nil {
				return err
			}

			if !snap.Running() {
				fmt.Println("No timer running.")
			} else {
				elapsed := snap.Elapsed(time.Now())
				billing := domain.Bill(elapsed, e.cfg.HourlyRate)
				fmt.Printf("Tracking %s\n", domain.FormatClock(elapsed))
				if snap.Description != "" {
					fmt.Printf("  Description: %s\n", snap.Description)
				}
				if e.cfg.Display.ShowProjectName && snap.ProjectName != "" {
					fmt.Printf("  Project: %s\n", snap.ProjectName)
				}
				if e.cfg.Display.ShowClientName && snap.ClientName != "" {
					fmt.Printf("  Client: %s\n", snap.ClientName)
				}
				if e.cfg.Display.ShowBillable {
					fmt.Printf("  Billable: $%.2f\n", billing.Amount)
				}
			}

			if e.cfg.Display.ShowLastSession && snap.LastSession != nil {
				s := snap.LastSession
				fmt.Printf("Last session: %s, $%.2f",
					domain.FormatDetailed(time.Duration(s.DurationSec)*time.Second), s.Amount)
				if s.ProjectName != "" {
					fmt.Printf(" on %s", s.ProjectName)
				}
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "reconcile against the Clockify server")
	return cmd
}
