package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clockify-tracker/internal/domain"
	"clockify-tracker/internal/usecase"
)

// NewStopCmd creates the stop command.
func NewStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		Long:  "Stop the running Clockify timer and print the session summary with the billable amount.",
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

			session, err := a.Timer().Stop(cmd.Context())
			if errors.Is(err, usecase.ErrStaleState) {
				fmt.Println("Timer was already stopped on the Clockify website; local state reset.")
				return nil
			}
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Println("No timer running.")
				return nil
			}

			fmt.Println("Session complete")
			if session.Description != "" {
				fmt.Printf("  Description: %s\n", session.Description)
			}
			if session.ProjectName != "" {
				fmt.Printf("  Project: %s\n", session.ProjectName)
			}
			fmt.Printf("  Duration: %s\n", domain.FormatDetailed(time.Duration(session.DurationSec)*time.Second))
			fmt.Printf("  Billable: $%.2f at $%.2f/h\n", session.Amount, session.Rate)
			return nil
		},
	}
}
