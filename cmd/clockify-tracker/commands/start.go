package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewStartCmd creates the start command.
func NewStartCmd() *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "start [description...]",
		Short: "Start a timer",
		Long:  "Start a Clockify timer, optionally attached to a project and description.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if err := e.cfg.RequireCredentials(false); err != nil {
				return err
			}
			a, err := e.openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			projectID := ""
			if project != "" {
				list, err := a.Store().LoadCache()
				if err != nil {
					return err
				}
				if len(list.Projects) == 0 {
					if list, err = a.Timer().RefreshCache(cmd.Context()); err != nil {
						return err
					}
				}
				p, ok := resolveProject(list, project)
				if !ok {
					return fmt.Errorf("unknown project %q, run `clockify-tracker projects --refresh`", project)
				}
				projectID = p.ID
			}

			snap, err := a.Timer().Start(cmd.Context(), projectID, strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Printf("Timer started (%s)\n", snap.ActiveEntryID)
			if snap.Description != "" {
				fmt.Printf("  Description: %s\n", snap.Description)
			}
			if snap.ProjectName != "" {
				fmt.Printf("  Project: %s\n", snap.ProjectName)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "project name or ID")
	return cmd
}
