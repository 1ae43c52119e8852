package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewProjectsCmd creates the projects command group.
func NewProjectsCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List workspace projects",
		Long:  "List the cached workspace projects. Use --refresh to fetch the list from Clockify first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			a, err := e.openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			list, err := a.Store().LoadCache()
			if err != nil {
				return err
			}
			if refresh || len(list.Projects) == 0 {
				if err := e.cfg.RequireCredentials(false); err != nil {
					return err
				}
				if list, err = a.Timer().RefreshCache(cmd.Context()); err != nil {
					return err
				}
			}

			if len(list.Projects) == 0 {
				fmt.Println("No projects in the workspace.")
				return nil
			}
			for _, p := range list.Projects {
				line := p.Name
				if p.ClientName != "" {
					line += " (" + p.ClientName + ")"
				}
				if p.Archived {
					line += " [archived]"
				}
				fmt.Printf("  %-24s %s\n", p.ID, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch projects from Clockify before listing")
	cmd.AddCommand(newProjectsCreateCmd())
	return cmd
}

func newProjectsCreateCmd() *cobra.Command {
	var client string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
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

			clientID := ""
			if client != "" {
				list, err := a.Store().LoadCache()
				if err != nil {
					return err
				}
				if len(list.Clients) == 0 {
					if list, err = a.Timer().RefreshCache(cmd.Context()); err != nil {
						return err
					}
				}
				found := false
				for _, c := range list.Clients {
					if c.ID == client || c.Name == client {
						clientID = c.ID
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("unknown client %q, run `clockify-tracker clients`", client)
				}
			}

			project, err := a.Timer().CreateProject(cmd.Context(), args[0], clientID)
			if err != nil {
				return err
			}
			fmt.Printf("Project %q created (%s)\n", project.Name, project.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&client, "client", "", "client name or ID to attach the project to")
	return cmd
}
