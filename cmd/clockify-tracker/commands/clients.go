package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewClientsCmd creates the clients command group.
func NewClientsCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List workspace clients",
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
			if refresh || len(list.Clients) == 0 {
				if err := e.cfg.RequireCredentials(false); err != nil {
					return err
				}
				if list, err = a.Timer().RefreshCache(cmd.Context()); err != nil {
					return err
				}
			}

			if len(list.Clients) == 0 {
				fmt.Println("No clients in the workspace.")
				return nil
			}
			for _, c := range list.Clients {
				line := c.Name
				if c.Archived {
					line += " [archived]"
				}
				fmt.Printf("  %-24s %s\n", c.ID, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch clients from Clockify before listing")
	cmd.AddCommand(newClientsCreateCmd())
	return cmd
}

func newClientsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a client",
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

			client, err := a.Timer().CreateClient(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Client %q created (%s)\n", client.Name, client.ID)
			return nil
		},
	}
}
