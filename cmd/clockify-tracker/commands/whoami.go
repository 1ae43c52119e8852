package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"clockify-tracker/internal/config"
)

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated Clockify user",
		Long:  "Fetch the user behind the configured API key. With --save the user ID (and default workspace, when unset) is written back to the config file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if e.cfg.APIKey == "" {
				return fmt.Errorf("api_key is required (set it in the config file or CLOCKIFY_API_KEY)")
			}
			a, err := e.openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, err := a.API().CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("User: %s <%s>\n", user.Name, user.Email)
			fmt.Printf("  ID: %s\n", user.ID)
			if user.DefaultWorkspace != "" {
				fmt.Printf("  Default workspace: %s\n", user.DefaultWorkspace)
			}

			if !save {
				return nil
			}
			cfg := e.cfg
			cfg.UserID = user.ID
			if cfg.WorkspaceID == "" {
				cfg.WorkspaceID = user.DefaultWorkspace
			}
			if err := config.Save(e.cfgPath, cfg); err != nil {
				return err
			}
			fmt.Println("Config updated.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the user ID back to the config file")
	return cmd
}
