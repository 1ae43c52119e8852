package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clockify-tracker/internal/domain"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	var (
		project string
		month   string
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Monthly project summary",
		Long:  "Sum a project's completed time entries for one month and price them at the configured hourly rate.",
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

			now := time.Now()
			if month != "" {
				if now, err = time.Parse("2006-01", month); err != nil {
					return fmt.Errorf("invalid --month %q, expected YYYY-MM", month)
				}
			}

			sum, err := a.Summary().Month(cmd.Context(), p.ID, now)
			if err != nil {
				return err
			}

			fmt.Printf("%s, %s\n", p.Name, sum.From.Format("January 2006"))
			fmt.Printf("  Entries: %d\n", sum.Entries)
			fmt.Printf("  Total: %s\n", domain.FormatDetailed(sum.Total))
			fmt.Printf("  Billable: $%.2f at $%.2f/h\n", sum.Billing.Amount, sum.Billing.Rate)
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "project name or ID (required)")
	cmd.Flags().StringVar(&month, "month", "", "month to summarize as YYYY-MM (default: current month)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
