package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"clockify-tracker/internal/app"
)

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	var (
		from     string
		to       string
		daily    bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync time entries into MySQL",
		Long:  "Copy time entries and projects from Clockify into the configured MySQL database. Runs once by default; --interval repeats on a timer and --daily runs at local midnight. The loop modes always sync a trailing 24h window and cannot be combined with --from/--to.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkLoopWindow(daily, interval, from, to); err != nil {
				return err
			}
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

			now := time.Now().UTC()
			toTime, err := parseEnd(to, now)
			if err != nil {
				return err
			}
			fromTime, err := parseStart(from, toTime.Add(-24*time.Hour))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if daily {
				return runDaily(ctx, a, e.cfg.Timezone, e.log)
			}
			if interval > 0 {
				return runPeriodic(ctx, a, interval, e.log)
			}
			if err := a.RunSync(ctx, fromTime, toTime); err != nil {
				return err
			}
			e.log.Info("sync completed")
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start time, RFC3339 or YYYY-MM-DD (default: 24h before --to)")
	cmd.Flags().StringVar(&to, "to", "", "end time, RFC3339 or YYYY-MM-DD (default: now)")
	cmd.Flags().BoolVar(&daily, "daily", false, "run at local midnight each day")
	cmd.Flags().DurationVar(&interval, "interval", 0, "repeat with this interval (e.g. 15m)")
	return cmd
}

// checkLoopWindow rejects explicit window boundaries in the loop modes,
// which always sync the trailing 24 hours of each run.
func checkLoopWindow(daily bool, interval time.Duration, from, to string) error {
	if !daily && interval <= 0 {
		return nil
	}
	if from != "" || to != "" {
		return errors.New("--from/--to cannot be combined with --daily or --interval")
	}
	return nil
}

func runDaily(ctx context.Context, a *app.App, tz string, log *slog.Logger) error {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return err
	}
	log.Info("starting daily sync at midnight", slog.String("tz", tz))
	for {
		next := nextMidnight(time.Now().In(loc))
		dur := time.Until(next)
		log.Info("sleeping until next midnight", slog.Time("next", next), slog.Duration("sleep", dur))
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil
		case <-time.After(dur):
			endUTC := next.UTC()
			startUTC := endUTC.Add(-24 * time.Hour)
			if err := a.RunSync(ctx, startUTC, endUTC); err != nil {
				log.Error("daily sync failed", slog.String("error", err.Error()))
			} else {
				log.Info("daily sync completed", slog.Time("from", startUTC), slog.Time("to", endUTC))
			}
		}
	}
}

func runPeriodic(ctx context.Context, a *app.App, interval time.Duration, log *slog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log.Info("starting periodic sync", slog.Duration("interval", interval))

	end := time.Now().UTC()
	if err := a.RunSync(ctx, end.Add(-24*time.Hour), end); err != nil {
		log.Error("initial sync failed", slog.String("error", err.Error()))
	}
	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil
		case <-ticker.C:
			end := time.Now().UTC()
			if err := a.RunSync(ctx, end.Add(-24*time.Hour), end); err != nil {
				log.Error("periodic sync failed", slog.String("error", err.Error()))
			}
		}
	}
}

// nextMidnight returns the next midnight after t in t's location.
func nextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	if t.After(midnight) {
		return midnight.Add(24 * time.Hour)
	}
	if t.Equal(midnight) {
		return midnight.Add(24 * time.Hour)
	}
	return midnight
}
