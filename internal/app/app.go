package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	cf "clockify-tracker/internal/adapter/clockify"
	msql "clockify-tracker/internal/adapter/mysql"
	"clockify-tracker/internal/config"
	"clockify-tracker/internal/migrate"
	"clockify-tracker/internal/ports"
	"clockify-tracker/internal/state"
	"clockify-tracker/internal/usecase"
)

// App wires adapters and use cases.
type App struct {
	log   *slog.Logger
	cfg   config.Config
	store *state.Store
	api   ports.ClockifyAPI

	timer   *usecase.TimerUseCase
	summary *usecase.SummaryUseCase
	sync    *usecase.SyncUseCase
	sink    *msql.Client
}

func New(log *slog.Logger, cfg config.Config) (*App, error) {
	api := cf.NewClient(cfg.BaseURL, cfg.APIKey, log)
	store, err := state.NewStore(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	a := &App{
		log:   log,
		cfg:   cfg,
		store: store,
		api:   api,
		timer: &usecase.TimerUseCase{
			Log:         log,
			API:         api,
			State:       store,
			WorkspaceID: cfg.WorkspaceID,
			UserID:      cfg.UserID,
			Rate:        cfg.HourlyRate,
		},
		summary: &usecase.SummaryUseCase{
			Log:         log,
			API:         api,
			WorkspaceID: cfg.WorkspaceID,
			UserID:      cfg.UserID,
			Rate:        cfg.HourlyRate,
		},
	}
	a.sync = &usecase.SyncUseCase{
		Log:         log,
		API:         api,
		WorkspaceID: cfg.WorkspaceID,
		UserID:      cfg.UserID,
	}
	return a, nil
}

// API exposes the Clockify client for commands that call it directly.
func (a *App) API() ports.ClockifyAPI { return a.api }

// Timer exposes the start/stop/status use case.
func (a *App) Timer() *usecase.TimerUseCase { return a.timer }

// Summary exposes the monthly project summary use case.
func (a *App) Summary() *usecase.SummaryUseCase { return a.summary }

// Store exposes the local state store.
func (a *App) Store() *state.Store { return a.store }

// Config returns the loaded configuration.
func (a *App) Config() config.Config { return a.cfg }

// OpenSink runs migrations and connects the MySQL sink. It is called
// lazily so the tracking commands work without any database configured.
func (a *App) OpenSink(ctx context.Context) error {
	if a.sink != nil {
		return nil
	}
	if a.cfg.MySQL.DSN == "" {
		return errors.New("mysql dsn is not configured (set [mysql] dsn or MYSQL_DSN)")
	}
	if err := migrate.Run(ctx, a.cfg.MySQL.DSN, a.log); err != nil {
		return err
	}
	sink, err := msql.NewClient(ctx, a.cfg.MySQL.DSN, a.log)
	if err != nil {
		return err
	}
	a.sink = sink
	a.sync.Sink = sink
	return nil
}

// RunSync performs one history sync into MySQL, opening the sink on first use.
func (a *App) RunSync(ctx context.Context, from, to time.Time) error {
	if err := a.OpenSink(ctx); err != nil {
		return err
	}
	return a.sync.Run(ctx, from, to)
}

// Close releases held resources.
func (a *App) Close() error {
	if a.sink != nil {
		return a.sink.Close()
	}
	return nil
}
