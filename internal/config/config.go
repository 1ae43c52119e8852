package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds credentials, billing, and display settings. Values come
// from the TOML config file and may be overridden by environment
// variables. The API key, workspace ID, and user ID are opaque strings;
// they are only validated by the Clockify API itself.
type Config struct {
	APIKey      string  `toml:"api_key" validate:"omitempty"`
	WorkspaceID string  `toml:"workspace_id"`
	UserID      string  `toml:"user_id"`
	BaseURL     string  `toml:"base_url" validate:"url"`
	HourlyRate  float64 `toml:"hourly_rate" validate:"gte=0"`
	Timezone    string  `toml:"timezone"`
	StateDir    string  `toml:"state_dir"`

	Display Display `toml:"display"`

	MySQL struct {
		DSN string `toml:"dsn"` // e.g. user:pass@tcp(host:3306)/db?parseTime=true
	} `toml:"mysql"`

	Serve struct {
		Addr string `toml:"addr" validate:"omitempty,hostname_port"`
	} `toml:"serve"`
}

// Display selects which fields the status output and the panel show.
type Display struct {
	ShowBillable    bool `toml:"show_billable"`
	ShowElapsed     bool `toml:"show_elapsed_time"`
	ShowProjectName bool `toml:"show_project_name"`
	ShowTaskName    bool `toml:"show_task_name"`
	ShowClientName  bool `toml:"show_client_name"`
	ShowLastSession bool `toml:"show_last_session"`
}

const (
	defaultBaseURL    = "https://api.clockify.me"
	defaultHourlyRate = 25.0
	defaultServeAddr  = "127.0.0.1:8712"
)

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "clockify-tracker", "config.toml")
}

func defaults() Config {
	cfg := Config{
		BaseURL:    defaultBaseURL,
		HourlyRate: defaultHourlyRate,
		Timezone:   "UTC",
		Display: Display{
			ShowBillable:    true,
			ShowElapsed:     true,
			ShowProjectName: true,
			ShowTaskName:    true,
			ShowClientName:  true,
			ShowLastSession: true,
		},
	}
	cfg.Serve.Addr = defaultServeAddr
	return cfg
}

// Load reads the config file at path (DefaultPath when empty), applies
// environment overrides, and validates the result. A missing file is not
// an error; defaults plus environment are used instead.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}

	cfg := defaults()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Fall through to env overrides.
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg)
	fillDefaults(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg back to path (DefaultPath when empty). Used by
// `whoami --save` to persist the fetched user ID.
func Save(path string, cfg Config) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CLOCKIFY_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("CLOCKIFY_WORKSPACE_ID"); v != "" {
		cfg.WorkspaceID = v
	}
	if v := os.Getenv("CLOCKIFY_USER_ID"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("CLOCKIFY_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CLOCKIFY_HOURLY_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HourlyRate = rate
		}
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		cfg.MySQL.DSN = v
	}
	if v := os.Getenv("SYNC_TZ"); v != "" {
		cfg.Timezone = v
	}
}

func fillDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = defaultServeAddr
	}
}

// RequireCredentials checks the fields every authenticated call needs.
// User ID is only needed by a subset of endpoints, so callers ask for it
// explicitly.
func (c Config) RequireCredentials(needUserID bool) error {
	if c.APIKey == "" {
		return errors.New("api_key is required (set it in the config file or CLOCKIFY_API_KEY)")
	}
	if c.WorkspaceID == "" {
		return errors.New("workspace_id is required (set it in the config file or CLOCKIFY_WORKSPACE_ID)")
	}
	if needUserID && c.UserID == "" {
		return errors.New("user_id is required (run `clockify-tracker whoami --save` to fill it)")
	}
	return nil
}
