package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"clockify-tracker/internal/domain"
)

// Client implements ports.Sink by writing to MySQL reporting tables.
type Client struct {
	db  *sql.DB
	log *slog.Logger
}

// NewClient opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true
func NewClient(ctx context.Context, dsn string, log *slog.Logger) (*Client, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	return &Client{db: db, log: log}, nil
}

// SyncEntries upserts time entries into the history table.
func (c *Client) SyncEntries(ctx context.Context, entries []domain.TimeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	const q = `
INSERT INTO clockify_time_entries
  (id, description, project_id, workspace_id, user_id, billable, tag_ids, start, stop, duration_sec)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  description=VALUES(description),
  project_id=VALUES(project_id),
  workspace_id=VALUES(workspace_id),
  user_id=VALUES(user_id),
  billable=VALUES(billable),
  tag_ids=VALUES(tag_ids),
  start=VALUES(start),
  stop=VALUES(stop),
  duration_sec=VALUES(duration_sec);
`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		// Tags stored as a JSON array for readability.
		tagsJSON, _ := json.Marshal(e.TagIDs)
		var stop interface{}
		if e.End != nil {
			stop = e.End.UTC()
		} else {
			stop = nil
		}
		if _, err := stmt.ExecContext(
			ctx,
			e.ID,
			e.Description,
			nullable(e.ProjectID),
			nullable(e.WorkspaceID),
			nullable(e.UserID),
			e.Billable,
			string(tagsJSON),
			e.Start.UTC(),
			stop,
			e.DurationSec,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	c.log.Info("mysql sink upserted entries", slog.Int("count", len(entries)))
	return nil
}

// SyncProjects upserts projects into the project table.
func (c *Client) SyncProjects(ctx context.Context, projects []domain.Project) error {
	if len(projects) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	const q = `
INSERT INTO clockify_projects
  (id, workspace_id, name, client_id, client_name, color, public, archived, billable)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  workspace_id=VALUES(workspace_id),
  name=VALUES(name),
  client_id=VALUES(client_id),
  client_name=VALUES(client_name),
  color=VALUES(color),
  public=VALUES(public),
  archived=VALUES(archived),
  billable=VALUES(billable);
`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range projects {
		if _, err := stmt.ExecContext(
			ctx,
			p.ID,
			p.WorkspaceID,
			p.Name,
			nullable(p.ClientID),
			nullable(p.ClientName),
			p.Color,
			p.Public,
			p.Archived,
			p.Billable,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	c.log.Info("mysql sink upserted projects", slog.Int("count", len(projects)))
	return nil
}

// Close closes the underlying DB. Not wired via interface to keep ports minimal.
func (c *Client) Close() error { return c.db.Close() }

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
