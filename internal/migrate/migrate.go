// Package migrate maintains the Clockify reporting schema in MySQL.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

//go:embed sql/*.sql
var schemaFS embed.FS

// A migration is one embedded SQL file, split into its individual
// statements so the DSN does not need multiStatements enabled.
type migration struct {
	version    int
	name       string
	statements []string
}

const ledgerDDL = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name VARCHAR(128) NOT NULL,
	applied_at DATETIME(6) NOT NULL
) ENGINE=InnoDB;`

// Run brings the reporting tables up to date. Files under sql/ are named
// like 0001_create_tables.sql and applied in version order; each applied
// version is recorded with its name in schema_migrations.
func Run(ctx context.Context, dsn string, log *slog.Logger) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, ledgerDDL); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.version] {
			log.Debug("reporting schema migration already applied",
				slog.Int("version", m.version), slog.String("name", m.name))
			continue
		}
		log.Info("applying reporting schema migration",
			slog.Int("version", m.version),
			slog.String("name", m.name),
			slog.Int("statements", len(m.statements)),
		)
		for i, stmt := range m.statements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %04d_%s statement %d: %w", m.version, m.name, i+1, err)
			}
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO schema_migrations(version, name, applied_at) VALUES(?, ?, ?)",
			m.version, m.name, time.Now().UTC(),
		); err != nil {
			return fmt.Errorf("record migration %04d_%s: %w", m.version, m.name, err)
		}
	}
	return nil
}

func loadMigrations() ([]migration, error) {
	entries, err := fs.ReadDir(schemaFS, "sql")
	if err != nil {
		return nil, err
	}

	seen := make(map[int]string)
	out := make([]migration, 0, len(entries))
	for _, e := range entries {
		version, name, err := parseFilename(e.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid migration filename %q: %w", e.Name(), err)
		}
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %d (%s and %s)", version, prev, e.Name())
		}
		seen[version] = e.Name()

		b, err := fs.ReadFile(schemaFS, "sql/"+e.Name())
		if err != nil {
			return nil, err
		}
		stmts := splitStatements(string(b))
		if len(stmts) == 0 {
			return nil, fmt.Errorf("migration %q contains no statements", e.Name())
		}
		out = append(out, migration{version: version, name: name, statements: stmts})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

// parseFilename splits 0001_create_tables.sql into version 1 and
// name "create_tables".
func parseFilename(file string) (int, string, error) {
	base, ok := strings.CutSuffix(file, ".sql")
	if !ok {
		return 0, "", fmt.Errorf("missing .sql suffix")
	}
	prefix, name, ok := strings.Cut(base, "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("expected NNNN_name form")
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, "", err
	}
	if version <= 0 {
		return 0, "", fmt.Errorf("version must be positive")
	}
	return version, name, nil
}

// splitStatements cuts a migration file at semicolons. Good enough for
// DDL; none of the reporting schema embeds a semicolon in a literal.
func splitStatements(src string) []string {
	var out []string
	for _, part := range strings.Split(src, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	m := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		m[v] = true
	}
	return m, rows.Err()
}
