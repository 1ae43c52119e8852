package migrate

import (
	"strings"
	"testing"
)

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("loadMigrations: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("no embedded migrations found")
	}

	first := migrations[0]
	if first.version != 1 {
		t.Fatalf("first version = %d, want 1", first.version)
	}
	if first.name != "create_tables" {
		t.Fatalf("first name = %q, want %q", first.name, "create_tables")
	}
	if len(first.statements) != 2 {
		t.Fatalf("statement count = %d, want 2", len(first.statements))
	}
	if !strings.Contains(first.statements[0], "clockify_time_entries") {
		t.Fatalf("first statement does not create clockify_time_entries: %q", first.statements[0])
	}
	if !strings.Contains(first.statements[1], "clockify_projects") {
		t.Fatalf("second statement does not create clockify_projects: %q", first.statements[1])
	}

	for i := 1; i < len(migrations); i++ {
		if migrations[i].version <= migrations[i-1].version {
			t.Fatalf("versions not strictly increasing: %d then %d",
				migrations[i-1].version, migrations[i].version)
		}
	}
}

func TestParseFilename(t *testing.T) {
	cases := []struct {
		file    string
		version int
		name    string
		wantErr bool
	}{
		{"0001_create_tables.sql", 1, "create_tables", false},
		{"0012_add_rates.sql", 12, "add_rates", false},
		{"create_tables.sql", 0, "", true},
		{"0001_.sql", 0, "", true},
		{"0000_noop.sql", 0, "", true},
		{"0001_create_tables", 0, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.file, func(t *testing.T) {
			version, name, err := parseFilename(tc.file)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseFilename(%q) = %d, %q, want error", tc.file, version, name)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFilename(%q): %v", tc.file, err)
			}
			if version != tc.version || name != tc.name {
				t.Fatalf("parseFilename(%q) = %d, %q, want %d, %q",
					tc.file, version, name, tc.version, tc.name)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("CREATE TABLE a (id INT);\n\nCREATE TABLE b (id INT);\n")
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	for _, s := range stmts {
		if strings.HasSuffix(s, ";") || strings.TrimSpace(s) != s {
			t.Fatalf("statement not trimmed: %q", s)
		}
	}

	if got := splitStatements("  \n ; ; "); got != nil {
		t.Fatalf("blank input produced statements: %q", got)
	}
}
