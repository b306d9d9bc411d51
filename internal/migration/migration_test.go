package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCurrentVersionFresh(t *testing.T) {
	runner := NewRunner(setupTestDB(t), fstest.MapFS{})

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}
}

func TestMigrationsSorted(t *testing.T) {
	runner := NewRunner(setupTestDB(t), fstest.MapFS{
		"002_second.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"001_first.sql":  {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"README.md":      {Data: []byte("ignored")},
	})

	migrations, err := runner.Migrations()
	if err != nil {
		t.Fatalf("Migrations failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "first" {
		t.Errorf("unexpected first migration %+v", migrations[0])
	}
	if migrations[1].Version != 2 {
		t.Errorf("expected version 2, got %d", migrations[1].Version)
	}
}

func TestMigrationsInvalidNames(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		error string
	}{
		{"no underscore", "001.sql", "invalid migration filename"},
		{"not a number", "abc_init.sql", "invalid version number"},
		{"zero version", "000_init.sql", "at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), fstest.MapFS{
				tt.file: {Data: []byte("SELECT 1;")},
			})
			_, err := runner.Migrations()
			if err == nil || !strings.Contains(err.Error(), tt.error) {
				t.Errorf("expected error containing %q, got %v", tt.error, err)
			}
		})
	}
}

func TestApply(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"002_more.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
	})

	applied, err := runner.Apply()
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 applied, got %d", applied)
	}

	version, _ := runner.CurrentVersion()
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	applied, err = runner.Apply()
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected nothing to apply, got %d", applied)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"002_broken.sql": {Data: []byte("CREATE TABLE;")},
	})

	applied, err := runner.Apply()
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("expected 1 applied, got %d", applied)
	}

	version, _ := runner.CurrentVersion()
	if version != 1 {
		t.Errorf("expected version 1 after failure, got %d", version)
	}
}

func TestValidateNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE a (id INTEGER);")},
	})
	if _, err := runner.Apply(); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := runner.Validate(); err != nil {
		t.Errorf("expected valid schema, got %v", err)
	}

	if _, err := db.Exec("UPDATE schema_version SET version = 9"); err != nil {
		t.Fatalf("failed to bump version: %v", err)
	}
	if err := runner.Validate(); err == nil {
		t.Error("expected error for newer schema")
	}
}
