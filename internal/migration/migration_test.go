package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestMigrations(t *testing.T, files map[string]string) fs.FS {
	t.Helper()
	mfs := fstest.MapFS{}
	for name, content := range files {
		mfs[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return mfs
}

func setupSQLiteTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newSQLiteRunner(t *testing.T, db *sql.DB, files map[string]string) *Runner {
	t.Helper()
	runner, err := NewRunner(db, setupTestMigrations(t, files), DriverSQLite)
	if err != nil {
		t.Fatalf("failed to create migration runner: %v", err)
	}
	return runner
}

func TestNewRunnerRejectsBadInput(t *testing.T) {
	db := setupSQLiteTestDB(t)
	mfs := setupTestMigrations(t, nil)

	tests := []struct {
		name   string
		db     *sql.DB
		fs     fs.FS
		driver Driver
	}{
		{"nil db", nil, mfs, DriverSQLite},
		{"nil fs", db, nil, DriverSQLite},
		{"unknown driver", db, mfs, Driver("mysql")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRunner(tt.db, tt.fs, tt.driver); err == nil {
				t.Error("NewRunner() should fail")
			}
		})
	}
}

func TestPlaceholder(t *testing.T) {
	db := setupSQLiteTestDB(t)
	mfs := setupTestMigrations(t, nil)

	sqliteRunner, _ := NewRunner(db, mfs, DriverSQLite)
	pgRunner, _ := NewRunner(db, mfs, DriverPostgres)

	if got := sqliteRunner.insertVersionSQL(); !strings.HasSuffix(got, "(?)") {
		t.Errorf("sqlite insert = %q", got)
	}
	if got := pgRunner.insertVersionSQL(); !strings.HasSuffix(got, "($1)") {
		t.Errorf("postgres insert = %q", got)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	db := setupSQLiteTestDB(t)

	tests := []struct {
		name     string
		files    map[string]string
		versions []int
		wantErr  bool
	}{
		{
			name: "sorted by version",
			files: map[string]string{
				"002_logs.sql":  "SELECT 1;",
				"001_init.sql":  "SELECT 1;",
				"010_index.sql": "SELECT 1;",
				"README.md":     "ignored",
			},
			versions: []int{1, 2, 10},
		},
		{"bad name", map[string]string{"init.sql": "SELECT 1;"}, nil, true},
		{"non-numeric version", map[string]string{"abc_init.sql": "SELECT 1;"}, nil, true},
		{"zero version", map[string]string{"000_init.sql": "SELECT 1;"}, nil, true},
		{"duplicate version", map[string]string{"001_a.sql": "SELECT 1;", "1_b.sql": "SELECT 1;"}, nil, true},
		{"empty", map[string]string{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newSQLiteRunner(t, db, tt.files)
			migrations, err := runner.ReadMigrationFiles()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadMigrationFiles() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(migrations) != len(tt.versions) {
				t.Fatalf("got %d migrations, want %d", len(migrations), len(tt.versions))
			}
			for i, m := range migrations {
				if m.Version != tt.versions[i] {
					t.Errorf("migrations[%d].Version = %d, want %d", i, m.Version, tt.versions[i])
				}
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	db := setupSQLiteTestDB(t)
	files := map[string]string{
		"001_init.sql":  "CREATE TABLE items (id TEXT PRIMARY KEY);",
		"002_notes.sql": "ALTER TABLE items ADD COLUMN notes TEXT;",
	}
	runner := newSQLiteRunner(t, db, files)

	var logged []string
	count, err := runner.ApplyMigrations(func(s string) { logged = append(logged, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrations applied, got %d", count)
	}
	if len(logged) == 0 {
		t.Error("expected progress messages")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	if _, err := db.Exec("INSERT INTO items (id, notes) VALUES ('a', 'b')"); err != nil {
		t.Errorf("migrated schema unusable: %v", err)
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (2nd) failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 migrations on second run, got %d", count)
	}
}

func TestApplyMigrationsRollbackOnError(t *testing.T) {
	db := setupSQLiteTestDB(t)
	runner := newSQLiteRunner(t, db, map[string]string{
		"001_init.sql": "CREATE TABLE items (id TEXT PRIMARY KEY);",
		"002_bad.sql":  "CREATE TABLE reminders (id TEXT PRIMARY KEY); THIS IS INVALID SQL;",
	})

	count, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("ApplyMigrations should have failed with invalid SQL")
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", count)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1 after failed migration, got %d", version)
	}

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='reminders'").Scan(&name)
	if err != sql.ErrNoRows {
		t.Errorf("reminders table should not exist after rollback, err = %v", err)
	}
}

func TestValidateVersionRejectsNewerSchema(t *testing.T) {
	db := setupSQLiteTestDB(t)
	runner := newSQLiteRunner(t, db, map[string]string{
		"001_init.sql": "CREATE TABLE items (id TEXT PRIMARY KEY);",
	})

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("ValidateVersion should reject a schema newer than the migrations")
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations should refuse to run against a newer schema")
	}
}
