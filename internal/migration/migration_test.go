package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadMigrationFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"002_add_notes.sql": {Data: []byte("ALTER TABLE items ADD COLUMN note TEXT;")},
		"001_init.sql":      {Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);")},
		"README.md":         {Data: []byte("not a migration")},
	}

	r := NewRunner(nil, fsys)
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles() error = %v", err)
	}

	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "init" {
		t.Errorf("first migration = %d/%q, want 1/init", migrations[0].Version, migrations[0].Name)
	}
	if migrations[1].Version != 2 || migrations[1].Name != "add_notes" {
		t.Errorf("second migration = %d/%q, want 2/add_notes", migrations[1].Version, migrations[1].Name)
	}
}

func TestReadMigrationFilesInvalidNames(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr string
	}{
		{"missing version", "init.sql", "invalid migration filename format"},
		{"non-numeric version", "abc_init.sql", "invalid version number"},
		{"zero version", "000_init.sql", "version must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{tt.file: {Data: []byte("SELECT 1;")}}
			r := NewRunner(nil, fsys)
			_, err := r.ReadMigrationFiles()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestReadMigrationFilesDuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql":  {Data: []byte("SELECT 1;")},
		"001_again.sql": {Data: []byte("SELECT 1;")},
	}

	r := NewRunner(nil, fsys)
	if _, err := r.ReadMigrationFiles(); err == nil {
		t.Fatal("expected duplicate version error, got nil")
	}
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql":      {Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);")},
		"002_add_notes.sql": {Data: []byte("ALTER TABLE items ADD COLUMN note TEXT;")},
	}

	r := NewRunner(db, fsys)

	applied, err := r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	version, err := r.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	// Second run is a no-op.
	applied, err = r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() second run error = %v", err)
	}
	if applied != 0 {
		t.Errorf("second run applied = %d, want 0", applied)
	}

	if _, err := db.Exec("INSERT INTO items (id, note) VALUES ('a', 'hello')"); err != nil {
		t.Errorf("migrated schema unusable: %v", err)
	}
}

func TestApplyMigrationsPartial(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);")},
	}

	r := NewRunner(db, fsys)
	if _, err := r.ApplyMigrations(nil); err != nil {
		t.Fatalf("initial migration error = %v", err)
	}

	// Add a new migration and re-run; only the new one applies.
	fsys["002_add_notes.sql"] = &fstest.MapFile{Data: []byte("ALTER TABLE items ADD COLUMN note TEXT;")}
	applied, err := r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
}

func TestApplyMigrationsFailureRollsBack(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);")},
		"002_bad.sql":  {Data: []byte("THIS IS NOT SQL;")},
	}

	r := NewRunner(db, fsys)
	applied, err := r.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from bad migration, got nil")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}

	version, err := r.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	if version != 1 {
		t.Errorf("version after failed migration = %d, want 1", version)
	}
}

func TestValidateVersion(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);")},
	}

	r := NewRunner(db, fsys)
	if err := r.ValidateVersion(); err != nil {
		t.Errorf("fresh database should validate: %v", err)
	}

	if err := r.SetVersion(99); err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}
	if err := r.ValidateVersion(); err == nil {
		t.Error("expected error for future schema version, got nil")
	}
}
