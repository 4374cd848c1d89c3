package system

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/mweber/cadence/internal/backup"
	"github.com/mweber/cadence/internal/cli"
	"github.com/mweber/cadence/internal/config"
	"github.com/mweber/cadence/internal/migration"
	"github.com/mweber/cadence/internal/storage/sqlite"
	"github.com/mweber/cadence/migrations"
)

func setupTestDoctorDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	ctx := &cli.Context{
		Store:  store,
		Config: &config.Config{Timezone: "UTC"},
	}

	cleanup := func() {
		store.Close()
	}

	return ctx, cleanup
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	cmd := &DoctorCmd{}
	err := cmd.Run(ctx)

	// Should pass all checks (missing backups is only a warning)
	if err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		t.Fatal("expected sqlite store")
	}

	db := sqliteStore.GetDB()
	if db == nil {
		t.Fatal("database connection is nil")
	}

	// Set an impossible future schema version
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("doctor command failed with backups present: %v", err)
	}
}

func TestCheckCompletionIntegrity_Orphans(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	sqliteStore := ctx.Store.(*sqlite.Store)
	db := sqliteStore.GetDB()

	// Foreign keys are enforced per connection, so a raw insert on a
	// fresh handle can still produce an orphan
	if _, err := db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		t.Fatalf("failed to disable foreign keys: %v", err)
	}
	_, err := db.Exec(
		"INSERT INTO completions (id, habit_id, day, created_at) VALUES ('c1', 'missing-habit', '2026-01-15', '2026-01-15T08:00:00Z')",
	)
	if err != nil {
		t.Fatalf("failed to insert orphaned completion: %v", err)
	}

	if err := checkCompletionIntegrity(ctx); err == nil {
		t.Error("checkCompletionIntegrity should fail with orphaned completions")
	}
}

func TestCheckDayFormats_Invalid(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	sqliteStore := ctx.Store.(*sqlite.Store)
	db := sqliteStore.GetDB()

	if _, err := db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		t.Fatalf("failed to disable foreign keys: %v", err)
	}
	_, err := db.Exec(
		"INSERT INTO completions (id, habit_id, day, created_at) VALUES ('c1', 'h1', 'Jan 15 2026', '2026-01-15T08:00:00Z')",
	)
	if err != nil {
		t.Fatalf("failed to insert malformed completion: %v", err)
	}

	if err := checkDayFormats(ctx); err == nil {
		t.Error("checkDayFormats should fail with malformed dates")
	}
}

func TestCheckMigrationsComplete_Incomplete(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		t.Fatal("expected sqlite store")
	}

	db := sqliteStore.GetDB()

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("failed to access sqlite migrations: %v", err)
	}

	runner := migration.NewRunner(db, subFS)

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("failed to get current version: %v", err)
	}

	// Downgrade schema version to simulate incomplete migrations
	if currentVersion > 1 {
		if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
			t.Fatalf("failed to delete schema version: %v", err)
		}
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", currentVersion-1); err != nil {
			t.Fatalf("failed to insert downgraded schema version: %v", err)
		}

		if err := checkMigrationsComplete(ctx); err == nil {
			t.Error("checkMigrationsComplete should fail with incomplete migrations")
		}
	}
}

func TestCheckClockTimezone(t *testing.T) {
	ctx := &cli.Context{Config: &config.Config{Timezone: "UTC"}}
	if err := checkClockTimezone(ctx); err != nil {
		t.Errorf("clock/timezone check failed: %v", err)
	}

	ctx.Config.Timezone = "Not/AZone"
	if err := checkClockTimezone(ctx); err == nil {
		t.Error("clock/timezone check should fail for an unknown timezone")
	}
}
