package system

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/mweber/cadence/internal/backup"
	"github.com/mweber/cadence/internal/cli"
	"github.com/mweber/cadence/internal/constants"
	"github.com/mweber/cadence/internal/migration"
	"github.com/mweber/cadence/internal/models"
	"github.com/mweber/cadence/internal/storage/sqlite"
	"github.com/mweber/cadence/internal/utils"
	"github.com/mweber/cadence/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 4: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: Clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 6: Completion integrity (only if DB is reachable)
	if dbReachable {
		if err := checkCompletionIntegrity(ctx); err != nil {
			fmt.Printf("❌ Completion integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Completion integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Completion integrity: SKIPPED (database not reachable)\n")
	}

	// Check 7: Frequency values (only if DB is reachable)
	if dbReachable {
		if err := checkFrequencies(ctx); err != nil {
			fmt.Printf("❌ Frequency values: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Frequency values: OK\n")
		}
	} else {
		fmt.Printf("⊘ Frequency values: SKIPPED (database not reachable)\n")
	}

	// Check 8: Date formats (only if DB is reachable)
	if dbReachable {
		if err := checkDayFormats(ctx); err != nil {
			fmt.Printf("❌ Date formats: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Date formats: OK\n")
		}
	} else {
		fmt.Printf("⊘ Date formats: SKIPPED (database not reachable)\n")
	}

	// Check 9: Concurrent processes (warning only)
	if others, err := findOtherProcesses(); err != nil {
		fmt.Printf("⚠ Concurrent processes: WARNING\n")
		fmt.Printf("   Could not scan processes: %v\n", err)
	} else if len(others) > 0 {
		fmt.Printf("⚠ Concurrent processes: WARNING\n")
		fmt.Printf("   Found %d other running cadence process(es) (pids %v)\n", len(others), others)
		fmt.Printf("   Concurrent writes to the same sqlite file can contend for locks\n")
	} else {
		fmt.Printf("✓ Concurrent processes: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// Postgres validates its schema on Load
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access migrations: %w", err)
	}

	runner := migration.NewRunner(db, subFS)
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access migrations: %w", err)
	}

	runner := migration.NewRunner(db, subFS)

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", currentVersion, latestVersion)
	}

	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'cadence backup create'")
	}

	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if _, err := utils.LoadLocation(ctx.Config.Timezone); err != nil {
		return fmt.Errorf("configured timezone %q is invalid: %w", ctx.Config.Timezone, err)
	}

	return nil
}

func checkCompletionIntegrity(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil // Not SQLite, skip
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	// Orphaned completions (referencing non-existent habits)
	var orphanedCount int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM completions c
		LEFT JOIN habits h ON c.habit_id = h.id
		WHERE h.id IS NULL
	`).Scan(&orphanedCount)
	if err != nil {
		return fmt.Errorf("failed to check orphaned completions: %w", err)
	}
	if orphanedCount > 0 {
		return fmt.Errorf("found %d orphaned completions (referencing non-existent habits)", orphanedCount)
	}

	// Duplicate habit+day combinations (should be impossible under the
	// unique index; a failed migration could still produce them)
	var duplicateCount int
	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM (
			SELECT habit_id, day, COUNT(*) as cnt
			FROM completions
			GROUP BY habit_id, day
			HAVING cnt > 1
		)
	`).Scan(&duplicateCount)
	if err != nil {
		return fmt.Errorf("failed to check duplicate completions: %w", err)
	}
	if duplicateCount > 0 {
		return fmt.Errorf("found %d habit+day combinations with duplicate completions", duplicateCount)
	}

	// Out-of-range ratings
	var badRatingCount int
	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM completions
		WHERE rating IS NOT NULL AND (rating < 1 OR rating > 5)
	`).Scan(&badRatingCount)
	if err != nil {
		return fmt.Errorf("failed to check ratings: %w", err)
	}
	if badRatingCount > 0 {
		return fmt.Errorf("found %d completions with out-of-range ratings", badRatingCount)
	}

	return nil
}

func checkFrequencies(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil // Not SQLite, skip
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var invalidCount int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM habits
		WHERE frequency NOT IN (?, ?, ?)
	`, string(models.FrequencyDaily), string(models.FrequencyWeekly), string(models.FrequencyMonthly)).Scan(&invalidCount)
	if err != nil {
		return fmt.Errorf("failed to check frequencies: %w", err)
	}
	if invalidCount > 0 {
		return fmt.Errorf("found %d habits with unknown frequency values", invalidCount)
	}

	return nil
}

func checkDayFormats(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil // Not SQLite, skip
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var invalidCount int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM completions
		WHERE day NOT GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'
	`).Scan(&invalidCount)
	if err != nil {
		return fmt.Errorf("failed to check completion dates: %w", err)
	}
	if invalidCount > 0 {
		return fmt.Errorf("found %d completions with invalid date format", invalidCount)
	}

	return nil
}

// findOtherProcesses returns the pids of other running processes that
// look like this binary.
func findOtherProcesses() ([]int, error) {
	processes, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	self := os.Getpid()
	var others []int
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == constants.AppName {
			others = append(others, p.Pid())
		}
	}

	return others, nil
}
