package system

import (
	"fmt"
	"io/fs"

	"github.com/mweber/cadence/internal/cli"
	"github.com/mweber/cadence/internal/migration"
	"github.com/mweber/cadence/internal/storage/sqlite"
	"github.com/mweber/cadence/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	// Postgres stores run pending migrations during Init; this command
	// covers the sqlite file that Init no longer touches.
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite storage")
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(db, subFS)
	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return err
	}

	if count == 0 {
		fmt.Println("Database is already up to date.")
	}

	return nil
}
