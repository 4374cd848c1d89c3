package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mweber/cadence/internal/cli"
	"github.com/mweber/cadence/internal/storage"
	"github.com/mweber/cadence/internal/storage/postgres"
	"github.com/mweber/cadence/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized cadence storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	var sourceStore storage.Provider
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = postgres.New(sourcePath)
	} else {
		sourceStore = sqlite.NewStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating users...")
	users, err := sourceStore.GetAllUsers()
	if err != nil {
		return fmt.Errorf("failed to get users from source: %w", err)
	}
	for _, user := range users {
		if err := ctx.Store.AddUser(user); err != nil {
			return fmt.Errorf("failed to add user %s: %w", user.Username, err)
		}
	}
	fmt.Printf("    Migrated %d users\n", len(users))

	totalHabits := 0
	totalCompletions := 0
	for _, user := range users {
		habits, err := sourceStore.GetAllHabits(user.ID, true, true)
		if err != nil {
			return fmt.Errorf("failed to get habits from source: %w", err)
		}
		for _, habit := range habits {
			if err := ctx.Store.AddHabit(habit); err != nil {
				return fmt.Errorf("failed to add habit %s: %w", habit.Name, err)
			}
			totalHabits++

			completions, err := sourceStore.GetCompletions(habit.ID, "0001-01-01", "9999-12-31")
			if err != nil {
				return fmt.Errorf("failed to get completions for habit %s: %w", habit.Name, err)
			}
			for _, completion := range completions {
				if err := ctx.Store.AddCompletion(completion); err != nil {
					return fmt.Errorf("failed to add completion %s/%s: %w", habit.Name, completion.Day, err)
				}
				totalCompletions++
			}
		}
	}
	fmt.Printf("    Migrated %d habits\n", totalHabits)
	fmt.Printf("    Migrated %d completions\n", totalCompletions)

	return nil
}
