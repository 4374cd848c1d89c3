package storage

import (
	"net/url"
	"strings"

	"github.com/mweber/cadence/internal/models"
)

// Provider is the persistence contract shared by the sqlite and
// postgres backends. Day arguments and return values use the
// "2006-01-02" form; range bounds are inclusive.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	AddUser(models.User) error
	GetUser(id string) (models.User, error)
	GetUserByName(username string) (models.User, error)
	GetAllUsers() ([]models.User, error)

	// Habits. All lookups are scoped to an owner: a habit belonging to
	// a different user is reported as not found, never as forbidden.
	AddHabit(models.Habit) error
	GetHabit(ownerID, id string) (models.Habit, error)
	GetHabitByName(ownerID, name string) (models.Habit, error)
	GetAllHabits(ownerID string, includeArchived, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(ownerID, id string) error
	UnarchiveHabit(ownerID, id string) error
	DeleteHabit(ownerID, id string) error
	RestoreHabit(ownerID, id string) error

	// Completions
	AddCompletion(models.Completion) error
	GetCompletion(habitID, day string) (models.Completion, error)
	GetCompletions(habitID, startDay, endDay string) ([]models.Completion, error)
	DeleteCompletion(habitID, day string) error
	CountCompletions(ownerID string) (int, error)

	// GetCompletionDates returns the distinct completion days for one
	// habit in ascending order. A completion is at most one per day, so
	// the result doubles as the habit's completion log.
	GetCompletionDates(habitID, startDay, endDay string) ([]string, error)

	// GetHabitCompletionDates returns every live habit's completion
	// days for an owner, keyed by habit id, each list ascending.
	GetHabitCompletionDates(ownerID string) (map[string][]string, error)

	// Utils
	GetConfigPath() string
}

// HasEmbeddedCredentials reports whether a postgres connection string
// carries an inline password. Such strings are rejected at startup so
// credentials stay in the OS keyring or the environment.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return true
			}
		}
		return false
	}

	for _, pair := range strings.Fields(connStr) {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "password") {
			return true
		}
	}
	return false
}
