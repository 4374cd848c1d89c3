// Package cli holds the command implementations shared by the cadence
// binary's kong command tree.
package cli

import (
	"fmt"
	"time"

	"github.com/mweber/cadence/internal/backup"
	"github.com/mweber/cadence/internal/config"
	errs "github.com/mweber/cadence/internal/errors"
	"github.com/mweber/cadence/internal/logger"
	"github.com/mweber/cadence/internal/models"
	"github.com/mweber/cadence/internal/stats"
	"github.com/mweber/cadence/internal/storage"
	"github.com/mweber/cadence/internal/utils"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config
	Stats  *stats.Service
}

// ResolveUser picks the acting user: the --user override when given,
// otherwise the configured default_user. Commands that touch habits
// all go through here.
func (c *Context) ResolveUser(override string) (models.User, error) {
	username := override
	if username == "" {
		username = c.Config.DefaultUser
	}
	if username == "" {
		return models.User{}, errs.Validationf("no user selected: pass --user or set default_user in the config file")
	}

	user, err := c.Store.GetUserByName(username)
	if err != nil {
		if errs.IsNotFound(err) {
			return models.User{}, errs.NotFoundf("user %q (create one with 'cadence user add')", username)
		}
		return models.User{}, err
	}
	return user, nil
}

// ResolveDay validates an explicit date flag or falls back to today in
// the configured timezone.
func (c *Context) ResolveDay(date string) (string, error) {
	if date == "" {
		return utils.TodayInTimezone(c.Config.Timezone)
	}
	if !utils.ValidDay(date) {
		return "", errs.Validationf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

// ResolveAsOf is ResolveDay plus parsing into the analytics engine's
// time form.
func (c *Context) ResolveAsOf(date string) (time.Time, error) {
	day, err := c.ResolveDay(date)
	if err != nil {
		return time.Time{}, err
	}
	return utils.ParseDay(day)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FormatRate renders a completion-rate fraction as a percentage.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}
