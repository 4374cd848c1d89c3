// Package backup manages rotating snapshots of the sqlite database.
package backup

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mweber/cadence/internal/constants"
	"github.com/mweber/cadence/internal/logger"
)

// MaxBackups is the number of snapshots kept before rotation removes
// the oldest.
const MaxBackups = constants.MaxBackups

const timestampFormat = "20060102-150405"

// Info describes a single backup file.
type Info struct {
	Path      string
	Size      int64
	Timestamp time.Time
}

// Manager creates, lists, and restores backups next to the database
// file. It is sqlite-only; postgres deployments are expected to use
// pg_dump and friends.
type Manager struct {
	dbPath    string
	backupDir string
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the database into the backup directory and
// rotates old snapshots. Returns the path of the new backup file.
func (m *Manager) CreateBackup() (string, error) {
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database file not found: %s", m.dbPath)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := constants.BackupFilePrefix + time.Now().Format(timestampFormat) + constants.BackupFileSuffix
	backupPath := filepath.Join(m.backupDir, name)

	// VACUUM INTO produces a consistent snapshot even with an open
	// connection elsewhere. Fall back to a plain file copy if the
	// sqlite build doesn't support it.
	if err := m.vacuumInto(backupPath); err != nil {
		logger.Warn("VACUUM INTO failed, falling back to file copy", "error", err)
		if copyErr := copyFile(m.dbPath, backupPath); copyErr != nil {
			return "", fmt.Errorf("backup failed: %w", copyErr)
		}
	}

	if err := m.rotate(); err != nil {
		logger.Warn("Backup rotation failed", "error", err)
	}

	return backupPath, nil
}

func (m *Manager) vacuumInto(dest string) error {
	db, err := sql.Open("sqlite", m.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec("VACUUM INTO ?", dest)
	return err
}

// ListBackups returns known backups sorted newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}

		ts, err := time.ParseInLocation(timestampFormat,
			strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix),
			time.Local)
		if err != nil {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			return nil, err
		}

		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, name),
			Size:      fi.Size(),
			Timestamp: ts,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// RestoreBackup replaces the live database with the given backup file.
// The current database is snapshotted first so a bad restore can be
// undone.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup file not accessible: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		if _, err := m.CreateBackup(); err != nil {
			return fmt.Errorf("failed to back up current database before restore: %w", err)
		}
	}

	// Copy to a temp file next to the target, then rename; rename is
	// atomic on the same filesystem.
	tmpPath := m.dbPath + ".restore-tmp"
	if err := copyFile(backupPath, tmpPath); err != nil {
		return fmt.Errorf("failed to stage restore: %w", err)
	}
	if err := os.Rename(tmpPath, m.dbPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace database: %w", err)
	}

	return nil
}

func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
