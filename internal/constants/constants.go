package constants

const (
	AppName            = "cadence"
	DefaultKeyringUser = "database-connection"
	DefaultStoragePath = "~/.config/cadence/cadence.db"
	DefaultConfigPath  = "~/.config/cadence/config.toml"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "cadence-"
	BackupFileSuffix = ".db"

	// Analytics defaults
	DefaultTopStreaks         = 5
	DefaultStreakGracePeriods = 0
	DefaultTimezone           = "Local" // Use system local timezone by default

	// WeeklyHistogramWeeks is the lookback window for the per-weekday completion histogram
	WeeklyHistogramWeeks = 4
)
