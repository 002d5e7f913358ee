package constants

import "time"

const (
	AppName            = "habitbreaker"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitbreaker/habitbreaker.db"
	Version            = "v0.1.0"

	// EnvDBConnection names the environment variable holding a PostgreSQL connection string.
	EnvDBConnection = "HABITBREAKER_DB_CONNECTION"

	// DateTimeFormat is used when printing report timestamps
	DateTimeFormat = "2006-01-02 15:04"

	// MaxHabitNameLength is the maximum number of runes allowed in a habit name
	MaxHabitNameLength = 200

	// DefaultHistoryLimit is how many daily reports `history` shows by default
	DefaultHistoryLimit = 14

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitbreaker-"
	BackupFileSuffix = ".db"

	// Dispatcher rate limit: sustained commands per second and burst, per identity
	CommandsPerSecond = 1
	CommandBurst      = 5
	// LimiterSweepInterval is how often refilled per-identity limiters are dropped
	LimiterSweepInterval = time.Minute

	// SQLite connection tuning
	SQLiteBusyTimeout = 5 * time.Second

	// PostgreSQL pool tuning
	PostgresMaxOpenConns    = 25
	PostgresMaxIdleConns    = 25
	PostgresConnMaxLifetime = 5 * time.Minute
)
