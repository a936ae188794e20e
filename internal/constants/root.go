package constants

import "time"

const (
	AppName            = "phoenix"
	KeyringService     = "phoenix-rise"
	DefaultConfigDir   = "~/.config/phoenix"
	DefaultDBPath      = "~/.config/phoenix/phoenix.db"
	DefaultConfigFile  = "config.yaml"
	Version            = "v0.3.0"
	ExportFormatMarker = "phoenix-rise-export"
	ExportVersion      = 1

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "phoenix-"
	BackupFileSuffix = ".json"

	// Persistence
	DefaultDebounce = 500 * time.Millisecond

	// Meal retention policies applied on daily rollover
	MealRetentionArchive = "archive"
	MealRetentionPrune   = "prune"
)
