package constants

import "time"

const (
	AppName           = "sitless"
	Version           = "v0.1.0"
	DefaultConfigPath = "~/.config/sitless/sitless.db"

	// DateTimeFormat is used when displaying reminder records
	DateTimeFormat = "2006-01-02 15:04:05"

	// Scheduler constants
	TickInterval = time.Second

	// Record log constants
	MaxReminderRecords = 100

	// Context classifier constants
	FullScreenTolerancePx = 10

	// Notify constants
	NotifierLockfileName = "sitless-tray.lock"
	TrayAppIdentifier    = "com.julianstephens.sitless"
	TrayExecutablePrefix = "sitless-tray"
	TraySecretHeader     = "X-Sitless-Secret"
	TrayRequestTimeout   = 2 * time.Second
	FlashIntervalMs      = 200
	LowVolumeGainDB      = -10.0
	DispatchDrainTimeout = 5 * time.Second
)
