package constants

const (
	// Persisted setting keys
	SettingReminderInterval = "reminder.interval"
	SettingReminderText     = "reminder.text"
	SettingSoundFile        = "sound.file"
	SettingPopupEnabled     = "popup.enabled"
	SettingFlashEnabled     = "flash.enabled"
	SettingSoundEnabled     = "sound.enabled"
	SettingPopupDuration    = "popup.duration"
	SettingFlashCount       = "flash.count"
	SettingPopupColor       = "popup.color"
	SettingFlashEdges       = "flash.edges"

	// Default Settings Values
	DefaultReminderInterval = 30
	DefaultReminderText     = "该起身活动一下啦，伸个懒腰吧！"
	DefaultSoundFile        = "default_sound.wav"
	DefaultPopupEnabled     = true
	DefaultFlashEnabled     = true
	DefaultSoundEnabled     = true
	DefaultPopupDuration    = 4
	DefaultFlashCount       = 4
	DefaultPopupColor       = "blue"
	DefaultFlashEdge        = "top"

	// Validation ranges
	DaemonIntervalMin      = 10
	DaemonIntervalMax      = 120
	InteractiveIntervalMin = 1
	InteractiveIntervalMax = 300
	MaxReminderTextRunes   = 200
	PopupDurationMin       = 3
	PopupDurationMax       = 5
	FlashCountMin          = 3
	FlashCountMax          = 5
)
