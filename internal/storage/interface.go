package storage

import (
	"errors"

	"github.com/julianstephens/sitless/internal/models"
)

// ErrNotInitialized is returned by Load when the backing file does not exist.
var ErrNotInitialized = errors.New("storage not initialized")

// Provider persists settings as flat key-value pairs and the reminder history
// as an ordered list.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (map[string]string, error)
	SaveSettings(map[string]string) error

	// Records are stored oldest first.
	GetRecords() ([]models.ReminderRecord, error)
	SaveRecords([]models.ReminderRecord) error

	// Utils
	GetConfigPath() string
}

// TrimRecords keeps the newest max entries.
func TrimRecords(records []models.ReminderRecord, max int) []models.ReminderRecord {
	if over := len(records) - max; over > 0 {
		return records[over:]
	}
	return records
}
