// Package config owns the process-wide reminder state: the current settings
// and the record history. It loads both from a storage.Provider once and
// writes back only what changed.
package config

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/julianstephens/sitless/internal/errors"
	"github.com/julianstephens/sitless/internal/logger"
	"github.com/julianstephens/sitless/internal/models"
	"github.com/julianstephens/sitless/internal/storage"
)

type Config struct {
	store         storage.Provider
	intervalRange models.IntervalRange

	loadOnce sync.Once
	loadErr  error

	mu            sync.RWMutex
	settings      models.Settings
	records       *models.RecordLog
	settingsDirty bool
	recordsDirty  bool
}

// New returns a Config holding defaults until Load is called. Interval writes
// are validated against r.
func New(store storage.Provider, r models.IntervalRange) *Config {
	return &Config{
		store:         store,
		intervalRange: r,
		settings:      models.DefaultSettingsFor(r),
		records:       models.NewRecordLog(),
	}
}

// Load reads settings and records from the store. Only the first call does
// any work. A missing store is created. Unreadable settings or records leave
// the defaults in place; the returned error describes what was skipped and is
// never fatal.
func (c *Config) Load() error {
	c.loadOnce.Do(func() {
		c.loadErr = c.load()
	})
	return c.loadErr
}

func (c *Config) load() error {
	if c.store == nil {
		return nil
	}

	var errs []error
	if err := c.store.Load(); err != nil {
		if stderrors.Is(err, storage.ErrNotInitialized) {
			logger.Info("Creating storage", "path", c.store.GetConfigPath())
			if err := c.store.Init(); err != nil {
				return errors.Wrap(errors.ErrConfigLoad, err)
			}
		} else {
			logger.Warn("Failed to load storage, using defaults", "path", c.store.GetConfigPath(), "error", err)
			errs = append(errs, errors.Wrap(errors.ErrConfigLoad, err))
		}
	}

	settings := models.DefaultSettingsFor(c.intervalRange)
	if data, err := c.store.GetSettings(); err != nil {
		logger.Warn("Failed to read settings, using defaults", "error", err)
		errs = append(errs, errors.Wrap(errors.ErrConfigLoad, err))
	} else if s, err := models.MapToSettings(data, c.intervalRange); err != nil {
		logger.Warn("Invalid settings, using defaults", "error", err)
		errs = append(errs, errors.Wrap(errors.ErrConfigLoad, err))
	} else {
		settings = s
	}

	records, err := c.store.GetRecords()
	if err != nil {
		logger.Warn("Failed to read reminder records", "error", err)
		errs = append(errs, errors.Wrap(errors.ErrRecordPersist, err))
	}

	c.mu.Lock()
	c.settings = settings
	c.records.Replace(records)
	c.mu.Unlock()

	logger.Debug("Loaded config", "interval", settings.IntervalMinutes(), "records", len(records))
	return stderrors.Join(errs...)
}

// Save writes settings and records that changed since Load. Both are
// attempted even if one fails.
func (c *Config) Save() error {
	if c.store == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.settingsDirty {
		if err := c.store.SaveSettings(models.SettingsToMap(c.settings)); err != nil {
			logger.Error("Failed to save settings", "error", err)
			errs = append(errs, fmt.Errorf("failed to save settings: %w", err))
		} else {
			c.settingsDirty = false
		}
	}
	if c.recordsDirty {
		if err := c.store.SaveRecords(c.records.All()); err != nil {
			logger.Error("Failed to save reminder records", "error", err)
			errs = append(errs, errors.Wrap(errors.ErrRecordPersist, err))
		} else {
			c.recordsDirty = false
		}
	}
	return stderrors.Join(errs...)
}

// Settings returns a snapshot of the current settings.
func (c *Config) Settings() models.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.Snapshot()
}

// UpdateSettings applies fn to a working copy and keeps it. fn uses the
// setters, so rejected values leave the previous value in place.
func (c *Config) UpdateSettings(fn func(s *models.Settings)) models.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.settings.Snapshot()
	fn(&next)
	c.settings = next
	c.settingsDirty = true
	return next.Snapshot()
}

// AddRecord appends a completed cycle, evicting the oldest past capacity.
func (c *Config) AddRecord(record models.ReminderRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records.Add(record)
	c.recordsDirty = true
}

// Records returns the history oldest first.
func (c *Config) Records() []models.ReminderRecord {
	return c.records.All()
}

func (c *Config) ClearRecords() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records.Clear()
	c.recordsDirty = true
}

func (c *Config) IntervalRange() models.IntervalRange {
	return c.intervalRange
}

func (c *Config) Store() storage.Provider {
	return c.store
}
