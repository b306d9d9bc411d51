package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/errors"
	"github.com/julianstephens/sitless/internal/models"
)

type Store struct {
	Version  int                     `json:"version"`
	Settings map[string]string       `json:"settings"`
	Records  []models.ReminderRecord `json:"records"`
}

var _ Provider = (*JSONStore)(nil)

type JSONStore struct {
	fs    afero.Fs
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return NewJSONStoreFs(afero.NewOsFs(), configPath)
}

// NewJSONStoreFs keeps the file on fs instead of the OS filesystem.
func NewJSONStoreFs(fs afero.Fs, configPath string) *JSONStore {
	return &JSONStore{
		fs:   fs,
		path: configPath,
	}
}

func emptyStore() *Store {
	return &Store{
		Version:  1,
		Settings: make(map[string]string),
		Records:  []models.ReminderRecord{},
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := s.fs.Stat(s.path); err == nil {
		return s.Load()
	}

	s.store = emptyStore()
	return s.save()
}

// Load reads the file. A file that cannot be parsed leaves the store empty
// and usable so the next save rewrites it; the parse error is still returned.
func (s *JSONStore) Load() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		s.store = emptyStore()
		return errors.Wrap(errors.ErrConfigLoad, fmt.Errorf("failed to parse storage: %w", err))
	}

	if store.Settings == nil {
		store.Settings = make(map[string]string)
	}
	if store.Records == nil {
		store.Records = []models.ReminderRecord{}
	}
	s.store = store

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write then rename so a crash never leaves a truncated file behind.
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (map[string]string, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	out := make(map[string]string, len(s.store.Settings))
	for k, v := range s.store.Settings {
		out[k] = v
	}
	return out, nil
}

func (s *JSONStore) SaveSettings(settings map[string]string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = make(map[string]string, len(settings))
	for k, v := range settings {
		s.store.Settings[k] = v
	}
	return s.save()
}

func (s *JSONStore) GetRecords() ([]models.ReminderRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return append([]models.ReminderRecord(nil), s.store.Records...), nil
}

// SaveRecords replaces the history. An empty list is written as [] so a
// cleared history stays cleared.
func (s *JSONStore) SaveRecords(records []models.ReminderRecord) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	records = TrimRecords(records, constants.MaxReminderRecords)
	s.store.Records = append([]models.ReminderRecord{}, records...)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
