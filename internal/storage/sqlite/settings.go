package sqlite

import (
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"
)

const settingsTable = "settings"

func (s *Store) GetSettings() (map[string]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := sq.Select("key", "value").From(settingsTable).RunWith(s.db).Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}

	return settings, rows.Err()
}

// SaveSettings upserts every key. Keys missing from settings are left alone.
func (s *Store) SaveSettings(settings map[string]string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if len(settings) == 0 {
		return nil
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	upsert := sq.Replace(settingsTable).Columns("key", "value")
	for _, k := range keys {
		upsert = upsert.Values(k, settings[k])
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := upsert.RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return tx.Commit()
}
