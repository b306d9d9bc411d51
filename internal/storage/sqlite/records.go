package sqlite

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/models"
	"github.com/julianstephens/sitless/internal/storage"
)

const recordsTable = "reminder_records"

func (s *Store) GetRecords() ([]models.ReminderRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := sq.Select("id", "start_time", "end_time").
		From(recordsTable).
		OrderBy("position").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ReminderRecord
	for rows.Next() {
		var id, startStr, endStr string
		if err := rows.Scan(&id, &startStr, &endStr); err != nil {
			return nil, err
		}

		start, err := time.Parse(time.RFC3339Nano, startStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start_time for record %s: %w", id, err)
		}
		end, err := time.Parse(time.RFC3339Nano, endStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end_time for record %s: %w", id, err)
		}

		records = append(records, models.RestoreReminderRecord(id, start, end))
	}

	return records, rows.Err()
}

// SaveRecords replaces the stored history in one transaction. An empty list
// leaves an empty table so a cleared history stays cleared.
func (s *Store) SaveRecords(records []models.ReminderRecord) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	records = storage.TrimRecords(records, constants.MaxReminderRecords)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := sq.Delete(recordsTable).RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	if len(records) > 0 {
		insert := sq.Insert(recordsTable).
			Columns("position", "id", "start_time", "end_time", "duration_minutes")
		for i, r := range records {
			insert = insert.Values(
				i,
				r.ID(),
				r.StartTime().Format(time.RFC3339Nano),
				r.EndTime().Format(time.RFC3339Nano),
				r.DurationMinutes(),
			)
		}
		if _, err := insert.RunWith(tx).Exec(); err != nil {
			return fmt.Errorf("failed to insert records: %w", err)
		}
	}

	return tx.Commit()
}
