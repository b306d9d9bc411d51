package models

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/sitless/internal/constants"
)

// ReminderRecord is one completed reminder cycle. It is immutable: the
// duration is computed once when the record is created.
type ReminderRecord struct {
	id              string
	startTime       time.Time
	endTime         time.Time
	durationMinutes int64
}

// NewReminderRecord creates a record with a fresh ID for the cycle [start, end].
func NewReminderRecord(start, end time.Time) ReminderRecord {
	return RestoreReminderRecord(uuid.NewString(), start, end)
}

// RestoreReminderRecord rebuilds a persisted record.
func RestoreReminderRecord(id string, start, end time.Time) ReminderRecord {
	return ReminderRecord{
		id:              id,
		startTime:       start,
		endTime:         end,
		durationMinutes: durationMinutes(start, end),
	}
}

// durationMinutes is the whole minutes from start to end, rounded down. An end
// before start counts as 0.
func durationMinutes(start, end time.Time) int64 {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int64(d / time.Minute)
}

func (r ReminderRecord) ID() string             { return r.id }
func (r ReminderRecord) StartTime() time.Time   { return r.startTime }
func (r ReminderRecord) EndTime() time.Time     { return r.endTime }
func (r ReminderRecord) DurationMinutes() int64 { return r.durationMinutes }

func (r ReminderRecord) StartTimeString() string {
	return r.startTime.Format(constants.DateTimeFormat)
}

func (r ReminderRecord) EndTimeString() string {
	return r.endTime.Format(constants.DateTimeFormat)
}

func (r ReminderRecord) DurationString() string {
	return fmt.Sprintf("%d min", r.durationMinutes)
}

type recordJSON struct {
	ID              string    `json:"id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int64     `json:"duration_minutes"`
}

func (r ReminderRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		ID:              r.id,
		StartTime:       r.startTime,
		EndTime:         r.endTime,
		DurationMinutes: r.durationMinutes,
	})
}

// UnmarshalJSON recomputes the duration from the stored bounds.
func (r *ReminderRecord) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = RestoreReminderRecord(raw.ID, raw.StartTime, raw.EndTime)
	return nil
}

// RecordLog is a bounded, oldest-first history of reminder cycles. Adding
// past capacity evicts the oldest entry. It is safe for concurrent use.
type RecordLog struct {
	mu       sync.RWMutex
	records  []ReminderRecord
	capacity int
}

// NewRecordLog returns a log holding at most 100 records.
func NewRecordLog() *RecordLog {
	return NewRecordLogWithCapacity(constants.MaxReminderRecords)
}

func NewRecordLogWithCapacity(capacity int) *RecordLog {
	if capacity < 1 {
		capacity = 1
	}
	return &RecordLog{capacity: capacity}
}

func (l *RecordLog) Add(r ReminderRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r)
	if over := len(l.records) - l.capacity; over > 0 {
		l.records = append([]ReminderRecord(nil), l.records[over:]...)
	}
}

// Replace swaps the whole history, keeping only the newest entries that fit.
func (l *RecordLog) Replace(records []ReminderRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if over := len(records) - l.capacity; over > 0 {
		records = records[over:]
	}
	l.records = append([]ReminderRecord(nil), records...)
}

// All returns a copy of the history, oldest first.
func (l *RecordLog) All() []ReminderRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]ReminderRecord(nil), l.records...)
}

func (l *RecordLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

func (l *RecordLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
}
