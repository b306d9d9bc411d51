package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	apperrors "github.com/julianstephens/sitless/internal/errors"
	"github.com/julianstephens/sitless/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "nested", "sitless.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestJSONStoreLoadMissing(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestJSONStoreSettingsRoundTrip(t *testing.T) {
	store := newTestJSONStore(t)

	settings := models.SettingsToMap(models.DefaultSettings())
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reopened.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	for k, v := range settings {
		if got[k] != v {
			t.Errorf("key %s: expected %q, got %q", k, v, got[k])
		}
	}
}

func TestJSONStoreRecordsTrimmed(t *testing.T) {
	store := newTestJSONStore(t)

	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	var records []models.ReminderRecord
	for i := 0; i < 105; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		records = append(records, models.NewReminderRecord(start, start.Add(30*time.Minute)))
	}
	if err := store.SaveRecords(records); err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}

	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, _ := reopened.GetRecords()
	if len(got) != 100 {
		t.Fatalf("expected 100 records, got %d", len(got))
	}
	if got[0].ID() != records[5].ID() {
		t.Errorf("expected oldest kept record to be #5, got %s", got[0].ID())
	}
	if got[99].DurationMinutes() != 30 {
		t.Errorf("expected 30 min, got %d", got[99].DurationMinutes())
	}
}

func TestJSONStoreClearedRecordsPersistAsEmpty(t *testing.T) {
	store := newTestJSONStore(t)
	start := time.Now()
	if err := store.SaveRecords([]models.ReminderRecord{models.NewReminderRecord(start, start)}); err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}
	if err := store.SaveRecords(nil); err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}

	data, err := os.ReadFile(store.GetConfigPath())
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if !strings.Contains(string(data), `"records": []`) {
		t.Errorf("expected empty records array in %s", data)
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitless.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	store := NewJSONStore(path)
	err := store.Load()
	if !errors.Is(err, apperrors.ErrConfigLoad) {
		t.Fatalf("expected ErrConfigLoad, got %v", err)
	}

	// The store stays usable and the next save repairs the file.
	if err := store.SaveSettings(map[string]string{"reminder.interval": "45"}); err != nil {
		t.Fatalf("SaveSettings after corrupt load failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Errorf("expected repaired file to load, got %v", err)
	}
}

func TestJSONStoreNotLoaded(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "x.json"))
	if _, err := store.GetSettings(); err == nil {
		t.Error("expected error before load")
	}
	if err := store.SaveRecords(nil); err == nil {
		t.Error("expected error before load")
	}
}

func TestJSONStoreOnMemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/config/sitless/sitless.json"

	store := NewJSONStoreFs(fs, path)
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	rec := models.NewReminderRecord(start, start.Add(30*time.Minute))
	if err := store.SaveRecords([]models.ReminderRecord{rec}); err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}

	if _, err := fs.Stat(path + ".tmp"); err == nil {
		t.Error("temporary file should be renamed away")
	}

	reopened := NewJSONStoreFs(fs, path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, _ := reopened.GetRecords()
	if len(got) != 1 || got[0].ID() != rec.ID() || got[0].DurationMinutes() != 30 {
		t.Errorf("unexpected records %v", got)
	}
}
