package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/julianstephens/sitless/internal/errors"
	"github.com/julianstephens/sitless/internal/models"
	"github.com/julianstephens/sitless/internal/storage"
)

type fakeStore struct {
	loadErr      error
	initialized  bool
	settings     map[string]string
	records      []models.ReminderRecord
	recordsErr   error
	saveErr      error
	settingSaves int
	recordSaves  int
}

func (f *fakeStore) Init() error  { f.initialized = true; return nil }
func (f *fakeStore) Load() error  { return f.loadErr }
func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) GetSettings() (map[string]string, error) { return f.settings, nil }

func (f *fakeStore) SaveSettings(m map[string]string) error {
	f.settingSaves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.settings = m
	return nil
}

func (f *fakeStore) GetRecords() ([]models.ReminderRecord, error) {
	return f.records, f.recordsErr
}

func (f *fakeStore) SaveRecords(r []models.ReminderRecord) error {
	f.recordSaves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records = r
	return nil
}

func (f *fakeStore) GetConfigPath() string { return "fake" }

func TestLoadMissingStoreInitializes(t *testing.T) {
	store := &fakeStore{loadErr: storage.ErrNotInitialized}
	cfg := New(store, models.DaemonIntervalRange)

	if err := cfg.Load(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !store.initialized {
		t.Error("expected store to be initialized")
	}
	if cfg.Settings().IntervalMinutes() != 30 {
		t.Errorf("expected default interval 30, got %d", cfg.Settings().IntervalMinutes())
	}
}

func TestLoadCorruptSettingsFallsBack(t *testing.T) {
	store := &fakeStore{settings: map[string]string{"reminder.interval": "thirty"}}
	cfg := New(store, models.DaemonIntervalRange)

	err := cfg.Load()
	if !errors.Is(err, apperrors.ErrConfigLoad) {
		t.Fatalf("expected ErrConfigLoad, got %v", err)
	}
	if cfg.Settings().IntervalMinutes() != 30 {
		t.Errorf("expected default interval, got %d", cfg.Settings().IntervalMinutes())
	}
}

func TestLoadRecordFailureKeepsSettings(t *testing.T) {
	store := &fakeStore{
		settings:   map[string]string{"reminder.interval": "45"},
		recordsErr: errors.New("bad row"),
	}
	cfg := New(store, models.DaemonIntervalRange)

	err := cfg.Load()
	if !errors.Is(err, apperrors.ErrRecordPersist) {
		t.Fatalf("expected ErrRecordPersist, got %v", err)
	}
	if cfg.Settings().IntervalMinutes() != 45 {
		t.Errorf("expected interval 45, got %d", cfg.Settings().IntervalMinutes())
	}
	if len(cfg.Records()) != 0 {
		t.Errorf("expected empty history, got %d", len(cfg.Records()))
	}
}

func TestLoadOnce(t *testing.T) {
	store := &fakeStore{settings: map[string]string{"reminder.interval": "45"}}
	cfg := New(store, models.DaemonIntervalRange)
	cfg.Load()

	store.settings = map[string]string{"reminder.interval": "60"}
	cfg.Load()

	if cfg.Settings().IntervalMinutes() != 45 {
		t.Errorf("expected second Load to be a no-op, got %d", cfg.Settings().IntervalMinutes())
	}
}

func TestSaveOnlyDirty(t *testing.T) {
	// An interval written by the interactive UI is outside the daemon range.
	store := &fakeStore{settings: map[string]string{"reminder.interval": "5"}}
	cfg := New(store, models.DaemonIntervalRange)
	cfg.Load()

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if store.settingSaves != 0 || store.recordSaves != 0 {
		t.Errorf("expected nothing saved, got %d settings and %d record saves", store.settingSaves, store.recordSaves)
	}
	if store.settings["reminder.interval"] != "5" {
		t.Errorf("expected stored interval untouched, got %s", store.settings["reminder.interval"])
	}

	start := time.Now()
	cfg.AddRecord(models.NewReminderRecord(start, start))
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if store.recordSaves != 1 || store.settingSaves != 0 {
		t.Errorf("expected only records saved, got %d settings and %d record saves", store.settingSaves, store.recordSaves)
	}
}

func TestUpdateSettings(t *testing.T) {
	store := &fakeStore{}
	cfg := New(store, models.DaemonIntervalRange)
	cfg.Load()

	var applied, rejected bool
	got := cfg.UpdateSettings(func(s *models.Settings) {
		applied = s.SetIntervalMinutes(45)
		rejected = !s.SetIntervalMinutes(5)
	})
	if !applied || !rejected {
		t.Errorf("expected 45 applied and 5 rejected, got applied=%v rejected=%v", applied, rejected)
	}
	if got.IntervalMinutes() != 45 {
		t.Errorf("expected 45, got %d", got.IntervalMinutes())
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if store.settings["reminder.interval"] != "45" {
		t.Errorf("expected persisted interval 45, got %q", store.settings["reminder.interval"])
	}
}

func TestSaveErrors(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("read-only")}
	cfg := New(store, models.DaemonIntervalRange)
	cfg.Load()

	cfg.UpdateSettings(func(s *models.Settings) { s.SetSoundEnabled(false) })
	cfg.ClearRecords()

	err := cfg.Save()
	if err == nil {
		t.Fatal("expected save error")
	}
	if !errors.Is(err, apperrors.ErrRecordPersist) {
		t.Errorf("expected ErrRecordPersist in %v", err)
	}
	if store.settingSaves != 1 || store.recordSaves != 1 {
		t.Errorf("expected both saves attempted, got %d and %d", store.settingSaves, store.recordSaves)
	}
}

func TestRecordsAndClearWithJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitless.json")
	cfg := New(storage.NewJSONStore(path), models.DaemonIntervalRange)
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	start := time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 101; i++ {
		cfg.AddRecord(models.NewReminderRecord(start, start.Add(time.Duration(i)*time.Minute)))
	}
	if len(cfg.Records()) != 100 {
		t.Fatalf("expected 100 records, got %d", len(cfg.Records()))
	}
	if cfg.Records()[0].DurationMinutes() != 1 {
		t.Errorf("expected oldest record evicted, first is %d min", cfg.Records()[0].DurationMinutes())
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := New(storage.NewJSONStore(path), models.DaemonIntervalRange)
	reloaded.Load()
	if len(reloaded.Records()) != 100 {
		t.Fatalf("expected 100 persisted records, got %d", len(reloaded.Records()))
	}

	reloaded.ClearRecords()
	if err := reloaded.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cleared := New(storage.NewJSONStore(path), models.DaemonIntervalRange)
	cleared.Load()
	if len(cleared.Records()) != 0 {
		t.Errorf("expected cleared history to persist, got %d", len(cleared.Records()))
	}
}

func TestIntervalSurvivesSaveUnderNarrowerRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitless.json")

	tui := New(storage.NewJSONStore(path), models.InteractiveIntervalRange)
	tui.Load()
	tui.UpdateSettings(func(s *models.Settings) {
		if !s.SetIntervalMinutes(5) {
			t.Fatal("interactive range rejected 5")
		}
	})
	if err := tui.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cli := New(storage.NewJSONStore(path), models.DaemonIntervalRange)
	if err := cli.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s := cli.Settings()
	if s.IntervalMinutes() != 5 {
		t.Errorf("expected stored interval 5, got %d", s.IntervalMinutes())
	}
	if s.EffectiveIntervalMinutes() != 30 {
		t.Errorf("expected daemon runs to use 30, got %d", s.EffectiveIntervalMinutes())
	}
	cli.UpdateSettings(func(s *models.Settings) { s.SetSoundEnabled(false) })
	if err := cli.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := New(storage.NewJSONStore(path), models.InteractiveIntervalRange)
	reloaded.Load()
	got := reloaded.Settings()
	if got.IntervalMinutes() != 5 {
		t.Errorf("expected interval 5 after unrelated save, got %d", got.IntervalMinutes())
	}
	if got.SoundEnabled() {
		t.Error("expected sound change to persist")
	}
}
