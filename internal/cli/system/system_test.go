package system

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/sitless/internal/cli"
	"github.com/julianstephens/sitless/internal/config"
	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/models"
	"github.com/julianstephens/sitless/internal/screen"
	"github.com/julianstephens/sitless/internal/storage/sqlite"
	"github.com/julianstephens/sitless/internal/timer"
)

type fakeChannels struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeChannels) add(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeChannels) ShowTemporaryPopup(string, int, models.PopupColor) error {
	return f.add("temporary_popup")
}

func (f *fakeChannels) ShowNormalPopup(string, models.PopupColor) error {
	return f.add("normal_popup")
}

func (f *fakeChannels) PlaySound(string, bool) error {
	return f.add("sound")
}

func (f *fakeChannels) FlashEdges([]models.Edge, int) error {
	return f.add("flash")
}

func (f *fakeChannels) has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

type fakeInspector struct {
	err error
}

func (f fakeInspector) ActiveWindowBounds() (screen.Rect, bool, error) {
	return screen.Rect{}, false, f.err
}

func (f fakeInspector) ScreenBounds() (screen.Rect, error) {
	return screen.Rect{Width: 1920, Height: 1080}, f.err
}

type fakeTray struct{ err error }

func (f fakeTray) Available() error { return f.err }

func setupTestContext(t *testing.T) (*cli.Context, *fakeChannels, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "sitless.db"))
	cfg := config.New(store, models.DaemonIntervalRange)
	if err := cfg.Load(); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	channels := &fakeChannels{}
	var out bytes.Buffer
	return &cli.Context{
		Config:    cfg,
		Store:     store,
		Out:       &out,
		Channels:  channels,
		Inspector: fakeInspector{},
	}, channels, &out
}

func TestRunCmd_RecordsCycleOnShutdown(t *testing.T) {
	ctx, _, out := setupTestContext(t)

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	clock := timer.NewFakeClock(time.Now())
	go func() {
		done <- (&RunCmd{}).run(runCtx, ctx, clock)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancel")
	}

	if len(ctx.Config.Records()) != 1 {
		t.Errorf("expected 1 record, got %d", len(ctx.Config.Records()))
	}
	records, err := ctx.Store.GetRecords()
	if err != nil {
		t.Fatalf("GetRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected record saved on shutdown, got %d", len(records))
	}
	if !strings.Contains(out.String(), "Reminding every 30 min") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRunCmd_IgnoresInvalidInterval(t *testing.T) {
	ctx, _, out := setupTestContext(t)

	runCtx, cancel := context.WithCancel(context.Background())
	cancel()

	interval := 5
	if err := (&RunCmd{Interval: &interval}).run(runCtx, ctx, timer.NewFakeClock(time.Now())); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Ignoring interval 5") {
		t.Errorf("expected ignored interval message, got %q", out.String())
	}
	if ctx.Config.Settings().IntervalMinutes() != 30 {
		t.Errorf("expected stored interval to stay 30, got %d", ctx.Config.Settings().IntervalMinutes())
	}
}

func TestRunCmd_OutOfRangeSavedInterval(t *testing.T) {
	ctx, _, out := setupTestContext(t)
	if err := ctx.Store.SaveSettings(map[string]string{constants.SettingReminderInterval: "5"}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	cfg := config.New(ctx.Store, models.DaemonIntervalRange)
	if err := cfg.Load(); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	ctx.Config = cfg

	runCtx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (&RunCmd{}).run(runCtx, ctx, timer.NewFakeClock(time.Now())); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, want := range []string{"Saved interval 5 min is outside 10-120", "Reminding every 30 min"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output, got %q", want, out.String())
		}
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if data[constants.SettingReminderInterval] != "5" {
		t.Errorf("expected stored interval 5, got %q", data[constants.SettingReminderInterval])
	}
}

func TestTestCmd(t *testing.T) {
	tests := []struct {
		mode     string
		expected string
		absent   string
	}{
		{"normal", "normal_popup", "flash"},
		{"fullscreen", "flash", "normal_popup"},
		{"auto", "normal_popup", "flash"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			ctx, channels, _ := setupTestContext(t)
			if err := (&TestCmd{Mode: tt.mode}).Run(ctx); err != nil {
				t.Fatalf("test command failed: %v", err)
			}
			if !channels.has(tt.expected) {
				t.Errorf("expected %s, got %v", tt.expected, channels.calls)
			}
			if channels.has(tt.absent) {
				t.Errorf("did not expect %s, got %v", tt.absent, channels.calls)
			}
			if len(ctx.Config.Records()) != 0 {
				t.Error("test reminder must not record a cycle")
			}
		})
	}
}

func TestDoctorCmd(t *testing.T) {
	old := probeTray
	defer func() { probeTray = old }()

	probeTray = func() trayProbe { return fakeTray{} }
	ctx, _, out := setupTestContext(t)
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor failed on healthy store: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Schema version: OK") {
		t.Errorf("expected schema check, got %s", out.String())
	}

	// Tray and inspector problems are warnings only.
	probeTray = func() trayProbe { return fakeTray{err: errors.New("not running")} }
	ctx, _, out = setupTestContext(t)
	ctx.Inspector = fakeInspector{err: screen.ErrInspectorUnavailable}
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor should only warn: %v", err)
	}
	if !strings.Contains(out.String(), "Tray app: WARNING") || !strings.Contains(out.String(), "Full-screen detection: WARNING") {
		t.Errorf("expected warnings, got %s", out.String())
	}
}

func TestDoctorCmd_CorruptSettings(t *testing.T) {
	old := probeTray
	defer func() { probeTray = old }()
	probeTray = func() trayProbe { return fakeTray{} }

	ctx, _, _ := setupTestContext(t)
	if err := ctx.Store.SaveSettings(map[string]string{"flash.count": "many"}); err != nil {
		t.Fatal(err)
	}
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("expected doctor to fail on unparsable settings")
	}
}

func TestTuiCmd_RequiresTerminal(t *testing.T) {
	old := interactiveTerminal
	defer func() { interactiveTerminal = old }()
	interactiveTerminal = func() bool { return false }

	ctx, _, _ := setupTestContext(t)
	err := (&TuiCmd{}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "sitless run") {
		t.Errorf("expected terminal error, got %v", err)
	}
}
