package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/sitless/internal/cli"
	"github.com/julianstephens/sitless/internal/config"
	"github.com/julianstephens/sitless/internal/models"
	"github.com/julianstephens/sitless/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	cfg := config.New(store, models.DaemonIntervalRange)
	if err := cfg.Load(); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	var out bytes.Buffer
	return &cli.Context{Config: cfg, Store: store, Out: &out}, &out
}

func storedSettings(t *testing.T, ctx *cli.Context) models.Settings {
	t.Helper()
	data, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	s, err := models.MapToSettings(data, models.DaemonIntervalRange)
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}
	return s
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
	if !strings.Contains(out.String(), "30 min (10-120)") {
		t.Errorf("expected default interval in output, got %s", out.String())
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &SettingsCmd{
		Interval:      intPtr(45),
		Sound:         boolPtr(false),
		PopupDuration: intPtr(5),
		PopupColor:    strPtr("red"),
		FlashEdges:    strPtr("top, bottom"),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	s := storedSettings(t, ctx)
	if s.IntervalMinutes() != 45 {
		t.Errorf("expected interval 45, got %d", s.IntervalMinutes())
	}
	if s.SoundEnabled() {
		t.Error("expected sound disabled")
	}
	if s.PopupDurationSeconds() != 5 {
		t.Errorf("expected duration 5, got %d", s.PopupDurationSeconds())
	}
	if s.PopupColor() != models.ColorRed {
		t.Errorf("expected red, got %s", s.PopupColor())
	}
	if models.JoinEdges(s.FlashEdges()) != "top,bottom" {
		t.Errorf("expected top,bottom, got %s", models.JoinEdges(s.FlashEdges()))
	}
}

func TestSettingsCmd_InvalidValuesIgnored(t *testing.T) {
	ctx, out := setupTestDB(t)

	cmd := &SettingsCmd{
		Interval:   intPtr(5),
		FlashCount: intPtr(9),
		PopupColor: strPtr("purple"),
		FlashEdges: strPtr("middle"),
		Text:       strPtr(strings.Repeat("动", 201)),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("invalid values must not fail the command: %v", err)
	}

	for _, name := range []string{"interval", "flash count", "popup color", "flash edges", "text"} {
		if !strings.Contains(out.String(), "Ignored invalid "+name) {
			t.Errorf("expected %q to be reported, got %s", name, out.String())
		}
	}

	s := ctx.Config.Settings()
	if s.IntervalMinutes() != 30 || s.FlashCount() != 4 || s.PopupColor() != models.ColorBlue {
		t.Errorf("expected defaults to be kept, got interval=%d count=%d color=%s", s.IntervalMinutes(), s.FlashCount(), s.PopupColor())
	}
}

func TestSettingsCmd_RestoreDefaultSound(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&SettingsCmd{SoundFile: strPtr("/tmp/chime.wav")}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if storedSettings(t, ctx).SoundFile() != "/tmp/chime.wav" {
		t.Fatal("expected custom sound to be stored")
	}

	if err := (&SettingsCmd{RestoreDefaultSound: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := storedSettings(t, ctx).SoundFile(); got != "default_sound.wav" {
		t.Errorf("expected default sound, got %s", got)
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("unexpected output %s", out.String())
	}
}
