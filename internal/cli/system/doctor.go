package system

import (
	"fmt"
	"io"

	"github.com/julianstephens/sitless/internal/cli"
	"github.com/julianstephens/sitless/internal/models"
	"github.com/julianstephens/sitless/internal/notifier"
	"github.com/julianstephens/sitless/internal/screen"
)

type DoctorCmd struct{}

type schemaVersioner interface {
	SchemaVersion() (int, error)
}

type trayProbe interface {
	Available() error
}

// probeTray is swapped in tests.
var probeTray = func() trayProbe { return notifier.NewTray() }

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	fail := func(name string, err error) {
		fmt.Fprintf(out, "❌ %s: FAIL\n", name)
		fmt.Fprintf(out, "   Error: %v\n", err)
		hasError = true
	}

	storeReachable := true
	if err := ctx.Store.Load(); err != nil {
		fail("Store reachable", err)
		storeReachable = false
	} else {
		fmt.Fprintln(out, "✓ Store reachable: OK")
	}

	if storeReachable {
		if v, ok := ctx.Store.(schemaVersioner); ok {
			if version, err := v.SchemaVersion(); err != nil {
				fail("Schema version", err)
			} else {
				fmt.Fprintf(out, "✓ Schema version: OK (version %d)\n", version)
			}
		}

		if err := checkSettings(ctx); err != nil {
			fail("Settings", err)
		} else {
			fmt.Fprintln(out, "✓ Settings: OK")
		}

		if records, err := ctx.Store.GetRecords(); err != nil {
			fail("Reminder records", err)
		} else {
			fmt.Fprintf(out, "✓ Reminder records: OK (%d stored)\n", len(records))
		}
	} else {
		fmt.Fprintln(out, "⊘ Settings: SKIPPED (store not reachable)")
		fmt.Fprintln(out, "⊘ Reminder records: SKIPPED (store not reachable)")
	}

	checkSound(out, ctx.Config.Settings())

	if err := probeTray().Available(); err != nil {
		fmt.Fprintln(out, "⚠ Tray app: WARNING")
		fmt.Fprintf(out, "   %v (reminders will be shown in the terminal)\n", err)
	} else {
		fmt.Fprintln(out, "✓ Tray app: OK")
	}

	if err := checkInspector(ctx); err != nil {
		fmt.Fprintln(out, "⚠ Full-screen detection: WARNING")
		fmt.Fprintf(out, "   %v (every reminder uses normal mode)\n", err)
	} else {
		fmt.Fprintln(out, "✓ Full-screen detection: OK")
	}

	fmt.Fprintln(out)
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}

func checkSettings(ctx *cli.Context) error {
	data, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	_, err = models.MapToSettings(data, ctx.Config.IntervalRange())
	return err
}

func checkSound(out io.Writer, settings models.Settings) {
	file := settings.SoundFile()
	if resolved := notifier.ResolveSoundFile(file); resolved != file {
		fmt.Fprintln(out, "⚠ Sound file: WARNING")
		fmt.Fprintf(out, "   %q not found, %q will be played instead\n", file, resolved)
		return
	}
	fmt.Fprintln(out, "✓ Sound file: OK")
}

func checkInspector(ctx *cli.Context) error {
	inspector := ctx.Inspector
	if inspector == nil {
		inspector = screen.NewSystemInspector()
	}
	_, err := inspector.ScreenBounds()
	return err
}
