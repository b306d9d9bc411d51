package system

import (
	"fmt"

	"github.com/julianstephens/sitless/internal/cli"
	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/dispatch"
	"github.com/julianstephens/sitless/internal/scheduler"
	"github.com/julianstephens/sitless/internal/screen"
)

type fixedMode screen.Mode

func (m fixedMode) Mode() screen.Mode { return screen.Mode(m) }

// TestCmd fires one reminder with the current settings.
type TestCmd struct {
	Mode string `help:"Screen mode to simulate (auto, normal, fullscreen)." enum:"auto,normal,fullscreen" default:"auto"`
}

func (c *TestCmd) Run(ctx *cli.Context) error {
	var modes scheduler.ModeSource = ctx.Classifier()
	switch c.Mode {
	case "normal":
		modes = fixedMode(screen.ModeNormal)
	case "fullscreen":
		modes = fixedMode(screen.ModeFullScreen)
	}

	disp := dispatch.New(ctx.NotificationChannels(), ctx.Policy)
	sched := scheduler.New(scheduler.Options{
		Classifier: modes,
		Dispatcher: disp,
	})

	sched.TestReminder(ctx.Config.Settings())
	if !cli.WaitForDispatch(disp, constants.DispatchDrainTimeout) {
		return fmt.Errorf("test reminder did not finish within %s", constants.DispatchDrainTimeout)
	}

	fmt.Fprintf(ctx.Stdout(), "Test reminder sent (%s).\n", modes.Mode())
	return nil
}
