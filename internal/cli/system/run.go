package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/sitless/internal/cli"
	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/dispatch"
	"github.com/julianstephens/sitless/internal/logger"
	"github.com/julianstephens/sitless/internal/scheduler"
	"github.com/julianstephens/sitless/internal/timer"
)

// RunCmd runs the background reminder loop until interrupted.
type RunCmd struct {
	Interval *int `help:"Override the reminder interval in minutes for this run (10-120)."`
}

func (c *RunCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(sigCtx, ctx, timer.SystemClock{})
}

func (c *RunCmd) run(runCtx context.Context, ctx *cli.Context, clock timer.Clock) error {
	out := ctx.Stdout()
	settings := ctx.Config.Settings()

	if c.Interval != nil && !settings.SetIntervalMinutes(*c.Interval) {
		r := settings.IntervalRange()
		fmt.Fprintf(out, "Ignoring interval %d: must be between %d and %d minutes.\n", *c.Interval, r.Min, r.Max)
	}
	if !settings.IntervalInRange() {
		r := settings.IntervalRange()
		fmt.Fprintf(out, "Saved interval %d min is outside %d-%d; using %d min for this run.\n",
			settings.IntervalMinutes(), r.Min, r.Max, settings.EffectiveIntervalMinutes())
		logger.Warn("Saved interval out of range", "interval", settings.IntervalMinutes(), "using", settings.EffectiveIntervalMinutes())
	}

	disp := dispatch.New(ctx.NotificationChannels(), ctx.Policy)
	sched := scheduler.New(scheduler.Options{
		Variant:      scheduler.Continuous,
		Clock:        clock,
		Classifier:   ctx.Classifier(),
		Dispatcher:   disp,
		Records:      ctx.Config,
		TickInterval: constants.TickInterval,
		OnEvent: func(ev scheduler.Event) {
			if ev.Kind == scheduler.EventFired {
				fmt.Fprintf(out, "%s reminder sent (%s)\n", ev.At.Format(constants.DateTimeFormat), ev.Mode)
			}
		},
	})

	sched.Start(settings)
	fmt.Fprintf(out, "Reminding every %d min, next at %s. Press Ctrl+C to stop.\n",
		settings.EffectiveIntervalMinutes(), humanize.Time(clock.Now().Add(sched.Remaining())))
	logger.Info("Reminder loop started", "interval", settings.EffectiveIntervalMinutes())

	<-runCtx.Done()

	sched.Stop()
	cli.WaitForDispatch(disp, constants.DispatchDrainTimeout)
	logger.Info("Reminder loop stopped")

	if err := ctx.Config.Save(); err != nil {
		logger.Error("Failed to save on shutdown", "error", err)
	}
	fmt.Fprintln(out, "Stopped.")
	return nil
}
