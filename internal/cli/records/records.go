package records

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/sitless/internal/cli"
)

type ListCmd struct {
	Limit int `help:"Show at most this many of the newest records (0 for all)." default:"20"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	records := ctx.Config.Records()

	if len(records) == 0 {
		fmt.Fprintln(out, "No reminder records yet.")
		return nil
	}

	total := len(records)
	if c.Limit > 0 && total > c.Limit {
		records = records[total-c.Limit:]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "START\tEND\tDURATION\tWHEN")
	// Newest first.
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.StartTimeString(), r.EndTimeString(), r.DurationString(), humanize.Time(r.EndTime()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(records) < total {
		fmt.Fprintf(out, "\nShowing %d of %d records.\n", len(records), total)
	}
	return nil
}

type ClearCmd struct {
	NoBackup bool `help:"Skip the backup taken before clearing."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	n := len(ctx.Config.Records())
	if n == 0 {
		fmt.Fprintln(out, "No reminder records to clear.")
		return nil
	}

	if !c.NoBackup {
		ctx.PerformAutomaticBackup()
	}

	ctx.Config.ClearRecords()
	if err := ctx.Config.Save(); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	fmt.Fprintf(out, "Cleared %s.\n", humanize.Comma(int64(n))+" "+plural(n, "record", "records"))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
