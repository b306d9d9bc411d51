package settings

import (
	"fmt"
	"io"

	"github.com/julianstephens/sitless/internal/cli"
	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Interval            *int    `help:"Reminder interval in minutes."`
	Text                *string `help:"Reminder text (up to 200 characters)."`
	SoundFile           *string `help:"Built-in sound name or absolute path to a sound file."`
	RestoreDefaultSound bool    `help:"Switch back to the default sound."`
	Popup               *bool   `help:"Show a popup in full-screen mode."`
	Sound               *bool   `help:"Play a sound."`
	Flash               *bool   `help:"Flash screen edges in full-screen mode."`
	PopupDuration       *int    `help:"Seconds a full-screen popup stays open (3-5)."`
	FlashCount          *int    `help:"Number of edge flashes (3-5)."`
	PopupColor          *string `help:"Popup color (blue, green, red, yellow)."`
	FlashEdges          *string `help:"Comma-separated edges to flash (top, bottom, left, right)."`
}

type change struct {
	name  string
	value any
	apply func(s *models.Settings) bool
}

func (c *SettingsCmd) changes() []change {
	var out []change
	if c.Interval != nil {
		v := *c.Interval
		out = append(out, change{"interval", v, func(s *models.Settings) bool { return s.SetIntervalMinutes(v) }})
	}
	if c.Text != nil {
		v := *c.Text
		out = append(out, change{"text", v, func(s *models.Settings) bool { return s.SetReminderText(v) }})
	}
	if c.SoundFile != nil {
		v := *c.SoundFile
		out = append(out, change{"sound file", v, func(s *models.Settings) bool { return s.SetSoundFile(v) }})
	}
	if c.RestoreDefaultSound {
		out = append(out, change{"sound file", constants.DefaultSoundFile, func(s *models.Settings) bool {
			return s.SetSoundFile(constants.DefaultSoundFile)
		}})
	}
	if c.Popup != nil {
		v := *c.Popup
		out = append(out, change{"popup", v, func(s *models.Settings) bool { return s.SetPopupEnabled(v) }})
	}
	if c.Sound != nil {
		v := *c.Sound
		out = append(out, change{"sound", v, func(s *models.Settings) bool { return s.SetSoundEnabled(v) }})
	}
	if c.Flash != nil {
		v := *c.Flash
		out = append(out, change{"flash", v, func(s *models.Settings) bool { return s.SetFlashEnabled(v) }})
	}
	if c.PopupDuration != nil {
		v := *c.PopupDuration
		out = append(out, change{"popup duration", v, func(s *models.Settings) bool { return s.SetPopupDurationSeconds(v) }})
	}
	if c.FlashCount != nil {
		v := *c.FlashCount
		out = append(out, change{"flash count", v, func(s *models.Settings) bool { return s.SetFlashCount(v) }})
	}
	if c.PopupColor != nil {
		v := *c.PopupColor
		out = append(out, change{"popup color", v, func(s *models.Settings) bool { return s.SetPopupColor(models.PopupColor(v)) }})
	}
	if c.FlashEdges != nil {
		v := *c.FlashEdges
		out = append(out, change{"flash edges", v, func(s *models.Settings) bool { return s.SetFlashEdges(models.ParseEdges(v)) }})
	}
	return out
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()

	if c.List {
		printSettings(out, ctx.Config.Settings())
		return nil
	}

	changes := c.changes()
	if len(changes) == 0 {
		fmt.Fprintln(out, "No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	applied := 0
	ctx.Config.UpdateSettings(func(s *models.Settings) {
		for _, ch := range changes {
			if ch.apply(s) {
				applied++
				continue
			}
			fmt.Fprintf(out, "Ignored invalid %s: %v\n", ch.name, ch.value)
		}
	})

	if applied == 0 {
		fmt.Fprintln(out, "No settings changed.")
		return nil
	}

	if err := ctx.Config.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(out, "Settings updated successfully.")
	return nil
}

func printSettings(out io.Writer, s models.Settings) {
	r := s.IntervalRange()
	fmt.Fprintln(out, "Current Settings:")
	fmt.Fprintf(out, "  Interval:        %d min (%d-%d)\n", s.IntervalMinutes(), r.Min, r.Max)
	if !s.IntervalInRange() {
		fmt.Fprintf(out, "                   out of range here, runs use %d min\n", s.EffectiveIntervalMinutes())
	}
	fmt.Fprintf(out, "  Reminder Text:   %s\n", s.ReminderText())
	fmt.Fprintf(out, "  Sound File:      %s\n", s.SoundFile())
	fmt.Fprintln(out, "\nChannels:")
	fmt.Fprintf(out, "  Popup:           %v\n", s.PopupEnabled())
	fmt.Fprintf(out, "  Sound:           %v\n", s.SoundEnabled())
	fmt.Fprintf(out, "  Flash:           %v\n", s.FlashEnabled())
	fmt.Fprintln(out, "\nFull-screen Mode:")
	fmt.Fprintf(out, "  Popup Duration:  %d s\n", s.PopupDurationSeconds())
	fmt.Fprintf(out, "  Popup Color:     %s\n", s.PopupColor())
	fmt.Fprintf(out, "  Flash Count:     %d\n", s.FlashCount())
	fmt.Fprintf(out, "  Flash Edges:     %s\n", models.JoinEdges(s.FlashEdges()))
}
