package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/models"
)

// SettingsFormModel holds the form's editable copy of the settings.
type SettingsFormModel struct {
	Interval      string
	Text          string
	SoundFile     string
	PopupEnabled  bool
	SoundEnabled  bool
	FlashEnabled  bool
	PopupDuration int
	FlashCount    int
	PopupColor    models.PopupColor
	FlashEdges    []models.Edge
}

func newSettingsFormModel(s models.Settings) *SettingsFormModel {
	return &SettingsFormModel{
		Interval:      strconv.Itoa(s.IntervalMinutes()),
		Text:          s.ReminderText(),
		SoundFile:     s.SoundFile(),
		PopupEnabled:  s.PopupEnabled(),
		SoundEnabled:  s.SoundEnabled(),
		FlashEnabled:  s.FlashEnabled(),
		PopupDuration: s.PopupDurationSeconds(),
		FlashCount:    s.FlashCount(),
		PopupColor:    s.PopupColor(),
		FlashEdges:    s.FlashEdges(),
	}
}

// Apply writes the form values through the settings setters and returns the
// names of the fields that were rejected.
func (fm *SettingsFormModel) Apply(s *models.Settings) []string {
	var rejected []string
	reject := func(name string, ok bool) {
		if !ok {
			rejected = append(rejected, name)
		}
	}

	n, err := strconv.Atoi(strings.TrimSpace(fm.Interval))
	reject("interval", err == nil && s.SetIntervalMinutes(n))
	reject("text", s.SetReminderText(fm.Text))
	reject("sound file", s.SetSoundFile(strings.TrimSpace(fm.SoundFile)))
	s.SetPopupEnabled(fm.PopupEnabled)
	s.SetSoundEnabled(fm.SoundEnabled)
	s.SetFlashEnabled(fm.FlashEnabled)
	reject("popup duration", s.SetPopupDurationSeconds(fm.PopupDuration))
	reject("flash count", s.SetFlashCount(fm.FlashCount))
	reject("popup color", s.SetPopupColor(fm.PopupColor))
	reject("flash edges", s.SetFlashEdges(fm.FlashEdges))
	return rejected
}

func intervalValidator(r models.IntervalRange) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("interval must be a whole number of minutes")
		}
		if !r.Contains(n) {
			return fmt.Errorf("interval must be between %d and %d minutes", r.Min, r.Max)
		}
		return nil
	}
}

func rangeOptions(min, max int) []huh.Option[int] {
	var opts []huh.Option[int]
	for i := min; i <= max; i++ {
		opts = append(opts, huh.NewOption(strconv.Itoa(i), i))
	}
	return opts
}

// NewSettingsForm builds the settings editor. The interval is validated
// against r so the form cannot submit a value the setter would drop.
func NewSettingsForm(fm *SettingsFormModel, r models.IntervalRange) *huh.Form {
	colorOpts := make([]huh.Option[models.PopupColor], 0, len(models.PopupColors))
	for _, c := range models.PopupColors {
		colorOpts = append(colorOpts, huh.NewOption(string(c), c))
	}
	edgeOpts := make([]huh.Option[models.Edge], 0, len(models.Edges))
	for _, e := range models.Edges {
		edgeOpts = append(edgeOpts, huh.NewOption(string(e), e))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Interval (min)").
				Description(fmt.Sprintf("%d to %d", r.Min, r.Max)).
				Value(&fm.Interval).
				Validate(intervalValidator(r)),
			huh.NewInput().
				Title("Reminder text").
				CharLimit(constants.MaxReminderTextRunes).
				Value(&fm.Text).
				Validate(func(s string) error {
					if utf8.RuneCountInString(s) > constants.MaxReminderTextRunes {
						return fmt.Errorf("text is limited to %d characters", constants.MaxReminderTextRunes)
					}
					return nil
				}),
			huh.NewInput().
				Title("Sound file").
				Description("built-in name or absolute path").
				Value(&fm.SoundFile),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Popup").
				Value(&fm.PopupEnabled),
			huh.NewSelect[int]().
				Title("Popup duration (s)").
				Options(rangeOptions(constants.PopupDurationMin, constants.PopupDurationMax)...).
				Value(&fm.PopupDuration),
			huh.NewSelect[models.PopupColor]().
				Title("Popup color").
				Options(colorOpts...).
				Value(&fm.PopupColor),
			huh.NewConfirm().
				Title("Sound").
				Value(&fm.SoundEnabled),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Flash").
				Value(&fm.FlashEnabled),
			huh.NewSelect[int]().
				Title("Flash count").
				Options(rangeOptions(constants.FlashCountMin, constants.FlashCountMax)...).
				Value(&fm.FlashCount),
			huh.NewMultiSelect[models.Edge]().
				Title("Flash edges").
				Options(edgeOpts...).
				Value(&fm.FlashEdges).
				Validate(func(edges []models.Edge) error {
					if len(edges) == 0 {
						return fmt.Errorf("select at least one edge")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
