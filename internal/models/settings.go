package models

import (
	"slices"
	"unicode/utf8"

	"github.com/julianstephens/sitless/internal/constants"
)

// PopupColor is one of the enumerated popup palette entries.
type PopupColor string

const (
	ColorBlue   PopupColor = "blue"
	ColorGreen  PopupColor = "green"
	ColorRed    PopupColor = "red"
	ColorYellow PopupColor = "yellow"
)

// PopupColors lists the palette in display order.
var PopupColors = []PopupColor{ColorBlue, ColorGreen, ColorRed, ColorYellow}

// Hex returns the CSS color used by popup renderers.
func (c PopupColor) Hex() string {
	switch c {
	case ColorGreen:
		return "#2ecc71"
	case ColorRed:
		return "#e74c3c"
	case ColorYellow:
		return "#f1c40f"
	default:
		return "#3498db"
	}
}

// ParsePopupColor accepts palette names and the legacy localized names
// written by older config files.
func ParsePopupColor(s string) (PopupColor, bool) {
	switch s {
	case "blue", "蓝色":
		return ColorBlue, true
	case "green", "绿色":
		return ColorGreen, true
	case "red", "红色":
		return ColorRed, true
	case "yellow", "黄色":
		return ColorYellow, true
	}
	return "", false
}

// Edge is a screen edge that can be flashed.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
)

// Edges lists every valid edge tag.
var Edges = []Edge{EdgeTop, EdgeBottom, EdgeLeft, EdgeRight}

func (e Edge) Valid() bool {
	return slices.Contains(Edges, e)
}

// IntervalRange bounds the reminder interval in minutes. The background
// scheduler and the interactive UI accept different ranges.
type IntervalRange struct {
	Min int
	Max int
}

var (
	DaemonIntervalRange      = IntervalRange{Min: constants.DaemonIntervalMin, Max: constants.DaemonIntervalMax}
	InteractiveIntervalRange = IntervalRange{Min: constants.InteractiveIntervalMin, Max: constants.InteractiveIntervalMax}
)

// storedIntervalRange accepts any interval one of the front ends can set, so
// a value saved by the interactive UI survives a load under the daemon range.
var storedIntervalRange = IntervalRange{
	Min: min(constants.DaemonIntervalMin, constants.InteractiveIntervalMin),
	Max: max(constants.DaemonIntervalMax, constants.InteractiveIntervalMax),
}

func (r IntervalRange) Contains(minutes int) bool {
	return minutes >= r.Min && minutes <= r.Max
}

// defaultInterval is the default interval, or r.Min when r excludes it.
func (r IntervalRange) defaultInterval() int {
	if r.Contains(constants.DefaultReminderInterval) {
		return constants.DefaultReminderInterval
	}
	return r.Min
}

// Settings holds the reminder configuration. Fields are only reachable
// through setters that enforce their own range: an invalid write is a no-op
// and the previous value is kept. Setters report whether the write applied.
//
// Settings is a value type. Copies handed to the scheduler are snapshots and
// are not affected by later writes to the original.
type Settings struct {
	intervalRange   IntervalRange
	intervalMinutes int
	reminderText    string
	soundFile       string
	popupEnabled    bool
	soundEnabled    bool
	flashEnabled    bool
	popupDuration   int
	flashCount      int
	popupColor      PopupColor
	flashEdges      []Edge
}

// DefaultSettings returns defaults validated against the daemon range.
func DefaultSettings() Settings {
	return DefaultSettingsFor(DaemonIntervalRange)
}

// DefaultSettingsFor returns defaults whose interval setter enforces r.
func DefaultSettingsFor(r IntervalRange) Settings {
	s := Settings{
		intervalRange:   r,
		intervalMinutes: r.defaultInterval(),
		reminderText:    constants.DefaultReminderText,
		soundFile:       constants.DefaultSoundFile,
		popupEnabled:    constants.DefaultPopupEnabled,
		soundEnabled:    constants.DefaultSoundEnabled,
		flashEnabled:    constants.DefaultFlashEnabled,
		popupDuration:   constants.DefaultPopupDuration,
		flashCount:      constants.DefaultFlashCount,
		popupColor:      PopupColor(constants.DefaultPopupColor),
		flashEdges:      []Edge{Edge(constants.DefaultFlashEdge)},
	}
	return s
}

// Snapshot returns a deep copy.
func (s Settings) Snapshot() Settings {
	s.flashEdges = slices.Clone(s.flashEdges)
	return s
}

func (s Settings) IntervalRange() IntervalRange { return s.intervalRange }
func (s Settings) IntervalMinutes() int         { return s.intervalMinutes }
func (s Settings) ReminderText() string         { return s.reminderText }
func (s Settings) SoundFile() string            { return s.soundFile }
func (s Settings) PopupEnabled() bool           { return s.popupEnabled }
func (s Settings) SoundEnabled() bool           { return s.soundEnabled }
func (s Settings) FlashEnabled() bool           { return s.flashEnabled }
func (s Settings) PopupDurationSeconds() int    { return s.popupDuration }
func (s Settings) FlashCount() int              { return s.flashCount }
func (s Settings) PopupColor() PopupColor       { return s.popupColor }

// FlashEdges returns a copy of the configured edges in insertion order.
func (s Settings) FlashEdges() []Edge {
	return slices.Clone(s.flashEdges)
}

// IntervalInRange reports whether the stored interval is valid for this
// settings' range. An interval loaded from disk may have been saved by a front
// end with a wider range.
func (s Settings) IntervalInRange() bool {
	return s.intervalRange.Contains(s.intervalMinutes)
}

// EffectiveIntervalMinutes is the interval a cycle runs with: the stored value
// when it is in range, otherwise the range default. The stored value is not
// changed, so saving the settings keeps it.
func (s Settings) EffectiveIntervalMinutes() int {
	if s.IntervalInRange() {
		return s.intervalMinutes
	}
	return s.intervalRange.defaultInterval()
}

func (s *Settings) SetIntervalMinutes(minutes int) bool {
	if !s.intervalRange.Contains(minutes) {
		return false
	}
	s.intervalMinutes = minutes
	return true
}

// SetReminderText rejects text longer than 200 code points.
func (s *Settings) SetReminderText(text string) bool {
	if utf8.RuneCountInString(text) > constants.MaxReminderTextRunes {
		return false
	}
	s.reminderText = text
	return true
}

// SetSoundFile stores a built-in sound name or an absolute path. The file is
// not checked here; the audio channel falls back when it cannot be played.
func (s *Settings) SetSoundFile(file string) bool {
	s.soundFile = file
	return true
}

func (s *Settings) SetPopupEnabled(enabled bool) bool {
	s.popupEnabled = enabled
	return true
}

func (s *Settings) SetSoundEnabled(enabled bool) bool {
	s.soundEnabled = enabled
	return true
}

func (s *Settings) SetFlashEnabled(enabled bool) bool {
	s.flashEnabled = enabled
	return true
}

func (s *Settings) SetPopupDurationSeconds(seconds int) bool {
	if seconds < constants.PopupDurationMin || seconds > constants.PopupDurationMax {
		return false
	}
	s.popupDuration = seconds
	return true
}

func (s *Settings) SetFlashCount(count int) bool {
	if count < constants.FlashCountMin || count > constants.FlashCountMax {
		return false
	}
	s.flashCount = count
	return true
}

func (s *Settings) SetPopupColor(color PopupColor) bool {
	c, ok := ParsePopupColor(string(color))
	if !ok {
		return false
	}
	s.popupColor = c
	return true
}

// SetFlashEdges replaces the edge set. Duplicates are dropped keeping the
// first occurrence; an empty list or an unknown tag rejects the whole write.
func (s *Settings) SetFlashEdges(edges []Edge) bool {
	if len(edges) == 0 {
		return false
	}
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if !e.Valid() {
			return false
		}
		if !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	s.flashEdges = out
	return true
}
