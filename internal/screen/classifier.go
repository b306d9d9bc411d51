// Package screen decides whether the user is in a full-screen context.
//
// The heuristic compares the foreground window's bounds with the primary
// screen's bounds. It cannot tell a maximized window from an exclusive
// full-screen surface, and multi-monitor setups only consider the primary
// screen.
package screen

import (
	"errors"

	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/logger"
)

// ErrInspectorUnavailable is returned by inspectors on platforms without
// foreground-window support.
var ErrInspectorUnavailable = errors.New("foreground window inspector unavailable")

// Mode is the notification context.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFullScreen
)

func (m Mode) String() string {
	if m == ModeFullScreen {
		return "fullscreen"
	}
	return "normal"
}

type Rect struct {
	X, Y          int
	Width, Height int
}

// Inspector reports window geometry for the current desktop session.
type Inspector interface {
	// ActiveWindowBounds returns false when there is no foreground window.
	ActiveWindowBounds() (Rect, bool, error)
	ScreenBounds() (Rect, error)
}

type Classifier struct {
	inspector Inspector
	tolerance int
}

func NewClassifier(inspector Inspector) *Classifier {
	return &Classifier{
		inspector: inspector,
		tolerance: constants.FullScreenTolerancePx,
	}
}

// IsFullScreenActive reports whether the foreground window covers the primary
// screen within the tolerance on both axes. Any inspector failure yields false.
func (c *Classifier) IsFullScreenActive() (full bool) {
	if c == nil || c.inspector == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Window inspector panicked", "panic", r)
			full = false
		}
	}()

	window, ok, err := c.inspector.ActiveWindowBounds()
	if err != nil {
		logger.Debug("Active window lookup failed", "error", err)
		return false
	}
	if !ok {
		return false
	}

	screen, err := c.inspector.ScreenBounds()
	if err != nil {
		logger.Debug("Screen bounds lookup failed", "error", err)
		return false
	}

	return abs(window.Width-screen.Width) <= c.tolerance &&
		abs(window.Height-screen.Height) <= c.tolerance
}

func (c *Classifier) Mode() Mode {
	if c.IsFullScreenActive() {
		return ModeFullScreen
	}
	return ModeNormal
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
