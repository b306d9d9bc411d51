package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/sitless/internal/dispatch"
	"github.com/julianstephens/sitless/internal/models"
)

// PopupMsg shows a reminder overlay. Seconds is zero for a popup that stays
// until dismissed.
type PopupMsg struct {
	Text    string
	Color   models.PopupColor
	Seconds int
}

// FlashMsg starts flashing the given edges of the window.
type FlashMsg struct {
	Edges []models.Edge
	Count int
}

type flashStepMsg struct{}

var _ dispatch.Channels = (*inAppChannels)(nil)

// inAppChannels renders popups and flashes inside the running program. Sound
// has no in-app form and is delegated to bell.
type inAppChannels struct {
	mu   sync.Mutex
	send func(tea.Msg)
	bell dispatch.Channels
}

func (c *inAppChannels) bind(send func(tea.Msg)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.send = send
}

func (c *inAppChannels) post(msg tea.Msg) error {
	c.mu.Lock()
	send := c.send
	c.mu.Unlock()
	if send == nil {
		return errNotBound
	}
	send(msg)
	return nil
}

func (c *inAppChannels) ShowTemporaryPopup(text string, seconds int, color models.PopupColor) error {
	return c.post(PopupMsg{Text: text, Color: color, Seconds: seconds})
}

func (c *inAppChannels) ShowNormalPopup(text string, color models.PopupColor) error {
	return c.post(PopupMsg{Text: text, Color: color})
}

func (c *inAppChannels) PlaySound(file string, lowVolume bool) error {
	if c.bell == nil {
		return errNotBound
	}
	return c.bell.PlaySound(file, lowVolume)
}

func (c *inAppChannels) FlashEdges(edges []models.Edge, count int) error {
	return c.post(FlashMsg{Edges: edges, Count: count})
}
