package notifier

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/dispatch"
	"github.com/julianstephens/sitless/internal/models"
)

var _ dispatch.Channels = (*Terminal)(nil)

const (
	bell         = "\a"
	flashBarSize = 48
)

// Terminal renders notifications as styled text on a writer.
type Terminal struct {
	mu    sync.Mutex
	out   io.Writer
	sleep func(time.Duration)
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, sleep: time.Sleep}
}

func popupStyle(color models.PopupColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(1, 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color.Hex())).
		Foreground(lipgloss.Color(color.Hex()))
}

func (t *Terminal) ShowTemporaryPopup(text string, seconds int, color models.PopupColor) error {
	box := popupStyle(color).Render(text)
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf("closes in %ds", seconds))
	return t.write(box + "\n" + footer + "\n")
}

func (t *Terminal) ShowNormalPopup(text string, color models.PopupColor) error {
	return t.write(popupStyle(color).Render(text) + "\n")
}

// PlaySound rings the terminal bell. Low volume rings once.
func (t *Terminal) PlaySound(file string, lowVolume bool) error {
	if lowVolume {
		return t.write(bell)
	}
	return t.write(bell + bell)
}

func (t *Terminal) FlashEdges(edges []models.Edge, count int) error {
	bar := lipgloss.NewStyle().
		Background(lipgloss.Color("196")).
		Render(strings.Repeat(" ", flashBarSize))

	var labels []string
	for _, e := range edges {
		labels = append(labels, string(e))
	}
	line := fmt.Sprintf("%s %s\n", bar, strings.Join(labels, ","))

	for i := 0; i < count; i++ {
		if err := t.write(line); err != nil {
			return err
		}
		if i < count-1 {
			t.sleep(constants.FlashIntervalMs * time.Millisecond)
		}
	}
	return nil
}

func (t *Terminal) write(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.out, s)
	return err
}
