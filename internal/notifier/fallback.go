package notifier

import (
	"errors"

	"github.com/julianstephens/sitless/internal/dispatch"
	"github.com/julianstephens/sitless/internal/logger"
	"github.com/julianstephens/sitless/internal/models"
)

var _ dispatch.Channels = (*Fallback)(nil)

// Fallback tries each channel set in order and stops at the first success.
type Fallback struct {
	chain []dispatch.Channels
}

func NewFallback(chain ...dispatch.Channels) *Fallback {
	return &Fallback{chain: chain}
}

func (f *Fallback) ShowTemporaryPopup(text string, seconds int, color models.PopupColor) error {
	return f.try("temporary_popup", func(c dispatch.Channels) error {
		return c.ShowTemporaryPopup(text, seconds, color)
	})
}

func (f *Fallback) ShowNormalPopup(text string, color models.PopupColor) error {
	return f.try("normal_popup", func(c dispatch.Channels) error {
		return c.ShowNormalPopup(text, color)
	})
}

func (f *Fallback) PlaySound(file string, lowVolume bool) error {
	return f.try("sound", func(c dispatch.Channels) error {
		return c.PlaySound(file, lowVolume)
	})
}

func (f *Fallback) FlashEdges(edges []models.Edge, count int) error {
	return f.try("flash", func(c dispatch.Channels) error {
		return c.FlashEdges(edges, count)
	})
}

func (f *Fallback) try(name string, call func(dispatch.Channels) error) error {
	var errs []error
	for i, c := range f.chain {
		err := call(c)
		if err == nil {
			return nil
		}
		logger.Debug("Channel unavailable, trying next", "channel", name, "index", i, "error", err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return errors.New("no channels configured")
	}
	return errors.Join(errs...)
}
