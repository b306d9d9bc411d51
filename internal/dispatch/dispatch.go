// Package dispatch turns a reminder firing into concrete notification
// channel calls. Which channels fire depends on the screen mode and the
// current settings; the channels themselves run concurrently and a failure
// in one never blocks the others.
package dispatch

import (
	"fmt"
	"sync"

	"github.com/julianstephens/sitless/internal/errors"
	"github.com/julianstephens/sitless/internal/logger"
	"github.com/julianstephens/sitless/internal/models"
	"github.com/julianstephens/sitless/internal/screen"
)

// Channels is the set of notification primitives a platform provides.
type Channels interface {
	ShowTemporaryPopup(text string, seconds int, color models.PopupColor) error
	ShowNormalPopup(text string, color models.PopupColor) error
	PlaySound(file string, lowVolume bool) error
	FlashEdges(edges []models.Edge, count int) error
}

type ChannelKind string

const (
	KindTemporaryPopup ChannelKind = "temporary_popup"
	KindNormalPopup    ChannelKind = "normal_popup"
	KindSound          ChannelKind = "sound"
	KindFlash          ChannelKind = "flash"
)

// Request is a single channel invocation with its arguments resolved.
type Request struct {
	Kind      ChannelKind
	Text      string
	Seconds   int
	Color     models.PopupColor
	SoundFile string
	LowVolume bool
	Edges     []models.Edge
	Count     int
}

// Policy tweaks the dispatch table.
type Policy struct {
	// HonorPopupInNormal makes normal mode respect PopupEnabled. By default
	// the persistent popup is always shown when no full-screen app is active.
	HonorPopupInNormal bool
}

// Plan returns the channel requests for one firing. It has no side effects.
func Plan(mode screen.Mode, settings models.Settings, policy Policy) []Request {
	var reqs []Request

	switch mode {
	case screen.ModeFullScreen:
		if settings.PopupEnabled() {
			reqs = append(reqs, Request{
				Kind:    KindTemporaryPopup,
				Text:    settings.ReminderText(),
				Seconds: settings.PopupDurationSeconds(),
				Color:   settings.PopupColor(),
			})
		}
		if settings.SoundEnabled() {
			reqs = append(reqs, Request{Kind: KindSound, SoundFile: settings.SoundFile(), LowVolume: true})
		}
		if settings.FlashEnabled() {
			reqs = append(reqs, Request{Kind: KindFlash, Edges: settings.FlashEdges(), Count: settings.FlashCount()})
		}
	default:
		if settings.PopupEnabled() || !policy.HonorPopupInNormal {
			reqs = append(reqs, Request{
				Kind:  KindNormalPopup,
				Text:  settings.ReminderText(),
				Color: settings.PopupColor(),
			})
		}
		if settings.SoundEnabled() {
			reqs = append(reqs, Request{Kind: KindSound, SoundFile: settings.SoundFile()})
		}
	}

	return reqs
}

// Dispatcher fans requests out to Channels.
type Dispatcher struct {
	channels Channels
	policy   Policy
	wg       sync.WaitGroup
}

func New(channels Channels, policy Policy) *Dispatcher {
	return &Dispatcher{channels: channels, policy: policy}
}

// Dispatch plans and launches the channel calls for one firing and returns
// without waiting for them.
func (d *Dispatcher) Dispatch(mode screen.Mode, settings models.Settings) {
	reqs := Plan(mode, settings, d.policy)
	logger.Debug("Dispatching reminder", "mode", mode, "channels", len(reqs))

	for _, req := range reqs {
		d.wg.Add(1)
		go func(req Request) {
			defer d.wg.Done()
			if err := d.run(req); err != nil {
				logger.Error("Notification channel failed", "channel", req.Kind, "error", err)
			}
		}(req)
	}
}

// Wait blocks until every in-flight channel call has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(req Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(errors.ErrChannelDispatch, fmt.Errorf("panic: %v", r))
		}
	}()

	if d.channels == nil {
		return errors.Wrap(errors.ErrChannelDispatch, fmt.Errorf("no channels configured"))
	}

	switch req.Kind {
	case KindTemporaryPopup:
		err = d.channels.ShowTemporaryPopup(req.Text, req.Seconds, req.Color)
	case KindNormalPopup:
		err = d.channels.ShowNormalPopup(req.Text, req.Color)
	case KindSound:
		err = d.channels.PlaySound(req.SoundFile, req.LowVolume)
	case KindFlash:
		err = d.channels.FlashEdges(req.Edges, req.Count)
	default:
		err = fmt.Errorf("unknown channel %q", req.Kind)
	}
	return errors.Wrap(errors.ErrChannelDispatch, err)
}
