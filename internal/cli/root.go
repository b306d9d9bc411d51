package cli

import (
	"io"
	"os"
	"time"

	"github.com/julianstephens/sitless/internal/backup"
	"github.com/julianstephens/sitless/internal/config"
	"github.com/julianstephens/sitless/internal/dispatch"
	"github.com/julianstephens/sitless/internal/logger"
	"github.com/julianstephens/sitless/internal/notifier"
	"github.com/julianstephens/sitless/internal/screen"
	"github.com/julianstephens/sitless/internal/storage"
)

// Context is shared by every command.
type Context struct {
	Config *config.Config
	Store  storage.Provider
	Policy dispatch.Policy

	// Overrides used by tests; nil picks the platform implementation.
	Out       io.Writer
	Channels  dispatch.Channels
	Inspector screen.Inspector
}

func (c *Context) Stdout() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

// NotificationChannels returns the tray app channels, falling back to the
// terminal when the tray app is not running.
func (c *Context) NotificationChannels() dispatch.Channels {
	if c.Channels != nil {
		return c.Channels
	}
	return notifier.NewFallback(notifier.NewTray(), notifier.NewTerminal(c.Stdout()))
}

func (c *Context) Classifier() *screen.Classifier {
	if c.Inspector != nil {
		return screen.NewClassifier(c.Inspector)
	}
	return screen.NewClassifier(screen.NewSystemInspector())
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// WaitForDispatch waits for in-flight notifications, giving up after timeout.
func WaitForDispatch(d *dispatch.Dispatcher, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		d.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		logger.Warn("Timed out waiting for notifications", "timeout", timeout)
		return false
	}
}
