package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/julianstephens/sitless/internal/cli"
	"github.com/julianstephens/sitless/internal/logger"
	"github.com/julianstephens/sitless/internal/tui"
)

type TuiCmd struct{}

var interactiveTerminal = func() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if !interactiveTerminal() {
		return fmt.Errorf("the TUI needs an interactive terminal; use `sitless run` for background reminders")
	}

	m := tui.NewModel(ctx)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.Bind(p.Send)

	_, err := p.Run()
	// Quitting mid-cycle still records it.
	m.Shutdown()

	if saveErr := ctx.Config.Save(); saveErr != nil {
		logger.Error("Failed to save on exit", "error", saveErr)
	}
	if err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
