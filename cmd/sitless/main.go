package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/sitless/internal/cli"
	"github.com/julianstephens/sitless/internal/cli/backups"
	"github.com/julianstephens/sitless/internal/cli/records"
	"github.com/julianstephens/sitless/internal/cli/settings"
	"github.com/julianstephens/sitless/internal/cli/system"
	"github.com/julianstephens/sitless/internal/config"
	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/dispatch"
	"github.com/julianstephens/sitless/internal/errors"
	"github.com/julianstephens/sitless/internal/logger"
	"github.com/julianstephens/sitless/internal/models"
	"github.com/julianstephens/sitless/internal/storage"
	"github.com/julianstephens/sitless/internal/storage/sqlite"
)

var CLI struct {
	Version    kong.VersionFlag
	Config     string `help:"Config file path. A .json extension selects the JSON store." type:"path" default:"${config_path}"`
	Store      string `help:"Store format." enum:"auto,json,sqlite" default:"auto"`
	Debug      bool   `help:"Log debug output to stderr."`
	HonorPopup bool   `help:"Respect the popup setting when no full-screen app is active."`

	Run      system.RunCmd        `cmd:"" help:"Run the background reminder loop."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Test     system.TestCmd       `cmd:"" help:"Fire a test reminder now."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Settings settings.SettingsCmd `cmd:"" help:"Show or change reminder settings."`
	Records  struct {
		List  records.ListCmd  `cmd:"" help:"List reminder records." default:"1"`
		Clear records.ClearCmd `cmd:"" help:"Delete all reminder records."`
	} `cmd:"" help:"Manage reminder records."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Reminds you to get up and move at a fixed interval"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	interactive := ctx.Command() == "tui"

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
		Quiet:     interactive,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := newStore(CLI.Config, CLI.Store)

	intervalRange := models.DaemonIntervalRange
	if interactive {
		intervalRange = models.InteractiveIntervalRange
	}

	cfg := config.New(store, intervalRange)
	if err := cfg.Load(); err != nil {
		// Defaults stay in effect; the command still runs.
		logger.Warn("Failed to load configuration, using defaults", "error", err)
	}

	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
		Policy: dispatch.Policy{HonorPopupInNormal: CLI.HonorPopup},
	}

	err := ctx.Run(appCtx)

	if saveErr := cfg.Save(); saveErr != nil {
		logger.Error("Failed to save configuration", "error", saveErr)
	}
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}

	errors.Fatal(err)
}

func newStore(path, format string) storage.Provider {
	switch format {
	case "json":
		return storage.NewJSONStore(path)
	case "sqlite":
		return sqlite.NewStore(path)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path)
	}
	return sqlite.NewStore(path)
}
