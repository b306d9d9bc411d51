package backups

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/sitless/internal/backup"
	"github.com/julianstephens/sitless/internal/cli"
	"github.com/julianstephens/sitless/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Fprintf(ctx.Stdout(), "✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups found.")
		fmt.Fprintf(out, "Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Fprintf(out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		fmt.Fprintf(out, "  %s  %s  (%s)\n",
			b.Timestamp.Format(constants.DateTimeFormat),
			filepath.Base(b.Path),
			humanize.Bytes(uint64(b.Size)))
	}
	fmt.Fprintf(out, "\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backupPath, err := resolveBackupPath(c.BackupFile, mgr.GetBackupDir())
	if err != nil {
		return err
	}

	if !c.Yes && !stdinIsTerminal() {
		return fmt.Errorf("refusing to restore without confirmation: stdin is not a terminal, pass --yes")
	}

	if !c.Yes {
		fmt.Fprintln(out, "⚠️  WARNING: This will replace your current settings and reminder records with the backup.")
		fmt.Fprintln(out, "⚠️  Stop any running sitless process before restoring.")
		fmt.Fprintf(out, "\nRestore from: %s\n", backupPath)
		fmt.Fprint(out, "Continue? [y/N]: ")

		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Fprintf(out, "✓ Restored from %s\n", filepath.Base(backupPath))
	return nil
}

var stdinIsTerminal = func() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory or a bare filename inside the backup directory.
func resolveBackupPath(name, backupDir string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}

	if _, err := os.Stat(name); err == nil {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}

	candidate := filepath.Join(backupDir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}
