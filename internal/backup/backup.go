package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/logger"
)

const (
	// MaxBackups is the maximum number of backups to keep
	MaxBackups = 14
	// BackupDirName is the name of the backup directory
	BackupDirName = "backups"

	timestampFormat = "20060102-150405"
)

// BackupInfo describes one backup file.
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots the store file before destructive operations. SQLite
// databases are copied with VACUUM INTO, anything else byte for byte.
type Manager struct {
	storePath string
	backupDir string
	now       func() time.Time
}

func NewManager(storePath string) *Manager {
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), BackupDirName),
		now:       time.Now,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) prefix() string {
	return constants.AppName + "-"
}

func (m *Manager) suffix() string {
	return filepath.Ext(m.storePath)
}

func (m *Manager) isSQLite() bool {
	return m.suffix() != ".json"
}

// CreateBackup writes a new backup and prunes the oldest beyond MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	path, err := m.createBackup()
	if err != nil {
		return "", err
	}
	if err := m.rotateBackups(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) createBackup() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}

	stamp := m.now().Format(timestampFormat)
	backupPath := filepath.Join(m.backupDir, m.prefix()+stamp+m.suffix())
	for counter := 1; ; counter++ {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			break
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		backupPath = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", m.prefix(), stamp, counter, m.suffix()))
	}

	if m.isSQLite() {
		if err := backupDatabase(m.storePath, backupPath); err != nil {
			return "", fmt.Errorf("failed to backup database: %w", err)
		}
	} else if err := copyFile(m.storePath, backupPath); err != nil {
		return "", fmt.Errorf("failed to copy store: %w", err)
	}

	logger.Debug("Created backup", "path", backupPath)
	return backupPath, nil
}

func backupDatabase(src, dest string) error {
	srcDB, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", dest); err != nil {
		return copyFile(src, dest)
	}
	return nil
}

// ListBackups returns the backups newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, m.prefix()) || !strings.HasSuffix(name, m.suffix()) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, m.prefix()), m.suffix())
		if len(stamp) > len(timestampFormat) {
			stamp = stamp[:len(timestampFormat)]
		}
		timestamp, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the store with backupPath. The current store is
// backed up first. The store must be closed by the caller.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if m.isSQLite() {
		if err := verifyDatabase(backupPath); err != nil {
			return fmt.Errorf("backup file is corrupted or invalid: %w", err)
		}
	}

	if _, err := os.Stat(m.storePath); err == nil {
		current, err := m.createBackup()
		if err != nil {
			return fmt.Errorf("failed to backup current store before restore: %w", err)
		}
		logger.Info("Backed up current store before restore", "path", current)
	}

	tempPath := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.storePath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return fmt.Errorf("failed to restore store: %w", err)
	}

	return nil
}

func verifyDatabase(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
