// Package notifier implements the notification channels: a webhook client
// for the sitless-tray companion app and a terminal renderer used when the
// tray app is not running.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/dispatch"
	"github.com/julianstephens/sitless/internal/models"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
	statFunc          = os.Stat
)

var _ dispatch.Channels = (*Tray)(nil)

type PopupPayload struct {
	Text string `json:"text"`
	// DurationMs of zero keeps the popup open until dismissed.
	DurationMs uint32 `json:"duration_ms"`
	Color      string `json:"color"`
}

type SoundPayload struct {
	File   string  `json:"file"`
	GainDB float64 `json:"gain_db"`
}

type FlashPayload struct {
	Edges      []string `json:"edges"`
	Count      int      `json:"count"`
	IntervalMs uint32   `json:"interval_ms"`
}

// Tray delivers notifications to the tray app over its local webhook.
type Tray struct {
	client *http.Client
}

func NewTray() *Tray {
	return &Tray{
		client: &http.Client{Timeout: constants.TrayRequestTimeout},
	}
}

func (t *Tray) ShowTemporaryPopup(text string, seconds int, color models.PopupColor) error {
	return t.send("/popup", PopupPayload{
		Text:       text,
		DurationMs: uint32(seconds) * 1000,
		Color:      color.Hex(),
	})
}

func (t *Tray) ShowNormalPopup(text string, color models.PopupColor) error {
	return t.send("/popup", PopupPayload{
		Text:  text,
		Color: color.Hex(),
	})
}

func (t *Tray) PlaySound(file string, lowVolume bool) error {
	payload := SoundPayload{File: ResolveSoundFile(file)}
	if lowVolume {
		payload.GainDB = constants.LowVolumeGainDB
	}
	return t.send("/sound", payload)
}

func (t *Tray) FlashEdges(edges []models.Edge, count int) error {
	names := make([]string, len(edges))
	for i, e := range edges {
		names[i] = string(e)
	}
	return t.send("/flash", FlashPayload{
		Edges:      names,
		Count:      count,
		IntervalMs: constants.FlashIntervalMs,
	})
}

// Available reports why the tray app cannot be reached, or nil if it can.
func (t *Tray) Available() error {
	_, _, err := locateTray()
	return err
}

func (t *Tray) send(path string, payload any) error {
	port, secret, err := locateTray()
	if err != nil {
		return err
	}
	return sendNotification(t.client, port, secret, path, payload)
}

func locateTray() (string, string, error) {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return "", "", err
	}
	return findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
}

// ResolveSoundFile keeps built-in sound names as they are and replaces an
// absolute path that no longer exists with the default sound.
func ResolveSoundFile(file string) string {
	if file == "" {
		return constants.DefaultSoundFile
	}
	if !filepath.IsAbs(file) {
		return file
	}
	if _, err := statFunc(file); err != nil {
		return constants.DefaultSoundFile
	}
	return file
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// settings.json may point the lockfile somewhere else
	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err == nil {
		var store struct {
			Settings struct {
				LockfileDir *string `json:"lockfile_dir"`
			} `json:"settings"`
		}
		if err := json.Unmarshal(data, &store); err == nil {
			if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
				return *store.Settings.LockfileDir, nil
			}
		}
	}

	return trayConfigDir, nil
}

// findAndValidateTrayProcess reads a port|pid|secret lockfile and checks that
// the pid belongs to the tray app.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New(constants.TrayExecutablePrefix + " is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	if strings.TrimSpace(port) == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New(constants.TrayExecutablePrefix + " process not running")
	}

	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, process.Executable())
	}

	return port, secret, nil
}

func sendNotification(client *http.Client, port, secret, path string, payload any) error {
	url := fmt.Sprintf("http://127.0.0.1:%s%s", port, path)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.TraySecretHeader, secret)

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
