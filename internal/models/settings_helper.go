package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/sitless/internal/constants"
)

// MapToSettings converts persisted key-value pairs to Settings. Missing keys
// keep their defaults and values rejected by a setter keep the default too.
// The interval is kept as stored when any front end accepts it, even if r
// does not; see Settings.EffectiveIntervalMinutes.
// A value that cannot be parsed at all returns an error so the caller can
// fall back to defaults for the whole file.
func MapToSettings(data map[string]string, r IntervalRange) (Settings, error) {
	settings := DefaultSettingsFor(r)

	for key, value := range data {
		switch key {
		case constants.SettingReminderInterval:
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			if storedIntervalRange.Contains(n) {
				settings.intervalMinutes = n
			}
		case constants.SettingReminderText:
			settings.SetReminderText(value)
		case constants.SettingSoundFile:
			settings.SetSoundFile(value)
		case constants.SettingPopupEnabled:
			settings.SetPopupEnabled(parseBool(strings.TrimSpace(value)))
		case constants.SettingFlashEnabled:
			settings.SetFlashEnabled(parseBool(strings.TrimSpace(value)))
		case constants.SettingSoundEnabled:
			settings.SetSoundEnabled(parseBool(strings.TrimSpace(value)))
		case constants.SettingPopupDuration:
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.SetPopupDurationSeconds(n)
		case constants.SettingFlashCount:
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.SetFlashCount(n)
		case constants.SettingPopupColor:
			settings.SetPopupColor(PopupColor(strings.TrimSpace(value)))
		case constants.SettingFlashEdges:
			settings.SetFlashEdges(ParseEdges(value))
		}
	}
	return settings, nil
}

// SettingsToMap converts Settings to persisted key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingReminderInterval: strconv.Itoa(settings.IntervalMinutes()),
		constants.SettingReminderText:     settings.ReminderText(),
		constants.SettingSoundFile:        settings.SoundFile(),
		constants.SettingPopupEnabled:     strconv.FormatBool(settings.PopupEnabled()),
		constants.SettingFlashEnabled:     strconv.FormatBool(settings.FlashEnabled()),
		constants.SettingSoundEnabled:     strconv.FormatBool(settings.SoundEnabled()),
		constants.SettingPopupDuration:    strconv.Itoa(settings.PopupDurationSeconds()),
		constants.SettingFlashCount:       strconv.Itoa(settings.FlashCount()),
		constants.SettingPopupColor:       string(settings.PopupColor()),
		constants.SettingFlashEdges:       JoinEdges(settings.FlashEdges()),
	}
}

// ParseEdges splits a comma-separated edge list. Tags are trimmed and
// lower-cased but not validated.
func ParseEdges(s string) []Edge {
	var edges []Edge
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		edges = append(edges, Edge(part))
	}
	return edges
}

// JoinEdges is the inverse of ParseEdges.
func JoinEdges(edges []Edge) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = string(e)
	}
	return strings.Join(parts, ",")
}

// parseBool treats anything but a case-insensitive "true" as false.
func parseBool(s string) bool {
	return strings.EqualFold(s, "true")
}
