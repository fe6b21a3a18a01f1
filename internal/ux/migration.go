package ux

import (
	"encoding/json"
	"fmt"
	"os"
)

// legacyThemeKey is the single key written by pre-versioned builds.
const legacyThemeKey = "selectedTheme"

// MigrationResult contains information about a preferences migration.
type MigrationResult struct {
	WasMigrated     bool
	FromVersion     string
	ToVersion       string
	PreservedData   []string
	DefaultsApplied []string
}

// MigratePreferences upgrades preferences.json to the current schema.
// A missing file is left alone; Load supplies defaults for it.
func MigratePreferences(workspace string) (*MigrationResult, error) {
	result := &MigrationResult{ToVersion: PreferencesVersion}
	path := preferencesPath(workspace)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		// Unreadable file: start over with defaults.
		result.WasMigrated = true
		result.DefaultsApplied = append(result.DefaultsApplied, "theme")
		return result, writeMigrated(workspace, DefaultUserPreferences())
	}

	version, _ := raw["version"].(string)
	result.FromVersion = version
	if version == PreferencesVersion {
		return result, nil
	}

	prefs := DefaultUserPreferences()
	if theme, ok := raw[legacyThemeKey].(string); ok && validTheme(theme) {
		prefs.Theme = theme
		result.PreservedData = append(result.PreservedData, legacyThemeKey)
	} else if theme, ok := raw["theme"].(string); ok && validTheme(theme) {
		prefs.Theme = theme
		result.PreservedData = append(result.PreservedData, "theme")
	} else {
		result.DefaultsApplied = append(result.DefaultsApplied, "theme")
	}

	result.WasMigrated = true
	return result, writeMigrated(workspace, prefs)
}

func writeMigrated(workspace string, prefs *UserPreferences) error {
	pm := NewPreferencesManager(workspace)
	pm.preferences = prefs
	if err := pm.Save(); err != nil {
		return fmt.Errorf("failed to save migrated preferences: %w", err)
	}
	return nil
}
