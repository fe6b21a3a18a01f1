package ux

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"charscope/internal/config"
)

// PreferencesVersion is the current schema version for preferences.json.
const PreferencesVersion = "2.0"

// PreferencesFile is the file name inside the workspace config directory.
const PreferencesFile = "preferences.json"

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeStore loads and saves the selected theme.
type ThemeStore interface {
	LoadTheme() (string, error)
	SaveTheme(theme string) error
}

// UserPreferences is the persisted preferences schema.
type UserPreferences struct {
	// Version is the schema version for migration detection
	Version string `json:"version"`

	// Theme is "light" or "dark"
	Theme string `json:"theme"`

	// UpdatedAt is set on every theme change
	UpdatedAt string `json:"updated_at,omitempty"`

	// Metrics tracks local usage statistics
	Metrics UserMetrics `json:"metrics"`
}

// UserMetrics tracks local usage counters.
type UserMetrics struct {
	SessionsCount      int `json:"sessions_count"`
	AnalysesRun        int `json:"analyses_run"`
	CharactersAnalyzed int `json:"characters_analyzed"`
	ThemeToggles       int `json:"theme_toggles"`
}

// PreferencesManager handles loading/saving preferences.
type PreferencesManager struct {
	mu           sync.RWMutex
	path         string
	defaultTheme string
	preferences  *UserPreferences
}

// NewPreferencesManager creates a preferences manager for the given workspace.
func NewPreferencesManager(workspace string) *PreferencesManager {
	return &PreferencesManager{
		path: preferencesPath(workspace),
	}
}

func preferencesPath(workspace string) string {
	return filepath.Join(workspace, config.DirName, PreferencesFile)
}

// SetDefaultTheme sets the theme used while no preferences file exists.
func (pm *PreferencesManager) SetDefaultTheme(theme string) {
	if !validTheme(theme) {
		return
	}
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.defaultTheme = theme
}

func (pm *PreferencesManager) defaults() *UserPreferences {
	prefs := DefaultUserPreferences()
	if pm.defaultTheme != "" {
		prefs.Theme = pm.defaultTheme
	}
	return prefs
}

// Path returns the preferences file location.
func (pm *PreferencesManager) Path() string {
	return pm.path
}

// Load reads preferences from disk, creating defaults if not exists.
func (pm *PreferencesManager) Load() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	data, err := os.ReadFile(pm.path)
	if err != nil {
		if os.IsNotExist(err) {
			pm.preferences = pm.defaults()
			return nil
		}
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	var prefs UserPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}
	if !validTheme(prefs.Theme) {
		prefs.Theme = pm.defaults().Theme
	}

	pm.preferences = &prefs
	return nil
}

// Save writes preferences to disk.
func (pm *PreferencesManager) Save() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.saveLocked()
}

func (pm *PreferencesManager) saveLocked() error {
	if pm.preferences == nil {
		pm.preferences = pm.defaults()
	}

	dir := filepath.Dir(pm.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(pm.preferences, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(pm.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	return nil
}

// Get returns a copy of the current preferences (thread-safe).
func (pm *PreferencesManager) Get() UserPreferences {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if pm.preferences == nil {
		return *pm.defaults()
	}
	return *pm.preferences
}

// LoadTheme implements ThemeStore. A missing or unreadable file yields the
// default theme (see SetDefaultTheme), which is light unless set.
func (pm *PreferencesManager) LoadTheme() (string, error) {
	if err := pm.Load(); err != nil {
		return pm.Get().Theme, err
	}
	return pm.Get().Theme, nil
}

// SaveTheme implements ThemeStore and writes through to disk.
func (pm *PreferencesManager) SaveTheme(theme string) error {
	if !validTheme(theme) {
		return fmt.Errorf("%w: %q", config.ErrInvalidTheme, theme)
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.preferences == nil {
		pm.preferences = pm.defaults()
	}
	if pm.preferences.Theme != theme {
		pm.preferences.Metrics.ThemeToggles++
	}
	pm.preferences.Theme = theme
	pm.preferences.UpdatedAt = time.Now().Format(time.RFC3339)

	return pm.saveLocked()
}

// IncrementMetric increments a numeric metric by n.
func (pm *PreferencesManager) IncrementMetric(metric string, n int) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.preferences == nil {
		pm.preferences = pm.defaults()
	}

	switch metric {
	case "sessions_count":
		pm.preferences.Metrics.SessionsCount += n
	case "analyses_run":
		pm.preferences.Metrics.AnalysesRun += n
	case "characters_analyzed":
		pm.preferences.Metrics.CharactersAnalyzed += n
	default:
		return fmt.Errorf("unknown metric: %s", metric)
	}

	return nil
}

// DefaultUserPreferences returns defaults for a fresh workspace.
func DefaultUserPreferences() *UserPreferences {
	return &UserPreferences{
		Version: PreferencesVersion,
		Theme:   ThemeLight,
	}
}

// Toggle returns the other theme.
func Toggle(theme string) string {
	if theme == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func validTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}

// MemoryThemeStore keeps the theme in memory only.
type MemoryThemeStore struct {
	mu    sync.Mutex
	theme string
}

// NewMemoryThemeStore returns a store seeded with theme.
func NewMemoryThemeStore(theme string) *MemoryThemeStore {
	if !validTheme(theme) {
		theme = ThemeLight
	}
	return &MemoryThemeStore{theme: theme}
}

func (s *MemoryThemeStore) LoadTheme() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme, nil
}

func (s *MemoryThemeStore) SaveTheme(theme string) error {
	if !validTheme(theme) {
		return fmt.Errorf("%w: %q", config.ErrInvalidTheme, theme)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return nil
}
