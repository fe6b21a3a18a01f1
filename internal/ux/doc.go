// Package ux persists user-facing preferences for charscope.
//
// The main consumer is the theme toggle: the interactive view reads the
// saved theme at start-up and writes it back on every toggle. Storage sits
// behind the ThemeStore interface so callers can swap the file-backed
// PreferencesManager for an in-memory store.
//
// Preferences live in .charscope/preferences.json. Files written by older
// builds (a flat object with a "selectedTheme" key) are upgraded in place by
// MigratePreferences.
package ux
