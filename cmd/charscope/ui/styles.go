// Package ui provides the visual styling for the charscope terminal views.
// Light and dark palettes mirror each other; the selected one is persisted by
// the theme toggle.
package ui

import (
	"os"
	"strconv"
	"strings"

	"charscope/internal/charclass"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f4f5f6")
	LightForeground = lipgloss.Color("#1d232a")
	LightPrimary    = lipgloss.Color("#570df8") // Violet
	LightAccent     = lipgloss.Color("#1fb2a6") // Teal
	LightSecondary  = lipgloss.Color("#f000b8") // Pink
	LightMuted      = lipgloss.Color("#8a8f98")
	LightBorder     = lipgloss.Color("#d6dae0")
	LightCard       = lipgloss.Color("#ffffff")
	LightNeutral    = lipgloss.Color("#3d4451")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#1d232a")
	DarkForeground = lipgloss.Color("#a6adbb")
	DarkPrimary    = lipgloss.Color("#7582ff")
	DarkAccent     = lipgloss.Color("#00c7b5")
	DarkSecondary  = lipgloss.Color("#ff71cf")
	DarkMuted      = lipgloss.Color("#5b6270")
	DarkBorder     = lipgloss.Color("#2a323c")
	DarkCard       = lipgloss.Color("#191e24")
	DarkNeutral    = lipgloss.Color("#2a323c")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#f87272") // Red
	Success     = lipgloss.Color("#36d399") // Green
	Warning     = lipgloss.Color("#fbbd23") // Yellow
	Info        = lipgloss.Color("#3abff8") // Blue
)

// Theme holds the current color scheme
type Theme struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	Neutral    lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Name:       "light",
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		Neutral:    LightNeutral,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Name:       "dark",
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		Neutral:    DarkNeutral,
		IsDark:     true,
	}
}

// ThemeAuto selects the theme from the terminal on first run.
const ThemeAuto = "auto"

// ThemeByName returns the dark theme for "dark", the detected theme for
// "auto" and the light theme otherwise.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "dark":
		return DarkTheme()
	case ThemeAuto:
		return DetectTheme()
	}
	return LightTheme()
}

// ResolveThemeName turns a configured theme into "light" or "dark".
func ResolveThemeName(name string) string {
	return ThemeByName(name).Name
}

// DetectTheme guesses the theme from the terminal, falling back to light.
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; background indexes 0-6 and 8
	// are dark.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("CHARSCOPE_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	App     lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Cards
	Card       lipgloss.Style
	Glyph      lipgloss.Style
	FieldLabel lipgloss.Style
	FieldValue lipgloss.Style

	// Summary panel
	StatBox   lipgloss.Style
	StatTitle lipgloss.Style
	StatValue lipgloss.Style
	StatDesc  lipgloss.Style

	// Components
	Input   lipgloss.Style
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Glyph: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Align(lipgloss.Center).
			Padding(1, 0),

		FieldLabel: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		FieldValue: lipgloss.NewStyle().
			Foreground(theme.Muted),

		StatBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(theme.Border).
			Padding(0, 2),

		StatTitle: lipgloss.NewStyle().
			Foreground(theme.Muted),

		StatValue: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		StatDesc: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),
	}
}

// BadgeColor returns the badge background for a tag.
func (s Styles) BadgeColor(t charclass.Tag) lipgloss.Color {
	switch t {
	case charclass.TagASCII:
		return Success
	case charclass.TagUnicode:
		return Info
	case charclass.TagKorean:
		return Warning
	case charclass.TagSpecial:
		return Destructive
	case charclass.TagWhitespace:
		return s.Theme.Neutral
	case charclass.TagDigit:
		return s.Theme.Accent
	case charclass.TagAlphabetic:
		return s.Theme.Primary
	case charclass.TagEmoji:
		return s.Theme.Secondary
	}
	return s.Theme.Muted
}

// RenderBadge renders one tag badge.
func (s Styles) RenderBadge(t charclass.Tag) string {
	return s.Badge.Background(s.BadgeColor(t)).Render(t.Label())
}

// RenderBadges renders every tag of a set, separated by single spaces.
func (s Styles) RenderBadges(tags charclass.TagSet) string {
	list := tags.Tags()
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = s.RenderBadge(t)
	}
	return strings.Join(out, " ")
}

// Logo returns the charscope banner
func Logo(s Styles) string {
	return s.Header.Render("🔍 charscope") + "\n" +
		s.Subtitle.Render("Character analyzer: ASCII, Unicode, Korean, emoji")
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}
