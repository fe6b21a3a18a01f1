package ui

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"charscope/internal/analysis"
	"charscope/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// MinCardWidth keeps the field rows readable.
const MinCardWidth = config.MinCardWidth

// CardField is one label/value row of a character card.
type CardField struct {
	Label string
	Value string
}

// CardFields lists the rows shown under the glyph, in order.
func CardFields(rec analysis.Record) []CardField {
	return []CardField{
		{"Position", strconv.Itoa(rec.Position)},
		{"Character", "'" + printable(rec.Character) + "'"},
		{"ASCII/UTF-16", strconv.Itoa(rec.CodeUnit)},
		{"Hexadecimal", rec.Hex},
		{"Unicode", rec.Unicode},
	}
}

// printable escapes control characters so they cannot break the layout.
func printable(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if unicode.IsControl(r) {
		return strings.Trim(strconv.QuoteToGraphic(s), `"`)
	}
	return s
}

// GlyphText is the big character shown on a card. Zero-width characters get
// a visible form: combining marks sit on a dotted circle, anything else is
// escaped.
func GlyphText(rec analysis.Record) string {
	r := rune(rec.CodeUnit)
	switch {
	case rec.Width > 0, rec.Display != rec.Character, utf16.IsSurrogate(r):
		return rec.Display
	case unicode.In(r, unicode.Mn, unicode.Me):
		return "◌" + rec.Character
	}
	return strings.Trim(strconv.QuoteToGraphic(rec.Character), `"`)
}

// RenderCard draws one character card of the given outer width.
func RenderCard(rec analysis.Record, s Styles, width int) string {
	if width < MinCardWidth {
		width = MinCardWidth
	}
	// Border and horizontal padding take two columns each side.
	inner := width - 4

	glyph := s.Glyph.Width(inner).Render(GlyphText(rec))
	badges := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center).Render(s.RenderBadges(rec.Categories))

	rows := make([]string, 0, 8)
	rows = append(rows, glyph, badges, "")
	for _, f := range CardFields(rec) {
		rows = append(rows, fieldRow(f, s, inner))
	}

	return s.Card.Width(width - 2).Render(strings.Join(rows, "\n"))
}

func fieldRow(f CardField, s Styles, inner int) string {
	gap := inner - lipgloss.Width(f.Label) - lipgloss.Width(f.Value)
	if gap < 1 {
		gap = 1
	}
	return s.FieldLabel.Render(f.Label) + strings.Repeat(" ", gap) + s.FieldValue.Render(f.Value)
}

// CardsPerRow returns how many cards of cardWidth fit in totalWidth.
func CardsPerRow(totalWidth, cardWidth int) int {
	if cardWidth < MinCardWidth {
		cardWidth = MinCardWidth
	}
	n := (totalWidth + 1) / (cardWidth + 1)
	if n < 1 {
		return 1
	}
	return n
}

// RenderCards lays the cards out in a grid with perRow cards per line.
func RenderCards(records []analysis.Record, s Styles, cardWidth, perRow int) string {
	if len(records) == 0 {
		return ""
	}
	if perRow < 1 {
		perRow = 1
	}

	var lines []string
	for start := 0; start < len(records); start += perRow {
		end := start + perRow
		if end > len(records) {
			end = len(records)
		}
		cards := make([]string, 0, 2*(end-start))
		for i, rec := range records[start:end] {
			if i > 0 {
				cards = append(cards, " ")
			}
			cards = append(cards, RenderCard(rec, s, cardWidth))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(lines, "\n")
}
