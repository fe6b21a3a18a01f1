package ui

import (
	"strings"
	"testing"

	"charscope/internal/analysis"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardFields(t *testing.T) {
	rec := analysis.Analyze("가").Records[0]
	fields := CardFields(rec)
	require.Len(t, fields, 5)
	assert.Equal(t, CardField{"Position", "0"}, fields[0])
	assert.Equal(t, CardField{"Character", "'가'"}, fields[1])
	assert.Equal(t, CardField{"ASCII/UTF-16", "44032"}, fields[2])
	assert.Equal(t, CardField{"Hexadecimal", "0xAC00"}, fields[3])
	assert.Equal(t, CardField{"Unicode", "U+AC00"}, fields[4])
}

func TestCardFields_ControlCharacterEscaped(t *testing.T) {
	rec := analysis.Analyze("\n").Records[0]
	assert.Equal(t, `'\n'`, CardFields(rec)[1].Value)
	assert.Equal(t, "Newline", rec.Display)
}

func TestGlyphText(t *testing.T) {
	recs := analysis.Analyze("a가e\u0301\u200d\x00\n").Records
	require.Len(t, recs, 7)

	assert.Equal(t, "a", GlyphText(recs[0]))
	assert.Equal(t, "가", GlyphText(recs[1]))
	assert.Equal(t, "◌\u0301", GlyphText(recs[3]))
	assert.Equal(t, `\u200d`, GlyphText(recs[4]))
	assert.Equal(t, `\x00`, GlyphText(recs[5]))
	assert.Equal(t, "Newline", GlyphText(recs[6]))

	high := analysis.New(analysis.Options{Mode: analysis.ModeUTF16}).Analyze("😀").Records[0]
	assert.Equal(t, `\uD83D`, GlyphText(high))
}

func TestRenderCard_CombiningMarkVisible(t *testing.T) {
	rec := analysis.Analyze("\u0301").Records[0]
	require.Equal(t, 0, rec.Width)
	assert.Contains(t, RenderCard(rec, NewStyles(LightTheme()), 30), "◌\u0301")
}

func TestRenderCard(t *testing.T) {
	s := NewStyles(LightTheme())
	rec := analysis.Analyze(" ").Records[0]
	card := RenderCard(rec, s, 30)

	for _, want := range []string{"Space", "ASCII", "Whitespace", "Position", "U+0020", "0x20"} {
		assert.Contains(t, card, want)
	}
	for _, line := range strings.Split(card, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}
}

func TestRenderCard_MinimumWidth(t *testing.T) {
	s := NewStyles(DarkTheme())
	card := RenderCard(analysis.Analyze("x").Records[0], s, 5)
	assert.Equal(t, MinCardWidth, lipgloss.Width(card))
}

func TestCardsPerRow(t *testing.T) {
	assert.Equal(t, 1, CardsPerRow(10, 28))
	assert.Equal(t, 2, CardsPerRow(57, 28))
	assert.Equal(t, 3, CardsPerRow(90, 28))
}

func TestRenderCards_Grid(t *testing.T) {
	s := NewStyles(LightTheme())
	res := analysis.Analyze("abc")

	oneRow := RenderCards(res.Records, s, 24, 3)
	threeRows := RenderCards(res.Records, s, 24, 1)
	assert.Less(t, lipgloss.Height(oneRow), lipgloss.Height(threeRows))
	assert.Greater(t, lipgloss.Width(oneRow), lipgloss.Width(threeRows))

	assert.Empty(t, RenderCards(nil, s, 24, 3))
}
