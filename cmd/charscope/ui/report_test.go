package ui

import (
	"testing"

	"charscope/internal/analysis"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownReport(t *testing.T) {
	md := MarkdownReport(analysis.Analyze("A|"))

	assert.Contains(t, md, "# Character Analysis")
	assert.Contains(t, md, "| Total Characters | 2 | 100.0% |")
	assert.Contains(t, md, "| 0 | A | 65 | 0x41 | U+0041 | ASCII, Alphabets |")
	assert.Contains(t, md, `| 1 | \| | 124 | 0x7C | U+007C | ASCII, Special |`)
}

func TestMarkdownReport_Empty(t *testing.T) {
	md := MarkdownReport(analysis.Analyze(""))
	assert.Contains(t, md, "_No characters._")
	assert.NotContains(t, md, "## Summary")
}

func TestRenderMarkdown(t *testing.T) {
	for _, dark := range []bool{false, true} {
		out, err := RenderMarkdown(MarkdownReport(analysis.Analyze("hi")), 0, dark)
		require.NoError(t, err)
		// glamour styles every word separately.
		plain := ansi.Strip(out)
		assert.Contains(t, plain, "Character Analysis")
		assert.Contains(t, plain, "Summary")
	}
}

func TestMarkdownCell(t *testing.T) {
	assert.Equal(t, `\|`, markdownCell("|"))
	assert.Equal(t, "`` ` ``", markdownCell("`"))
	assert.Equal(t, "`*`", markdownCell("*"))
	assert.Equal(t, `\x00`, markdownCell("\x00"))
	assert.Equal(t, "가", markdownCell("가"))
}
