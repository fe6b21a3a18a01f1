package ui

import (
	"fmt"
	"strings"

	"charscope/internal/analysis"

	"github.com/charmbracelet/glamour"
)

// MarkdownReport renders a result as a markdown document: a summary table
// followed by one row per character.
func MarkdownReport(res analysis.Result) string {
	var sb strings.Builder
	sb.WriteString("# Character Analysis\n\n")
	fmt.Fprintf(&sb, "Mode: `%s`\n\n", res.Mode)

	stats, err := res.Summary.Stats()
	if err != nil {
		sb.WriteString("_No characters._\n")
		return sb.String()
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Category | Count | Share |\n|---|---:|---:|\n")
	for _, st := range stats {
		fmt.Fprintf(&sb, "| %s | %d | %s |\n", st.Label, st.Value, FormatPercent(st.Percent))
	}

	sb.WriteString("\n## Characters\n\n")
	sb.WriteString("| # | Char | ASCII/UTF-16 | Hex | Unicode | Categories |\n|---:|---|---:|---|---|---|\n")
	for _, rec := range res.Records {
		labels := make([]string, 0, 4)
		for _, t := range rec.Categories.Tags() {
			labels = append(labels, t.Label())
		}
		fmt.Fprintf(&sb, "| %d | %s | %d | %s | %s | %s |\n",
			rec.Position, markdownCell(rec.Display), rec.CodeUnit, rec.Hex, rec.Unicode, strings.Join(labels, ", "))
	}
	return sb.String()
}

// markdownCell escapes characters that would break a table row.
func markdownCell(s string) string {
	s = printable(s)
	switch s {
	case "|":
		return `\|`
	case "`":
		return "`` ` ``"
	case "*", "_", "\\", "#", "<", ">", "[", "]":
		return "`" + s + "`"
	}
	return s
}

// RenderMarkdown styles markdown for the terminal with glamour.
func RenderMarkdown(md string, width int, dark bool) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
