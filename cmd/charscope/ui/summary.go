package ui

import (
	"fmt"
	"strconv"
	"strings"

	"charscope/internal/analysis"

	"github.com/charmbracelet/lipgloss"
)

// RenderSummary draws the statistics panel: one box per stat with its label,
// count and share of the total. A zero total renders nothing.
func RenderSummary(sum analysis.Summary, s Styles, width int) string {
	stats, err := sum.Stats()
	if err != nil {
		return ""
	}

	boxes := make([]string, len(stats))
	for i, st := range stats {
		boxes[i] = renderStat(st, s, i == len(stats)-1)
	}

	// Wrap boxes onto as many lines as the width requires.
	var lines []string
	var line []string
	used := 0
	for _, b := range boxes {
		w := lipgloss.Width(b)
		if used > 0 && width > 0 && used+w > width {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line, used = nil, 0
		}
		line = append(line, b)
		used += w
	}
	if len(line) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}

	return s.Title.Render("Summary") + "\n" + strings.Join(lines, "\n")
}

func renderStat(st analysis.Stat, s Styles, last bool) string {
	body := strings.Join([]string{
		s.StatTitle.Render(st.Label),
		s.StatValue.Render(strconv.Itoa(st.Value)),
		s.StatDesc.Render(FormatPercent(st.Percent)),
	}, "\n")
	box := s.StatBox
	if last {
		box = box.BorderRight(false)
	}
	return box.Render(body)
}

// FormatPercent renders a share with one decimal place, as in "33.3%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
