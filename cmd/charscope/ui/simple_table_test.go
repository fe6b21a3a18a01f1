package ui

import (
	"strings"
	"testing"

	"charscope/internal/analysis"
)

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Test Table", []string{"Col1", "Col2"})
	table.AddRow("Row1Col1", "Row1Col2")

	view := table.View(NewStyles(LightTheme()))

	if !strings.Contains(view, "Test Table") {
		t.Error("View missing title")
	}
	if !strings.Contains(view, "Row1Col1") {
		t.Error("View missing cell content")
	}
}

func TestSimpleTable_Empty(t *testing.T) {
	if view := NewSimpleTable("Empty", []string{"A"}).View(NewStyles(LightTheme())); view != "" {
		t.Errorf("expected empty view, got %q", view)
	}
}

func TestRecordsTable(t *testing.T) {
	res := analysis.Analyze("a 가")
	table := RecordsTable(res.Records)
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}
	if got := table.Rows[1][1]; got != "Space" {
		t.Errorf("expected Space display, got %q", got)
	}
	if got := table.Rows[2][2]; got != "2" {
		t.Errorf("expected a double-width cell count for 가, got %q", got)
	}
	if got := table.Rows[2][6]; got != "Unicode, Korean" {
		t.Errorf("unexpected categories cell %q", got)
	}

	view := table.View(NewStyles(DarkTheme()))
	if !strings.Contains(view, "U+AC00") {
		t.Error("View missing unicode column")
	}
}

func TestStatsTable(t *testing.T) {
	stats, err := analysis.Analyze("ab").Summary.Stats()
	if err != nil {
		t.Fatal(err)
	}
	table := StatsTable(stats)
	if table.Rows[0][0] != "Total Characters" || table.Rows[0][2] != "100.0%" {
		t.Errorf("unexpected first row %v", table.Rows[0])
	}
}
