package analysis

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"charscope/internal/charclass"
)

var (
	// ErrNoData is returned when a percentage is requested against a zero
	// total.
	ErrNoData = errors.New("no data: total is zero")
	// ErrBlankInput is returned by ValidateInput for empty or
	// whitespace-only text.
	ErrBlankInput = errors.New("please enter some text")
)

// Summary holds the per-tag counts and the number of units processed.
type Summary struct {
	Total  int
	counts [charclass.NumTags]int
}

func (s *Summary) add(tags charclass.TagSet) {
	s.Total++
	for _, t := range tags.Tags() {
		s.counts[t]++
	}
}

// Count returns the number of units tagged t.
func (s Summary) Count(t charclass.Tag) int {
	if int(t) >= len(s.counts) {
		return 0
	}
	return s.counts[t]
}

// ExclusiveTotal sums the four exclusive-group counts. It never exceeds
// Total.
func (s Summary) ExclusiveTotal() int {
	n := 0
	for _, t := range charclass.ExclusiveTags {
		n += s.counts[t]
	}
	return n
}

// Percent returns count/Total*100 rounded to one decimal place.
func (s Summary) Percent(t charclass.Tag) (float64, error) {
	return percentOf(s.Count(t), s.Total)
}

func percentOf(count, total int) (float64, error) {
	if total == 0 {
		return 0, ErrNoData
	}
	return math.Round(float64(count)/float64(total)*1000) / 10, nil
}

// Map returns the counts keyed by tag name plus "total".
func (s Summary) Map() map[string]int {
	m := make(map[string]int, len(charclass.AllTags)+1)
	m["total"] = s.Total
	for _, t := range charclass.AllTags {
		m[t.String()] = s.counts[t]
	}
	return m
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

func (s *Summary) UnmarshalJSON(b []byte) error {
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*s = Summary{Total: m["total"]}
	for _, t := range charclass.AllTags {
		s.counts[t] = m[t.String()]
	}
	return nil
}

// Stat is one line of the statistics panel.
type Stat struct {
	Label   string  `json:"label"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
}

// Stats lists the summary lines in panel order. Total, ASCII, Unicode,
// Korean, Alphabets and Digits always appear; Special Characters, Whitespace
// and Emoji only when non-zero. A zero total yields ErrNoData.
func (s Summary) Stats() ([]Stat, error) {
	if s.Total == 0 {
		return nil, ErrNoData
	}
	items := []Stat{
		{Label: "Total Characters", Value: s.Total},
		{Label: "ASCII", Value: s.Count(charclass.TagASCII)},
		{Label: "Unicode", Value: s.Count(charclass.TagUnicode)},
		{Label: "Korean", Value: s.Count(charclass.TagKorean)},
		{Label: "Alphabets", Value: s.Count(charclass.TagAlphabetic)},
		{Label: "Digits", Value: s.Count(charclass.TagDigit)},
	}
	if n := s.Count(charclass.TagSpecial); n > 0 {
		items = append(items, Stat{Label: "Special Characters", Value: n})
	}
	if n := s.Count(charclass.TagWhitespace); n > 0 {
		items = append(items, Stat{Label: "Whitespace", Value: n})
	}
	if n := s.Count(charclass.TagEmoji); n > 0 {
		items = append(items, Stat{Label: "Emoji", Value: n})
	}
	for i := range items {
		items[i].Percent, _ = percentOf(items[i].Value, s.Total)
	}
	return items, nil
}

// ValidateInput rejects blank or whitespace-only text before it reaches the
// analyzer.
func ValidateInput(input string) error {
	if strings.TrimFunc(input, charclass.IsWhitespace) == "" {
		return ErrBlankInput
	}
	return nil
}
