// Package analysis walks a text one unit at a time, classifies each unit and
// aggregates the per-tag counts.
package analysis

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"charscope/internal/charclass"
	"charscope/internal/logging"

	"github.com/mattn/go-runewidth"
)

// Mode selects the unit of iteration.
type Mode string

const (
	// ModeCodePoint visits one record per Unicode scalar value.
	ModeCodePoint Mode = "codepoint"
	// ModeUTF16 visits one record per UTF-16 code unit, splitting
	// supplementary-plane characters into two surrogate halves.
	ModeUTF16 Mode = "utf16"
)

// ParseMode validates a mode name. The empty string selects ModeCodePoint.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case "", ModeCodePoint:
		return ModeCodePoint, nil
	case ModeUTF16:
		return ModeUTF16, nil
	}
	return "", fmt.Errorf("invalid mode %q (valid: %s, %s)", s, ModeCodePoint, ModeUTF16)
}

// Record describes one analysed unit.
type Record struct {
	Position    int              `json:"position"`
	Character   string           `json:"character"`
	Display     string           `json:"display"`
	CodeUnit    int              `json:"code_unit"`
	CodePoint   rune             `json:"code_point"`
	UTF16Offset int              `json:"utf16_offset"`
	Hex         string           `json:"hex"`
	Unicode     string           `json:"unicode"`
	Width       int              `json:"width"`
	Categories  charclass.TagSet `json:"categories"`
}

// Result is the outcome of one Analyze call.
type Result struct {
	Mode    Mode     `json:"mode"`
	Records []Record `json:"records"`
	Summary Summary  `json:"summary"`
}

// Options configures an Analyzer.
type Options struct {
	Mode         Mode
	KoreanPolicy charclass.KoreanPolicy
}

// Analyzer is stateless; one instance may serve any number of calls.
type Analyzer struct {
	mode       Mode
	classifier *charclass.Classifier
}

// New returns an Analyzer for opts. Zero-valued fields pick the defaults.
func New(opts Options) *Analyzer {
	mode := opts.Mode
	if mode == "" {
		mode = ModeCodePoint
	}
	policy := opts.KoreanPolicy
	if policy == "" {
		policy = charclass.KoreanUntagged
	}
	return &Analyzer{
		mode:       mode,
		classifier: charclass.NewClassifier(policy),
	}
}

// Mode returns the iteration mode.
func (a *Analyzer) Mode() Mode {
	return a.mode
}

// Analyze classifies every unit of input in order. It never fails; an empty
// input yields no records and a zero total.
func (a *Analyzer) Analyze(input string) Result {
	res := Result{Mode: a.mode, Records: []Record{}}
	if a.mode == ModeUTF16 {
		a.walkUTF16(input, &res)
	} else {
		a.walkCodePoints(input, &res)
	}
	return res
}

func (a *Analyzer) walkCodePoints(input string, res *Result) {
	offset := 0
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		i += size

		var tags charclass.TagSet
		next, _ := utf8.DecodeRuneInString(input[i:])
		if i < len(input) && charclass.IsEmojiSelector(next) {
			tags = a.classifier.ClassifyPresented(r)
		} else {
			tags = a.classifier.Classify(r)
		}

		rec := newRecord(len(res.Records), r, r, offset, tags)
		res.Records = append(res.Records, rec)
		res.Summary.add(tags)
		offset += utf16.RuneLen(r)
	}
}

func (a *Analyzer) walkUTF16(input string, res *Result) {
	units := utf16.Encode([]rune(input))
	debug := logging.Get(logging.CategoryAnalysis).Enabled()
	for i, u := range units {
		r := rune(u)
		// The code point column follows codePointAt: a high surrogate
		// reports the full pair, a low surrogate only itself.
		cp := r
		if i+1 < len(units) {
			if pair := utf16.DecodeRune(r, rune(units[i+1])); pair != utf8.RuneError {
				cp = pair
			}
		}
		if debug && utf16.IsSurrogate(r) {
			logging.AnalysisDebug("surrogate half U+%04X at unit %d (pair U+%04X)", r, i, cp)
		}
		tags := a.classifier.Classify(r)
		rec := newRecord(i, r, cp, i, tags)
		res.Records = append(res.Records, rec)
		res.Summary.add(tags)
	}
}

func newRecord(pos int, unit, cp rune, offset int, tags charclass.TagSet) Record {
	return Record{
		Position:    pos,
		Character:   unitText(unit),
		Display:     DisplayName(unit),
		CodeUnit:    int(unit),
		CodePoint:   cp,
		UTF16Offset: offset,
		Hex:         fmt.Sprintf("0x%X", unit),
		Unicode:     fmt.Sprintf("U+%04X", unit),
		Width:       unitWidth(unit),
		Categories:  tags,
	}
}

// unitText renders a unit as text. Lone surrogates cannot be carried in a Go
// string, so they are written as an escape.
func unitText(r rune) string {
	if utf16.IsSurrogate(r) {
		return fmt.Sprintf(`\u%04X`, r)
	}
	return string(r)
}

func unitWidth(r rune) int {
	if utf16.IsSurrogate(r) {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// DisplayName returns the label shown for r on a card: control characters
// with a name get it spelled out, everything else is shown as is.
func DisplayName(r rune) string {
	switch r {
	case ' ':
		return "Space"
	case '\n':
		return "Newline"
	case '\t':
		return "Tab"
	case '\r':
		return "Carriage Return"
	}
	return unitText(r)
}

// CharCount returns the number of units Analyze would visit for input in
// the given mode.
func CharCount(input string, mode Mode) int {
	if mode == ModeUTF16 {
		n := 0
		for _, r := range input {
			n += utf16.RuneLen(r)
		}
		return n
	}
	return utf8.RuneCountInString(input)
}

var defaultAnalyzer = New(Options{})

// Analyze runs the default analyzer (code point mode, Korean untagged).
func Analyze(input string) Result {
	return defaultAnalyzer.Analyze(input)
}
