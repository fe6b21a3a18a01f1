// Package charclass assigns category tags to single characters.
//
// Every character gets exactly one encoding tag (ascii or unicode), at most
// one tag from the exclusive group (whitespace, digit, alphabetic, special)
// and any of the additive script tags (korean, emoji).
package charclass

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tag is one label from the fixed classification vocabulary.
type Tag uint8

const (
	TagASCII Tag = iota
	TagUnicode
	TagKorean
	TagEmoji
	TagWhitespace
	TagDigit
	TagAlphabetic
	TagSpecial

	tagCount
)

// NumTags is the size of the tag vocabulary.
const NumTags = int(tagCount)

// AllTags lists every tag in display order.
var AllTags = []Tag{
	TagASCII,
	TagUnicode,
	TagKorean,
	TagEmoji,
	TagWhitespace,
	TagDigit,
	TagAlphabetic,
	TagSpecial,
}

// ExclusiveTags is the group of which at most one applies per character.
var ExclusiveTags = []Tag{TagWhitespace, TagDigit, TagAlphabetic, TagSpecial}

var tagNames = [tagCount]string{
	TagASCII:      "ascii",
	TagUnicode:    "unicode",
	TagKorean:     "korean",
	TagEmoji:      "emoji",
	TagWhitespace: "whitespace",
	TagDigit:      "digit",
	TagAlphabetic: "alphabetic",
	TagSpecial:    "special",
}

var tagLabels = [tagCount]string{
	TagASCII:      "ASCII",
	TagUnicode:    "Unicode",
	TagKorean:     "Korean",
	TagEmoji:      "Emoji",
	TagWhitespace: "Whitespace",
	TagDigit:      "Digits",
	TagAlphabetic: "Alphabets",
	TagSpecial:    "Special",
}

// String returns the machine name of the tag (e.g. "alphabetic").
func (t Tag) String() string {
	if t >= tagCount {
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
	return tagNames[t]
}

// Label returns the human label used on badges (e.g. "Alphabets").
func (t Tag) Label() string {
	if t >= tagCount {
		return t.String()
	}
	return tagLabels[t]
}

// IsExclusive reports whether t belongs to the exclusive group.
func (t Tag) IsExclusive() bool {
	switch t {
	case TagWhitespace, TagDigit, TagAlphabetic, TagSpecial:
		return true
	}
	return false
}

// ParseTag resolves a machine name back to its Tag.
func ParseTag(s string) (Tag, error) {
	for i, name := range tagNames {
		if name == s {
			return Tag(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category tag %q", s)
}

func (t Tag) MarshalText() ([]byte, error) {
	if t >= tagCount {
		return nil, fmt.Errorf("unknown category tag %d", uint8(t))
	}
	return []byte(tagNames[t]), nil
}

func (t *Tag) UnmarshalText(b []byte) error {
	parsed, err := ParseTag(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TagSet is a small bit set of tags.
type TagSet uint16

// Of builds a set from the given tags.
func Of(tags ...Tag) TagSet {
	var s TagSet
	for _, t := range tags {
		s = s.With(t)
	}
	return s
}

// With returns s with t added.
func (s TagSet) With(t Tag) TagSet {
	return s | 1<<t
}

// Without returns s with t removed.
func (s TagSet) Without(t Tag) TagSet {
	return s &^ (1 << t)
}

// Has reports whether t is in s.
func (s TagSet) Has(t Tag) bool {
	return s&(1<<t) != 0
}

// Len returns the number of tags in s.
func (s TagSet) Len() int {
	n := 0
	for _, t := range AllTags {
		if s.Has(t) {
			n++
		}
	}
	return n
}

// Exclusive returns the exclusive-group tag in s, if any.
func (s TagSet) Exclusive() (Tag, bool) {
	for _, t := range ExclusiveTags {
		if s.Has(t) {
			return t, true
		}
	}
	return 0, false
}

// Tags returns the members of s in assignment order: encoding, script,
// emoji, then the exclusive tag.
func (s TagSet) Tags() []Tag {
	out := make([]Tag, 0, 4)
	for _, t := range AllTags {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s TagSet) String() string {
	tags := s.Tags()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return "{" + strings.Join(names, ",") + "}"
}

// MarshalJSON encodes the set as an array of tag names.
func (s TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Tags())
}

func (s *TagSet) UnmarshalJSON(b []byte) error {
	var tags []Tag
	if err := json.Unmarshal(b, &tags); err != nil {
		return err
	}
	*s = Of(tags...)
	return nil
}
