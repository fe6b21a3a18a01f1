package charclass

import "fmt"

// KoreanPolicy decides what happens to Korean characters that match none of
// whitespace, digit or alphabetic.
type KoreanPolicy string

const (
	// KoreanUntagged leaves them without an exclusive tag.
	KoreanUntagged KoreanPolicy = "untagged"
	// KoreanSpecial files them under special.
	KoreanSpecial KoreanPolicy = "special"
)

// ParseKoreanPolicy validates a policy name. The empty string selects
// KoreanUntagged.
func ParseKoreanPolicy(s string) (KoreanPolicy, error) {
	switch KoreanPolicy(s) {
	case "", KoreanUntagged:
		return KoreanUntagged, nil
	case KoreanSpecial:
		return KoreanSpecial, nil
	}
	return "", fmt.Errorf("invalid korean policy %q (valid: %s, %s)", s, KoreanUntagged, KoreanSpecial)
}

// Classifier assigns tags to single characters. The zero value uses
// KoreanUntagged.
type Classifier struct {
	KoreanPolicy KoreanPolicy
}

// NewClassifier returns a classifier with the given Korean policy.
func NewClassifier(policy KoreanPolicy) *Classifier {
	return &Classifier{KoreanPolicy: policy}
}

// Classify returns the tags for r. The result always holds exactly one of
// ascii and unicode.
func (c *Classifier) Classify(r rune) TagSet {
	return c.classify(r, false)
}

// ClassifyPresented is Classify for a character that is followed by VS16.
// Characters with the Emoji property are then tagged emoji even when their
// default presentation is text.
func (c *Classifier) ClassifyPresented(r rune) TagSet {
	return c.classify(r, true)
}

func (c *Classifier) classify(r rune, vs16Follows bool) TagSet {
	var s TagSet

	if r >= 0 && r <= 127 {
		s = s.With(TagASCII)
	} else {
		s = s.With(TagUnicode)
	}

	korean := IsKorean(r)
	if korean {
		s = s.With(TagKorean)
	}

	if HasEmojiPresentation(r) || (vs16Follows && IsEmoji(r)) {
		s = s.With(TagEmoji)
	}

	switch {
	case IsWhitespace(r):
		s = s.With(TagWhitespace)
	case isASCIIDigit(r):
		s = s.With(TagDigit)
	case isASCIILetter(r):
		s = s.With(TagAlphabetic)
	case s.Has(TagEmoji):
		// emoji never falls through to special
	case korean:
		if c.KoreanPolicy == KoreanSpecial {
			s = s.With(TagSpecial)
		}
	default:
		s = s.With(TagSpecial)
	}

	return s
}

var defaultClassifier = &Classifier{KoreanPolicy: KoreanUntagged}

// Classify tags r with the default classifier.
func Classify(r rune) TagSet {
	return defaultClassifier.Classify(r)
}
