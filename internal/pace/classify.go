package pace

import (
	"strings"
	"unicode"

	"rsvp/internal/text"
)

// Complexity ranks how much attention a word needs.
type Complexity int

const (
	Small Complexity = iota
	BelowAverage
	Average
	AboveAverage
	VeryHigh
)

func (c Complexity) String() string {
	switch c {
	case Small:
		return "small"
	case BelowAverage:
		return "below-average"
	case Average:
		return "average"
	case AboveAverage:
		return "above-average"
	case VeryHigh:
		return "very-high"
	default:
		return "unknown"
	}
}

const (
	intensePunct = ".,-!?()"
	heavyPunct   = ".,-!:"
)

// IsIntense reports whether word carries punctuation that deserves a little
// extra display time.
func IsIntense(word string) bool {
	return strings.ContainsAny(word, intensePunct)
}

// Classify ranks word by punctuation, case and length, in that order.
func Classify(word string) Complexity {
	if strings.ContainsAny(word, heavyPunct) || strings.IndexFunc(word, unicode.IsUpper) >= 0 {
		return VeryHigh
	}

	switch n := text.CharCount(word); {
	case n <= 2:
		return Small
	case n <= 4:
		return BelowAverage
	case n <= 12:
		return Average
	case n <= 14:
		return AboveAverage
	default:
		return VeryHigh
	}
}
