// Package text splits input lines into words and measures them.
package text

import (
	"iter"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Words yields the whitespace-delimited words of line from left to right.
// The sequence never yields an empty word and may be ranged over any
// number of times.
func Words(line string) iter.Seq[string] {
	return strings.FieldsSeq(line)
}

// Normalize returns word in Unicode normalization form C.
func Normalize(word string) string {
	return norm.NFC.String(word)
}

// CharCount counts the characters of word. Combining sequences that have a
// precomposed form count once.
func CharCount(word string) int {
	if isASCII(word) {
		return len(word)
	}
	return utf8.RuneCountInString(Normalize(word))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
