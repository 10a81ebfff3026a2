package derive

import (
	"strings"
	"unicode/utf8"
)

// maxSiblingLengthDiff is the largest length difference still treated as a rhythmic match.
const maxSiblingLengthDiff = 2

// SiblingCompatible reports whether a candidate shares a first letter with any sibling,
// or is within two characters of any sibling's length. siblingNames is comma-separated.
func SiblingCompatible(name, siblingNames string) bool {
	if strings.TrimSpace(siblingNames) == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(strings.ToLower(name))
	length := utf8.RuneCountInString(name)

	for _, sibling := range strings.Split(siblingNames, ",") {
		// Empty entries still count, with length zero.
		sibling = strings.ToLower(strings.TrimSpace(sibling))
		if name != "" && sibling != "" {
			if r, _ := utf8.DecodeRuneInString(sibling); r == first {
				return true
			}
		}
		if abs(utf8.RuneCountInString(sibling)-length) <= maxSiblingLengthDiff {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
