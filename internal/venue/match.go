package venue

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// fold returns the case-folded form of s. A Caser is stateful, so each call
// builds its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(fold(s), fold(substr))
}

// ContainsAnyFold reports whether any of substrs is within s, ignoring case.
func ContainsAnyFold(s string, substrs ...string) bool {
	folded := fold(s)
	for _, sub := range substrs {
		if strings.Contains(folded, fold(sub)) {
			return true
		}
	}
	return false
}

// containsWordFold reports whether word appears in s as a whole word,
// ignoring case. Words are runs of letters and digits.
func containsWordFold(s, word string) bool {
	target := fold(word)
	for _, w := range strings.FieldsFunc(fold(s), isSeparator) {
		if w == target {
			return true
		}
	}
	return false
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r)
}
