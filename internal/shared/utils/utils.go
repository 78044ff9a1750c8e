package utils

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// ParseID parses a positive integer path parameter.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// FoldCase returns a caseless form of s suitable for case-insensitive
// comparison of non-ASCII text (Cyrillic, diacritics).
func FoldCase(s string) string {
	// cases.Caser keeps state, so a fresh one is used per call.
	return cases.Fold().String(s)
}

// FullName joins name and optional surname with a single space.
func FullName(name string, surname *string) string {
	if surname == nil || strings.TrimSpace(*surname) == "" {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(name) + " " + strings.TrimSpace(*surname)
}

// SearchKey is the folded full name stored next to an author and matched by
// substring filters.
func SearchKey(name string, surname *string) string {
	return FoldCase(FullName(name, surname))
}

// Clamp forces v into [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
