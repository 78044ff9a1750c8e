package utils

import "strings"

// EscapeLike escapes LIKE wildcards so user input matches literally.
// Queries using the result must declare ESCAPE '\'.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`) // backslash first
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// ContainsPattern builds a LIKE pattern matching s anywhere.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

// SortOrder normalizes an order keyword to ASC or DESC, defaulting to ASC.
func SortOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), "desc") {
		return "DESC"
	}
	return "ASC"
}
