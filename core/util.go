package core

import (
	"strings"

	"golang.org/x/text/cases"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// FoldString trims `s` and applies Unicode case folding, for case-insensitive comparisons.
// A cases.Caser is stateful, hence one per call.
func FoldString(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
