package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeKey canonicalizes a case-insensitive name (state or tag) for map lookups.
func NormalizeKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameKey reports whether two names are equal under NormalizeKey.
func SameKey(a, b string) bool {
	return NormalizeKey(a) == NormalizeKey(b)
}
