package utils

import "strings"

// OptionalString trims s and returns nil when nothing is left, so blank form
// and import fields are stored as NULL.
func OptionalString(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func Deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
