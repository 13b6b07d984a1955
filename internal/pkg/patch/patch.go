// Package patch resolves optional request fields against their defaults.
package patch

import "strings"

// Coalesce returns *p, or fallback when p is nil.
func Coalesce[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}

// TrimmedOrNil trims s and treats a blank value the same as an absent one.
func TrimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
