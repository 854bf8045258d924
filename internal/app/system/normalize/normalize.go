// Package normalize provides field normalization helpers applied before
// validation and persistence. Normalizing in one place keeps stores and
// handlers consistent about what a "clean" value looks like.
package normalize

import "strings"

// Email trims whitespace and lowercases an email address. Emails are
// stored lowercased so lookups are case-insensitive without a shadow field.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace but preserves case; display names keep the
// casing the user typed.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role trims whitespace and lowercases an account role for comparison
// against the role enum.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TeamRole trims whitespace on a functional role label. Case is
// preserved: team-role matching is exact and case-sensitive.
func TeamRole(s string) string {
	return strings.TrimSpace(s)
}
