package model

import "strings"

// Role is the canonical, closed role set. Internal code only ever sees one of
// these values (or whatever NormalizeRole produced for an unrecognized input);
// raw role strings are parsed exactly once, at the boundary.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
	RoleCleaner Role = "CLEANER"
)

const rolePrefix = "ROLE_"

// NormalizeRole canonicalizes a free-form role string: trims, uppercases and
// strips a leading "ROLE_" marker. Blank input defaults to STUDENT.
// Unrecognized values pass through uppercased rather than being rejected;
// normalization is idempotent either way.
func NormalizeRole(raw string) Role {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return RoleStudent
	}

	// Strip repeatedly so normalization stays idempotent even for inputs
	// that already carry a stripped-then-reprefixed value.
	for strings.HasPrefix(s, rolePrefix) {
		s = strings.TrimPrefix(s, rolePrefix)
	}
	if s == "" {
		return RoleStudent
	}

	return Role(s)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleCleaner:
		return true
	default:
		return false
	}
}

// Authority returns the prefixed form handed to endpoint guards.
func (r Role) Authority() string {
	return rolePrefix + string(r)
}
