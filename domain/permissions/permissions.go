// Package permissions models the share-based access grants. Stored permission
// values arrive in two shapes depending on the write path: plain strings
// ("READ") or encoded attribute wrappers ({"S": "READ"}). Both are resolved
// into a normalized Set once, at the boundary, before any business logic
// looks at them.
package permissions

import "strings"

// Permission is an access level grantable through a share.
type Permission string

const (
	Read  Permission = "READ"
	Write Permission = "WRITE"
)

// Parse normalizes a raw permission string. ok is false for anything that is
// not READ or WRITE.
func Parse(s string) (Permission, bool) {
	switch Permission(strings.ToUpper(strings.TrimSpace(s))) {
	case Read:
		return Read, true
	case Write:
		return Write, true
	}
	return "", false
}

// Set is a normalized set of permissions held by a share.
type Set map[Permission]struct{}

// NewSet builds a Set from already-typed permissions.
func NewSet(perms ...Permission) Set {
	s := make(Set, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// NormalizeValues resolves the raw permission values stored on a share into a
// Set. Plain strings and encoded {"S": value} wrappers are accepted; malformed
// entries are dropped, never an error. An empty result means no access.
func NormalizeValues(values []interface{}) Set {
	s := make(Set, len(values))
	for _, v := range values {
		switch raw := v.(type) {
		case string:
			if p, ok := Parse(raw); ok {
				s[p] = struct{}{}
			}
		case map[string]interface{}:
			if inner, ok := raw["S"].(string); ok {
				if p, ok := Parse(inner); ok {
					s[p] = struct{}{}
				}
			}
		}
	}
	return s
}

// NormalizeStrings resolves a plain string slice, the common storage shape.
func NormalizeStrings(values []string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		if p, ok := Parse(v); ok {
			s[p] = struct{}{}
		}
	}
	return s
}

// Contains reports whether the set holds the exact permission.
func (s Set) Contains(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Allows reports whether the set satisfies the required permission.
// WRITE implies READ; nothing implies WRITE.
func (s Set) Allows(required Permission) bool {
	if required == Read {
		return s.Contains(Read) || s.Contains(Write)
	}
	return s.Contains(Write)
}

// Strings returns the set as sorted-stable storage values (READ before WRITE).
func (s Set) Strings() []string {
	out := make([]string, 0, len(s))
	if s.Contains(Read) {
		out = append(out, string(Read))
	}
	if s.Contains(Write) {
		out = append(out, string(Write))
	}
	return out
}
