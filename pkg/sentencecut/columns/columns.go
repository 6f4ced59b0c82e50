// Package columns maps raw table headers to the semantic roles the
// pipeline needs. Matching is fuzzy: headers are reduced to a
// lowercase-alphabetic canonical form before comparison, so "Turn ID",
// "turn_id" and "TURN-id" all resolve the same way.
package columns

import (
	"fmt"
	"strings"
	"unicode"
)

// Role is a semantic column role the pipeline can require.
type Role string

const (
	RoleID        Role = "id"
	RoleTurn      Role = "turn"
	RoleStatement Role = "statement"
	RoleContext   Role = "context"
	RoleCategory  Role = "category"
)

// aliases lists the canonical forms accepted for each role, in match
// preference order. The role name itself is always first.
var aliases = map[Role][]string{
	RoleID:        {"id", "identifier"},
	RoleTurn:      {"turn"},
	RoleStatement: {"statement"},
	RoleContext:   {"context"},
	RoleCategory:  {"category"},
}

// MissingColumnsError reports every required role that could not be
// resolved against the input headers.
type MissingColumnsError struct {
	Roles []Role
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, len(e.Roles))
	for i, r := range e.Roles {
		names[i] = string(r)
	}
	return fmt.Sprintf("missing required columns: %s", strings.Join(names, ", "))
}

// Canonical reduces a header to its lowercase-alphabetic form.
// Digits, spaces, punctuation and underscores are all removed.
func Canonical(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		if unicode.IsLower(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve maps each required role to the index of the first header (in
// column order) whose canonical form matches one of the role's accepted
// names. Later duplicates are ignored. If any role stays unresolved, Resolve returns
// a *MissingColumnsError naming all of them and no partial mapping.
func Resolve(headers []string, roles []Role) (map[Role]int, error) {
	canon := make([]string, len(headers))
	for i, h := range headers {
		canon[i] = Canonical(h)
	}

	resolved := make(map[Role]int, len(roles))
	var missing []Role
	for _, role := range roles {
		names := aliases[role]
		if len(names) == 0 {
			names = []string{string(role)}
		}
		idx := -1
	scan:
		for i, c := range canon {
			for _, name := range names {
				if c == name {
					idx = i
					break scan
				}
			}
		}
		if idx < 0 {
			missing = append(missing, role)
			continue
		}
		resolved[role] = idx
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Roles: missing}
	}
	return resolved, nil
}
