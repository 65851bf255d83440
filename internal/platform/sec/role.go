// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "fmt"

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The set is closed: only the constants below are valid.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "ADMIN"

	// Default role for standard registered users
	RoleUser UserRole = "USER"
)

// authorityPrefix is prepended to a role to form its authority string.
const authorityPrefix = "ROLE_"

// ParseRole converts a stored role string back into a [UserRole].
func ParseRole(value string) (UserRole, error) {
	role := UserRole(value)
	if !role.Valid() {
		return "", fmt.Errorf("sec: unknown role %q", value)
	}
	return role, nil
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// Authority returns the fixed authority string for the role, e.g. "ROLE_ADMIN".
func (r UserRole) Authority() string {
	return authorityPrefix + string(r)
}

// Authorities returns every authority the role carries.
func (r UserRole) Authorities() []string {
	if !r.Valid() {
		return nil
	}
	return []string{r.Authority()}
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.Valid() && r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleUser:
		return 10
	default:
		return 0
	}
}
