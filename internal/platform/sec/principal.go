// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Principal is the authenticated identity attached to a single request.
//
// It is rebuilt from a freshly loaded user on every request and lives only in
// that request's context. It is never cached or persisted.
type Principal struct {
	UserID      string
	Email       string
	Role        UserRole
	Authorities []string

	Enabled               bool
	AccountNonLocked      bool
	AccountNonExpired     bool
	CredentialsNonExpired bool
}

// HasAuthority reports whether the principal carries the given authority.
func (principal *Principal) HasAuthority(authority string) bool {
	if principal == nil {
		return false
	}
	for _, granted := range principal.Authorities {
		if granted == authority {
			return true
		}
	}
	return false
}
