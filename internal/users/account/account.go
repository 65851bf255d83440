// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account exposes read access to registered accounts.

The authenticated user can read their own profile; administrators can look
any account up by email. Writes happen only through registration in the auth
package.

# Architecture

  - Entities: [Profile], a safe projection of [auth.User].
  - Domain: This package reads through the auth package's user store.
  - Security: Every route sits behind an authorization guard.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/yomira-iam/internal/platform/sec"
	"github.com/taibuivan/yomira-iam/internal/users/auth"
)

// # Domain Entities

// Profile is the externally visible view of an account.
type Profile struct {
	ID                    string       `json:"id"`
	Email                 string       `json:"email"`
	FirstName             string       `json:"first_name"`
	LastName              string       `json:"last_name"`
	Role                  sec.UserRole `json:"role"`
	Authorities           []string     `json:"authorities"`
	Enabled               bool         `json:"enabled"`
	AccountNonLocked      bool         `json:"account_non_locked"`
	AccountNonExpired     bool         `json:"account_non_expired"`
	CredentialsNonExpired bool         `json:"credentials_non_expired"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

// NewProfile projects a user entity onto its public view.
func NewProfile(user *auth.User) *Profile {
	return &Profile{
		ID:                    user.ID,
		Email:                 user.Email,
		FirstName:             user.FirstName,
		LastName:              user.LastName,
		Role:                  user.Role,
		Authorities:           user.Role.Authorities(),
		Enabled:               user.Enabled,
		AccountNonLocked:      user.AccountNonLocked,
		AccountNonExpired:     user.AccountNonExpired,
		CredentialsNonExpired: user.CredentialsNonExpired,
		CreatedAt:             user.CreatedAt,
		UpdatedAt:             user.UpdatedAt,
	}
}

// # Repository Contracts

// UserReader is the read-only slice of [auth.UserStore] this package needs.
type UserReader interface {
	FindByID(context context.Context, id string) (*auth.User, error)
	FindByEmail(context context.Context, email string) (*auth.User, error)
}
