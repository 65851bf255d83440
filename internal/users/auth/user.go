// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the identity core of the IAM service.

It owns the user entity, the user store, and the registration, login and
refresh flows that turn verified credentials into signed token pairs.

# Architecture

  - Entities: [User] and [TokenPair] (this file).
  - Storage: [UserStore] with a Postgres implementation and a Redis read-through cache.
  - Service: [Service] orchestrates hasher, codec and store.
  - Delivery: [Handler] exposes the public /api/v1/auth endpoints.
*/
package auth

import (
	"time"

	"github.com/taibuivan/yomira-iam/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
//
// Email is the login handle and the subject of every token issued for the
// account. It is unique among non-deleted users.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never serialized.
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Role         sec.UserRole `json:"role"`

	// Account status. All true at creation.
	Enabled               bool `json:"enabled"`
	AccountNonLocked      bool `json:"account_non_locked"`
	AccountNonExpired     bool `json:"account_non_expired"`
	CredentialsNonExpired bool `json:"credentials_non_expired"`

	// Auditing
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
	Version   int64     `json:"-"`
	Deleted   bool      `json:"-"`
}

// Principal builds the request-scoped identity for the user.
func (user *User) Principal() *sec.Principal {
	return &sec.Principal{
		UserID:                user.ID,
		Email:                 user.Email,
		Role:                  user.Role,
		Authorities:           user.Role.Authorities(),
		Enabled:               user.Enabled,
		AccountNonLocked:      user.AccountNonLocked,
		AccountNonExpired:     user.AccountNonExpired,
		CredentialsNonExpired: user.CredentialsNonExpired,
	}
}

// TokenPair is the credential set returned by register, authenticate and refresh.
//
// Nothing about a pair is stored server-side.
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	TokenType             string    `json:"token_type"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// # Field Identifiers

// Field names for validation errors in the authentication domain.
const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldRefreshToken = "refresh_token"
)
