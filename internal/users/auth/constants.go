// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// DefaultAccessTokenTTL keeps a leaked access token useful for minutes only.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the lifetime of the token used to mint new pairs.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour

	// DefaultUserCacheTTL bounds how stale a cached user record may be.
	DefaultUserCacheTTL = 30 * time.Second
)

// # Input Limits

const (
	// PasswordMinLength is the minimum password length in characters.
	PasswordMinLength = 8

	// PasswordMaxBytes is bcrypt's input limit.
	PasswordMaxBytes = 72

	// NameMaxLength applies to first and last names.
	NameMaxLength = 100

	// EmailMaxLength matches the column width.
	EmailMaxLength = 320
)

// timingPassword seeds the dummy hash compared against when a login email is
// unknown. Its value is irrelevant; only the bcrypt work matters.
const timingPassword = "timing-equalisation-only"
