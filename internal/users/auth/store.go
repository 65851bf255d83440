// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/yomira-iam/internal/platform/apperr"
)

//go:generate mockgen -source=store.go -destination=../../mock/user_store_mock.go -package=mock

// ErrUserNotFound is returned by lookups that match no live user.
var ErrUserNotFound = apperr.NotFound("User")

// # User Data Access

// UserStore defines the data access contract for user accounts.
//
// Implementations must be safe for concurrent use and must enforce email
// uniqueness themselves: [UserStore.ExistsByEmail] is only a hint.
type UserStore interface {

	/*
		FindByEmail returns the live account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string (exact match)

		Returns:
		  - *User: Hydrated entity
		  - error: ErrUserNotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByID returns the live account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *User: Hydrated entity
		  - error: ErrUserNotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		ExistsByEmail reports whether a live account uses the email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - bool: true when taken
		  - error: Storage failures
	*/
	ExistsByEmail(context context.Context, email string) (bool, error)

	/*
		Save inserts a new account.

		Description: Assigns ID, timestamps and version on the passed entity.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - *User: The persisted entity
		  - error: apperr.UserAlreadyExists on an email collision, or storage failures
	*/
	Save(context context.Context, user *User) (*User, error)
}
