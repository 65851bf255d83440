// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/taibuivan/yomira-iam/internal/platform/apperr"
	"github.com/taibuivan/yomira-iam/internal/platform/sec"
	"github.com/taibuivan/yomira-iam/internal/users/auth"
)

// # Service Layer

// Service serves account profiles.
type Service struct {
	users UserReader
}

// NewService constructs a new [Service] over the user store.
func NewService(users UserReader) *Service {
	return &Service{users: users}
}

/*
GetOwnProfile returns the profile of the authenticated principal.

Description: The principal was resolved by email in the filter; the profile is
re-read by ID so it reflects the stored row rather than the cached one.

Parameters:
  - context: context.Context
  - principal: *sec.Principal (non-nil)

Returns:
  - *Profile: The caller's profile
  - error: apperr.AuthenticationFailed when the account vanished, or storage failures
*/
func (service *Service) GetOwnProfile(context context.Context, principal *sec.Principal) (*Profile, error) {
	user, err := service.users.FindByID(context, principal.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, apperr.AuthenticationFailed()
		}
		return nil, fmt.Errorf("account_service_get_own_profile_failed: %w", err)
	}
	return NewProfile(user), nil
}

/*
FindByEmail returns the profile registered under email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Profile: The matching profile
  - error: apperr.NotFound or storage failures
*/
func (service *Service) FindByEmail(context context.Context, email string) (*Profile, error) {
	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("account_service_find_by_email_failed: %w", err)
	}
	return NewProfile(user), nil
}
