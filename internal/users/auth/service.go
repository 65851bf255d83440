// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taibuivan/yomira-iam/internal/platform/apperr"
	"github.com/taibuivan/yomira-iam/internal/platform/constants"
	"github.com/taibuivan/yomira-iam/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-iam/internal/platform/sec"
)

// # Contracts & Types

// PasswordHasher hashes and verifies credentials. Implemented by [*sec.BcryptHasher].
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Verify(plainTextPassword, existingHash string) bool
}

// TokenCodec issues and decodes signed tokens. Implemented by [*sec.TokenCodec].
type TokenCodec interface {
	IssueWithClaims(subject string, ttl time.Duration, now time.Time, extra map[string]any) (string, error)
	Decode(token string) (*sec.Claims, error)
}

// Options tunes token lifetimes and the clock. Zero values take defaults.
type Options struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Now             func() time.Time
}

// Service implements the registration, login and refresh use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	store      UserStore
	hasher     PasswordHasher
	codec      TokenCodec
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time

	// dummyHash is verified against when a login email is unknown, so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

// NewService constructs a [Service] with its dependencies.
func NewService(store UserStore, hasher PasswordHasher, codec TokenCodec, options Options) (*Service, error) {
	dummyHash, err := hasher.Hash(timingPassword)
	if err != nil {
		return nil, fmt.Errorf("auth_service_init_failed: %w", err)
	}

	service := &Service{
		store:      store,
		hasher:     hasher,
		codec:      codec,
		accessTTL:  options.AccessTokenTTL,
		refreshTTL: options.RefreshTokenTTL,
		now:        options.Now,
		dummyHash:  dummyHash,
	}

	if service.accessTTL <= 0 {
		service.accessTTL = DefaultAccessTokenTTL
	}
	if service.refreshTTL <= 0 {
		service.refreshTTL = DefaultRefreshTokenTTL
	}
	if service.now == nil {
		service.now = time.Now
	}

	return service, nil
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

/*
Register creates a USER account and returns its first token pair.

Description: The existence check is a fast path only. Two concurrent
registrations for one email can both pass it; the store's uniqueness
constraint then rejects the loser with the same UserAlreadyExists error.

Parameters:
  - context: context.Context
  - input: RegisterInput (validated by the caller)

Returns:
  - *TokenPair: Access and refresh tokens for the new account
  - error: apperr.UserAlreadyExists or internal failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*TokenPair, error) {
	exists, err := service.store.ExistsByEmail(context, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}
	if exists {
		return nil, apperr.UserAlreadyExists(input.Email)
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	auditor := ctxutil.AuditorFrom(context, constants.SystemAuditor)
	user := &User{
		Email:                 input.Email,
		PasswordHash:          hashedPassword,
		FirstName:             input.FirstName,
		LastName:              input.LastName,
		Role:                  sec.RoleUser,
		Enabled:               true,
		AccountNonLocked:      true,
		AccountNonExpired:     true,
		CredentialsNonExpired: true,
		CreatedBy:             auditor,
		UpdatedBy:             auditor,
	}

	saved, err := service.store.Save(context, user)
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_registered", "user_id", saved.ID)

	return service.issuePair(saved.Email)
}

// # Authentication Flow

// AuthenticateInput holds login credentials.
type AuthenticateInput struct {
	Email    string
	Password string
}

/*
Authenticate verifies credentials and returns a fresh token pair.

Description: Unknown email and wrong password produce the identical
InvalidCredentials error after comparable work. Nothing is written.

Parameters:
  - context: context.Context
  - input: AuthenticateInput

Returns:
  - *TokenPair: Access and refresh tokens
  - error: apperr.InvalidCredentials or internal failures
*/
func (service *Service) Authenticate(context context.Context, input AuthenticateInput) (*TokenPair, error) {
	user, err := service.store.FindByEmail(context, input.Email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("auth_service_authenticate_failed: %w", err)
		}
		service.hasher.Verify(input.Password, service.dummyHash)
		return nil, apperr.InvalidCredentials()
	}

	if !service.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	return service.issuePair(user.Email)
}

// # Token Refresh

/*
Refresh exchanges a valid refresh token for a new pair.

Description: The token must verify, carry typ=refresh, be unexpired, and name
an existing account. Every rejection is the same AuthenticationFailed error.
Refresh tokens are not tracked, so the presented one stays usable until expiry.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *TokenPair: New access and refresh tokens
  - error: apperr.AuthenticationFailed or internal failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := service.codec.Decode(refreshToken)
	if err != nil {
		return nil, apperr.AuthenticationFailed()
	}

	if claims.ExtraString(constants.ClaimTokenType) != constants.TokenTypeRefresh ||
		claims.Subject == "" ||
		claims.IsExpired(service.now()) {
		return nil, apperr.AuthenticationFailed()
	}

	user, err := service.store.FindByEmail(context, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.AuthenticationFailed()
		}
		return nil, fmt.Errorf("auth_service_refresh_failed: %w", err)
	}

	return service.issuePair(user.Email)
}

// # Principal Loading

// LoadPrincipal resolves a token subject to the current principal.
//
// An unknown email yields (nil, nil). It satisfies the authentication
// filter's principal loader contract.
func (service *Service) LoadPrincipal(context context.Context, email string) (*sec.Principal, error) {
	user, err := service.store.FindByEmail(context, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth_service_load_principal_failed: %w", err)
	}
	return user.Principal(), nil
}

// issuePair signs an access and a refresh token for subject at the same instant.
func (service *Service) issuePair(subject string) (*TokenPair, error) {
	now := service.now()
	issuedAt := now.Truncate(time.Second)

	accessToken, err := service.codec.IssueWithClaims(subject, service.accessTTL, now,
		map[string]any{constants.ClaimTokenType: constants.TokenTypeAccess})
	if err != nil {
		return nil, fmt.Errorf("auth_service_issue_access_failed: %w", err)
	}

	refreshToken, err := service.codec.IssueWithClaims(subject, service.refreshTTL, now,
		map[string]any{constants.ClaimTokenType: constants.TokenTypeRefresh})
	if err != nil {
		return nil, fmt.Errorf("auth_service_issue_refresh_failed: %w", err)
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		TokenType:             constants.TokenType,
		AccessTokenExpiresAt:  issuedAt.Add(service.accessTTL),
		RefreshTokenExpiresAt: issuedAt.Add(service.refreshTTL),
	}, nil
}
