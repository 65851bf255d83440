// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-iam/internal/platform/constants"
	"github.com/taibuivan/yomira-iam/internal/platform/sec"
)

// CachedUserStore decorates a [UserStore] with a Redis read-through cache on
// [UserStore.FindByEmail], the lookup every authenticated request performs.
//
// Entries expire after the configured TTL and are evicted on Save. Redis
// failures are logged and the call falls through to the wrapped store.
// Negative results are never cached.
type CachedUserStore struct {
	next   UserStore
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedUserStore wraps next with a cache held in client.
func NewCachedUserStore(next UserStore, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *CachedUserStore {
	if ttl <= 0 {
		ttl = DefaultUserCacheTTL
	}
	return &CachedUserStore{next: next, client: client, ttl: ttl, logger: logger}
}

// cachedUser is the Redis representation of a [User]. Unlike the API shape it
// keeps the password hash, since login reads through the cache too.
type cachedUser struct {
	ID                    string    `json:"id"`
	Email                 string    `json:"email"`
	PasswordHash          string    `json:"password_hash"`
	FirstName             string    `json:"first_name"`
	LastName              string    `json:"last_name"`
	Role                  string    `json:"role"`
	Enabled               bool      `json:"enabled"`
	AccountNonLocked      bool      `json:"account_non_locked"`
	AccountNonExpired     bool      `json:"account_non_expired"`
	CredentialsNonExpired bool      `json:"credentials_non_expired"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	CreatedBy             string    `json:"created_by"`
	UpdatedBy             string    `json:"updated_by"`
	Version               int64     `json:"version"`
}

func toCached(user *User) cachedUser {
	return cachedUser{
		ID:                    user.ID,
		Email:                 user.Email,
		PasswordHash:          user.PasswordHash,
		FirstName:             user.FirstName,
		LastName:              user.LastName,
		Role:                  string(user.Role),
		Enabled:               user.Enabled,
		AccountNonLocked:      user.AccountNonLocked,
		AccountNonExpired:     user.AccountNonExpired,
		CredentialsNonExpired: user.CredentialsNonExpired,
		CreatedAt:             user.CreatedAt,
		UpdatedAt:             user.UpdatedAt,
		CreatedBy:             user.CreatedBy,
		UpdatedBy:             user.UpdatedBy,
		Version:               user.Version,
	}
}

func (entry cachedUser) toUser() *User {
	return &User{
		ID:                    entry.ID,
		Email:                 entry.Email,
		PasswordHash:          entry.PasswordHash,
		FirstName:             entry.FirstName,
		LastName:              entry.LastName,
		Role:                  sec.UserRole(entry.Role),
		Enabled:               entry.Enabled,
		AccountNonLocked:      entry.AccountNonLocked,
		AccountNonExpired:     entry.AccountNonExpired,
		CredentialsNonExpired: entry.CredentialsNonExpired,
		CreatedAt:             entry.CreatedAt,
		UpdatedAt:             entry.UpdatedAt,
		CreatedBy:             entry.CreatedBy,
		UpdatedBy:             entry.UpdatedBy,
		Version:               entry.Version,
	}
}

func emailKey(email string) string {
	return constants.RedisPrefixUserByEmail + email
}

/*
FindByEmail serves the user from Redis when present, otherwise loads it from
the wrapped store and populates the cache.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated entity
  - error: ErrUserNotFound or failures of the wrapped store
*/
func (store *CachedUserStore) FindByEmail(context context.Context, email string) (*User, error) {
	key := emailKey(email)

	payload, err := store.client.Get(context, key).Bytes()
	switch {
	case err == nil:
		var entry cachedUser
		if jsonErr := json.Unmarshal(payload, &entry); jsonErr == nil {
			return entry.toUser(), nil
		}
		store.logger.WarnContext(context, "user_cache_entry_corrupt", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		store.logger.WarnContext(context, "user_cache_get_failed", slog.Any("error", err))
	}

	user, err := store.next.FindByEmail(context, email)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(toCached(user)); jsonErr == nil {
		if setErr := store.client.Set(context, key, encoded, store.ttl).Err(); setErr != nil {
			store.logger.WarnContext(context, "user_cache_set_failed", slog.Any("error", setErr))
		}
	}

	return user, nil
}

// FindByID is not cached.
func (store *CachedUserStore) FindByID(context context.Context, id string) (*User, error) {
	return store.next.FindByID(context, id)
}

// ExistsByEmail always asks the wrapped store.
func (store *CachedUserStore) ExistsByEmail(context context.Context, email string) (bool, error) {
	return store.next.ExistsByEmail(context, email)
}

// Save writes through and evicts any cached entry for the email.
func (store *CachedUserStore) Save(context context.Context, user *User) (*User, error) {
	saved, err := store.next.Save(context, user)
	if err != nil {
		return nil, err
	}

	if delErr := store.client.Del(context, emailKey(saved.Email)).Err(); delErr != nil {
		store.logger.WarnContext(context, "user_cache_evict_failed", slog.Any("error", delErr))
	}

	return saved, nil
}
