// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-iam/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-iam/internal/platform/middleware"
	"github.com/taibuivan/yomira-iam/internal/platform/sec"
)

var (
	signingKey = []byte("0123456789abcdef0123456789abcdef")
	issuedAt   = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
)

// principalLoaderFunc adapts a function to [middleware.PrincipalLoader].
type principalLoaderFunc func(ctx context.Context, email string) (*sec.Principal, error)

func (f principalLoaderFunc) LoadPrincipal(ctx context.Context, email string) (*sec.Principal, error) {
	return f(ctx, email)
}

func usersLoader(principals ...*sec.Principal) principalLoaderFunc {
	return func(ctx context.Context, email string) (*sec.Principal, error) {
		for _, principal := range principals {
			if principal.Email == email {
				return principal, nil
			}
		}
		return nil, nil
	}
}

func alice() *sec.Principal {
	return &sec.Principal{
		UserID:      "u-alice",
		Email:       "alice@x.com",
		Role:        sec.RoleUser,
		Authorities: sec.RoleUser.Authorities(),
		Enabled:     true,
	}
}

// probe records the principal seen downstream and always answers 204.
type probe struct {
	called    bool
	principal *sec.Principal
}

func (p *probe) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	p.called = true
	p.principal = ctxutil.GetPrincipal(request.Context())
	writer.WriteHeader(http.StatusNoContent)
}

func issue(t *testing.T, codec *sec.TokenCodec, subject string, ttl time.Duration) string {
	t.Helper()
	token, err := codec.Issue(subject, ttl, issuedAt)
	require.NoError(t, err)
	return token
}

func serve(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestAuthenticate_AttachesPrincipal verifies the happy path.
*/
func TestAuthenticate_AttachesPrincipal(t *testing.T) {
	codec, err := sec.NewTokenCodec(signingKey, "yomira-iam")
	require.NoError(t, err)

	clock := func() time.Time { return issuedAt.Add(time.Minute) }
	downstream := &probe{}
	handler := middleware.Authenticate(codec, usersLoader(alice()), clock)(downstream)

	recorder := serve(handler, "Bearer "+issue(t, codec, "alice@x.com", 15*time.Minute))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	require.NotNil(t, downstream.principal)
	assert.Equal(t, "alice@x.com", downstream.principal.Email)
	assert.Equal(t, "u-alice", downstream.principal.UserID)
}

/*
TestAuthenticate_StaysAnonymous flips each condition in turn. The request must
always reach the next handler without a principal and without an error response.
*/
func TestAuthenticate_StaysAnonymous(t *testing.T) {
	codec, err := sec.NewTokenCodec(signingKey, "yomira-iam")
	require.NoError(t, err)
	foreignCodec, err := sec.NewTokenCodec([]byte("fedcba9876543210fedcba9876543210"), "yomira-iam")
	require.NoError(t, err)

	ttl := 15 * time.Minute
	valid := issue(t, codec, "alice@x.com", ttl)

	failingLoader := principalLoaderFunc(func(ctx context.Context, email string) (*sec.Principal, error) {
		return nil, errors.New("connection refused")
	})
	panickingLoader := principalLoaderFunc(func(ctx context.Context, email string) (*sec.Principal, error) {
		panic("boom")
	})
	mismatchedLoader := principalLoaderFunc(func(ctx context.Context, email string) (*sec.Principal, error) {
		return &sec.Principal{UserID: "u-bob", Email: "bob@x.com", Role: sec.RoleUser}, nil
	})

	tests := []struct {
		name          string
		authorization string
		loader        middleware.PrincipalLoader
		now           time.Time
	}{
		{"no_header", "", usersLoader(alice()), issuedAt},
		{"basic_scheme", "Basic YWxpY2U6cHc=", usersLoader(alice()), issuedAt},
		{"lowercase_bearer", "bearer " + valid, usersLoader(alice()), issuedAt},
		{"bearer_without_space", "Bearer" + valid, usersLoader(alice()), issuedAt},
		{"malformed_token", "Bearer not.a.token", usersLoader(alice()), issuedAt},
		{"foreign_signature", "Bearer " + issue(t, foreignCodec, "alice@x.com", ttl), usersLoader(alice()), issuedAt},
		{"unknown_user", "Bearer " + issue(t, codec, "ghost@x.com", ttl), usersLoader(alice()), issuedAt},
		{"loader_error", "Bearer " + valid, failingLoader, issuedAt},
		{"loader_panic", "Bearer " + valid, panickingLoader, issuedAt},
		{"subject_mismatch", "Bearer " + valid, mismatchedLoader, issuedAt},
		{"expired_at_boundary", "Bearer " + valid, usersLoader(alice()), issuedAt.Add(ttl)},
		{"expired_after", "Bearer " + valid, usersLoader(alice()), issuedAt.Add(ttl + time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			downstream := &probe{}
			handler := middleware.Authenticate(codec, tt.loader, func() time.Time { return now })(downstream)

			recorder := serve(handler, tt.authorization)

			assert.True(t, downstream.called)
			assert.Nil(t, downstream.principal)
			assert.Equal(t, http.StatusNoContent, recorder.Code)
		})
	}
}

func TestAuthenticate_LastValidSecond(t *testing.T) {
	codec, err := sec.NewTokenCodec(signingKey, "yomira-iam")
	require.NoError(t, err)

	ttl := 15 * time.Minute
	downstream := &probe{}
	clock := func() time.Time { return issuedAt.Add(ttl - time.Second) }
	handler := middleware.Authenticate(codec, usersLoader(alice()), clock)(downstream)

	serve(handler, "Bearer "+issue(t, codec, "alice@x.com", ttl))

	require.NotNil(t, downstream.principal)
}

/*
TestAuthenticate_CancelledLookup verifies a cancelled request is left anonymous.
*/
func TestAuthenticate_CancelledLookup(t *testing.T) {
	codec, err := sec.NewTokenCodec(signingKey, "yomira-iam")
	require.NoError(t, err)

	loaderCalled := false
	loader := principalLoaderFunc(func(ctx context.Context, email string) (*sec.Principal, error) {
		loaderCalled = true
		return alice(), nil
	})

	downstream := &probe{}
	handler := middleware.Authenticate(codec, loader, func() time.Time { return issuedAt })(downstream)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	request := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	request.Header.Set("Authorization", "Bearer "+issue(t, codec, "alice@x.com", time.Hour))
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.False(t, loaderCalled)
	assert.True(t, downstream.called)
	assert.Nil(t, downstream.principal)
}

func TestAuthenticate_KeepsExistingPrincipal(t *testing.T) {
	codec, err := sec.NewTokenCodec(signingKey, "yomira-iam")
	require.NoError(t, err)

	existing := &sec.Principal{UserID: "u-admin", Email: "admin@x.com", Role: sec.RoleAdmin}
	downstream := &probe{}
	handler := middleware.Authenticate(codec, usersLoader(alice()), func() time.Time { return issuedAt })(downstream)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithPrincipal(request.Context(), existing))
	request.Header.Set("Authorization", "Bearer "+issue(t, codec, "alice@x.com", time.Hour))
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Same(t, existing, downstream.principal)
}
