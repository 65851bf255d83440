// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-iam/internal/platform/sec"
)

var (
	testKey  = []byte("0123456789abcdef0123456789abcdef")
	otherKey = []byte("fedcba9876543210fedcba9876543210")
	epoch    = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
)

func newCodec(t *testing.T, key []byte) *sec.TokenCodec {
	t.Helper()
	codec, err := sec.NewTokenCodec(key, "yomira-iam")
	require.NoError(t, err)
	return codec
}

/*
TestTokenCodec_RoundTrip verifies that a decoded token carries what was issued.
*/
func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newCodec(t, testKey)

	token, err := codec.IssueWithClaims("alice@x.com", 15*time.Minute, epoch, map[string]any{
		"typ": "access",
		"sub": "mallory@x.com",
	})
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "alice@x.com", claims.Subject)
	assert.Equal(t, "yomira-iam", claims.Issuer)
	assert.True(t, epoch.Equal(claims.IssuedAt))
	assert.True(t, epoch.Add(15*time.Minute).Equal(claims.ExpiresAt))
	assert.Equal(t, "access", claims.ExtraString("typ"))
	assert.NotEmpty(t, claims.ID)
	assert.NotContains(t, claims.Extra, "sub")
}

func TestTokenCodec_UniqueTokens(t *testing.T) {
	codec := newCodec(t, testKey)

	first, err := codec.Issue("alice@x.com", time.Minute, epoch)
	require.NoError(t, err)
	second, err := codec.Issue("alice@x.com", time.Minute, epoch)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenCodec_IssuedAtTruncated(t *testing.T) {
	codec := newCodec(t, testKey)

	token, err := codec.Issue("alice@x.com", time.Hour, epoch.Add(750*time.Millisecond))
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.True(t, epoch.Equal(claims.IssuedAt))
	assert.True(t, epoch.Add(time.Hour).Equal(claims.ExpiresAt))
}

func TestTokenCodec_IssueRejectsBadInput(t *testing.T) {
	codec := newCodec(t, testKey)

	_, err := codec.Issue("", time.Minute, epoch)
	assert.Error(t, err)

	_, err = codec.Issue("alice@x.com", 0, epoch)
	assert.Error(t, err)

	_, err = codec.Issue("alice@x.com", -time.Second, epoch)
	assert.Error(t, err)
}

/*
TestTokenCodec_ExpiryBoundary pins the boundary: valid one second before
expiry, expired at the exact expiry instant and after.
*/
func TestTokenCodec_ExpiryBoundary(t *testing.T) {
	codec := newCodec(t, testKey)
	ttl := 15 * time.Minute

	token, err := codec.Issue("alice@x.com", ttl, epoch)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)

	principal := &sec.Principal{Email: "alice@x.com"}

	assert.False(t, claims.IsExpired(epoch))
	assert.False(t, claims.IsExpired(epoch.Add(ttl-time.Second)))
	assert.True(t, claims.IsExpired(epoch.Add(ttl)))
	assert.True(t, claims.IsExpired(epoch.Add(ttl+time.Hour)))

	assert.True(t, sec.IsTokenValid(claims, principal, epoch.Add(ttl-time.Second)))
	assert.False(t, sec.IsTokenValid(claims, principal, epoch.Add(ttl)))
}

/*
TestTokenCodec_DecodeIgnoresExpiry verifies an expired but authentic token
still decodes.
*/
func TestTokenCodec_DecodeIgnoresExpiry(t *testing.T) {
	codec := newCodec(t, testKey)

	token, err := codec.Issue("alice@x.com", time.Second, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.True(t, claims.IsExpired(time.Now()))
}

func TestIsTokenValid_SubjectMismatch(t *testing.T) {
	codec := newCodec(t, testKey)

	token, err := codec.Issue("alice@x.com", time.Hour, epoch)
	require.NoError(t, err)
	claims, err := codec.Decode(token)
	require.NoError(t, err)

	assert.False(t, sec.IsTokenValid(claims, &sec.Principal{Email: "bob@x.com"}, epoch))
	assert.False(t, sec.IsTokenValid(claims, nil, epoch))
	assert.False(t, sec.IsTokenValid(nil, &sec.Principal{Email: "alice@x.com"}, epoch))
}

/*
TestTokenCodec_DecodeFailures classifies every rejected input.
*/
func TestTokenCodec_DecodeFailures(t *testing.T) {
	codec := newCodec(t, testKey)

	valid, err := codec.Issue("alice@x.com", time.Hour, epoch)
	require.NoError(t, err)

	foreign, err := newCodec(t, otherKey).Issue("alice@x.com", time.Hour, epoch)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tamperedPayload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"mallory@x.com","exp":4102444800}`))
	tampered := parts[0] + "." + tamperedPayload + "." + parts[2]

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alice@x.com",
		"exp": epoch.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "alice@x.com",
		"exp": epoch.Add(time.Hour).Unix(),
	}).SignedString(testKey)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice@x.com",
	}).SignedString(testKey)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", sec.ErrMalformedToken},
		{"garbage", "not-a-token", sec.ErrMalformedToken},
		{"two_segments", parts[0] + "." + parts[1], sec.ErrMalformedToken},
		{"missing_exp", noExp, sec.ErrMalformedToken},
		{"wrong_key", foreign, sec.ErrInvalidSignature},
		{"tampered_payload", tampered, sec.ErrInvalidSignature},
		{"alg_none", noneToken, sec.ErrInvalidSignature},
		{"alg_hs512", hs512, sec.ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := codec.Decode(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewTokenCodec_ShortKey(t *testing.T) {
	_, err := sec.NewTokenCodec([]byte("too-short"), "yomira-iam")
	assert.Error(t, err)
}

func TestDecodeKey(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(testKey)

	key, err := sec.DecodeKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, testKey, key)

	_, err = sec.DecodeKey("%%%")
	assert.Error(t, err)
}
