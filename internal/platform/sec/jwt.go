// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces declared by the consumers.
//
// Everything here is a pure function of its inputs plus immutable key
// material, so it is safe for unsynchronized concurrent use.
package sec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinKeyLength is the minimum HS256 key size in bytes.
const MinKeyLength = 32

// Decode failures. Both are terminal for the token that produced them.
var (
	// ErrMalformedToken means the artifact could not be parsed as a signed token.
	ErrMalformedToken = errors.New("sec: malformed token")

	// ErrInvalidSignature means the signature (or algorithm) does not verify
	// under the configured key.
	ErrInvalidSignature = errors.New("sec: invalid token signature")
)

// Registered claim names. Extra claims may not override them.
const (
	claimID        = "jti"
	claimSubject   = "sub"
	claimIssuer    = "iss"
	claimIssuedAt  = "iat"
	claimExpiresAt = "exp"
)

// Claims is the decoded payload of a token.
type Claims struct {
	// ID uniquely identifies one issued token.
	ID string
	// Subject is the identity the token asserts (the user's email).
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	// Extra holds every non-registered claim.
	Extra map[string]any
}

// IsExpired reports whether the claims are expired at now.
//
// A token is expired AT its expiry instant: now >= ExpiresAt.
func (claims *Claims) IsExpired(now time.Time) bool {
	return !now.Before(claims.ExpiresAt)
}

// ExtraString returns a string-valued extra claim, or "" when absent.
func (claims *Claims) ExtraString(name string) string {
	value, _ := claims.Extra[name].(string)
	return value
}

// IsTokenValid checks decoded claims against the currently loaded principal.
//
// The subject must equal the principal's email and the token must not be
// expired at now.
func IsTokenValid(claims *Claims, principal *Principal, now time.Time) bool {
	if claims == nil || principal == nil {
		return false
	}
	return claims.Subject == principal.Email && !claims.IsExpired(now)
}

// TokenCodec issues and decodes HS256-signed JWTs with a symmetric key.
//
// The key is read-only after construction. Replacing it invalidates every
// previously issued token.
type TokenCodec struct {
	key    []byte
	issuer string
	parser *jwt.Parser
}

// DecodeKey decodes base64-encoded key material from configuration.
func DecodeKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("sec: signing key is not valid base64: %w", err)
	}
	return key, nil
}

// NewTokenCodec creates a codec signing with key and stamping issuer into
// every token.
func NewTokenCodec(key []byte, issuer string) (*TokenCodec, error) {
	if len(key) < MinKeyLength {
		return nil, fmt.Errorf("sec: signing key must be at least %d bytes, got %d", MinKeyLength, len(key))
	}

	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)

	return &TokenCodec{
		key:    keyCopy,
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			// Expiry is evaluated by the caller at validation time.
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Issue signs a token for subject valid from now for ttl.
func (codec *TokenCodec) Issue(subject string, ttl time.Duration, now time.Time) (string, error) {
	return codec.IssueWithClaims(subject, ttl, now, nil)
}

// IssueWithClaims is [TokenCodec.Issue] with additional non-registered claims.
//
// Timestamps are carried at one-second precision: issued-at is now truncated
// to the second and expires-at is issued-at + ttl.
func (codec *TokenCodec) IssueWithClaims(subject string, ttl time.Duration, now time.Time, extra map[string]any) (string, error) {
	if subject == "" {
		return "", errors.New("sec: token subject is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("sec: token ttl must be positive, got %s", ttl)
	}

	issuedAt := now.Truncate(time.Second)

	mapClaims := jwt.MapClaims{}
	for name, value := range extra {
		if isRegisteredClaim(name) {
			continue
		}
		mapClaims[name] = value
	}

	mapClaims[claimID] = uuid.NewString()
	mapClaims[claimSubject] = subject
	mapClaims[claimIssuedAt] = jwt.NewNumericDate(issuedAt)
	mapClaims[claimExpiresAt] = jwt.NewNumericDate(issuedAt.Add(ttl))
	if codec.issuer != "" {
		mapClaims[claimIssuer] = codec.issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signedToken, err := token.SignedString(codec.key)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Decode verifies the signature of tokenString and returns its claims.
//
// Expiry is NOT checked: an expired but authentic token decodes successfully.
// Failures are [ErrMalformedToken] or [ErrInvalidSignature].
func (codec *TokenCodec) Decode(tokenString string) (*Claims, error) {
	token, err := codec.parser.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return codec.key, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrMalformedToken
	}

	return claimsFromMap(mapClaims)
}

// classifyParseError folds jwt's error set into the two decode failures.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
}

func claimsFromMap(mapClaims jwt.MapClaims) (*Claims, error) {
	subject, err := mapClaims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	issuer, err := mapClaims.GetIssuer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	expiresAt, err := mapClaims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if expiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}

	issuedAt, err := mapClaims.GetIssuedAt()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	claims := &Claims{
		Subject:   subject,
		Issuer:    issuer,
		ExpiresAt: expiresAt.Time,
		Extra:     map[string]any{},
	}
	if issuedAt != nil {
		claims.IssuedAt = issuedAt.Time
	}
	if id, ok := mapClaims[claimID].(string); ok {
		claims.ID = id
	}

	for name, value := range mapClaims {
		if !isRegisteredClaim(name) {
			claims.Extra[name] = value
		}
	}

	return claims, nil
}

func isRegisteredClaim(name string) bool {
	switch name {
	case claimID, claimSubject, claimIssuer, claimIssuedAt, claimExpiresAt, "nbf", "aud":
		return true
	}
	return false
}
