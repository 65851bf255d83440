// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/yomira-iam/internal/platform/constants"
	"github.com/taibuivan/yomira-iam/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-iam/internal/platform/sec"
)

// TokenDecoder verifies a bearer token and returns its claims.
//
// Implemented by [*sec.TokenCodec].
type TokenDecoder interface {
	Decode(token string) (*sec.Claims, error)
}

// PrincipalLoader resolves a token subject to a freshly loaded principal.
//
// A nil principal with a nil error means the subject does not exist.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, email string) (*sec.Principal, error)
}

// Authenticate reconstructs the request principal from a bearer token.
//
// The filter is permissive: it never writes a response. Every failure leaves
// the request anonymous and protected routes reject it later via
// [RequireAuth] or [RequireRole].
//
// # Flow
//  1. No "Bearer " Authorization header: continue anonymous.
//  2. Decode the token; malformed or badly signed: continue anonymous.
//  3. Empty subject, or a principal already present: continue unchanged.
//  4. Load the principal by subject; error, cancellation or not found: anonymous.
//  5. Subject must match the principal and the token must be unexpired at now().
//  6. Attach the principal via [ctxutil.WithPrincipal] and continue.
//
// # Parameters
//   - decoder: Signature verification, usually [*sec.TokenCodec].
//   - loader: Principal lookup, usually the auth service.
//   - now: Clock used for the expiry check. Nil means [time.Now].
func Authenticate(decoder TokenDecoder, loader PrincipalLoader, now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			// ── 1. Anonymous Access ───────────────────────────────────────────
			authHeader := request.Header.Get(constants.HeaderAuthorization)
			token, found := strings.CutPrefix(authHeader, constants.BearerPrefix)
			if !found {
				next.ServeHTTP(writer, request)
				return
			}

			logger := ctxutil.GetLogger(ctx)

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := decoder.Decode(token)
			if err != nil {
				logger.DebugContext(ctx, "bearer_token_rejected", slog.String("reason", err.Error()))
				next.ServeHTTP(writer, request)
				return
			}

			if claims.Subject == "" || ctxutil.GetPrincipal(ctx) != nil {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Principal Resolution ───────────────────────────────────────
			principal, err := loadPrincipal(ctx, loader, claims.Subject)
			if err != nil {
				logger.WarnContext(ctx, "principal_lookup_failed", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}
			if principal == nil || !sec.IsTokenValid(claims, principal, now()) {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			principalLogger := logger.With(slog.String("user_id", principal.UserID))
			ctx = ctxutil.WithPrincipal(ctx, principal)
			ctx = ctxutil.WithLogger(ctx, principalLogger)
			principalLogger.DebugContext(ctx, "principal_attached", slog.String("role", string(principal.Role)))

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// loadPrincipal shields the filter from a misbehaving loader.
func loadPrincipal(ctx context.Context, loader PrincipalLoader, email string) (principal *sec.Principal, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			principal, err = nil, fmt.Errorf("principal loader panicked: %v", recovered)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return loader.LoadPrincipal(ctx, email)
}
