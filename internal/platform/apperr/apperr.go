// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error taxonomy for the Yomira IAM service.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and the stable error shape returned to API clients.

Architecture:

  - AppError: A struct containing a machine-readable Code and a client-safe message.
  - Taxonomy: Every failure the authentication core can raise has exactly one Code.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be an [AppError] (or wrap one) to
ensure consistent API responses. Anything else is rendered as INTERNAL_ERROR.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Error Codes

// Machine-readable identifiers. Clients may switch on these values; they never change.
const (
	CodeUserAlreadyExists    = "USER_ALREADY_EXISTS"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeAccessDenied         = "ACCESS_DENIED"
	CodeValidation           = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternal             = "INTERNAL_ERROR"
	CodeServiceUnavailable   = "SERVICE_UNAVAILABLE"
)

// AppError is the canonical error type for the IAM API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "ACCESS_DENIED").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an [*AppError] of the same kind.
//
// Two errors are the same kind when their codes match, so
//
//	errors.Is(err, apperr.ErrInvalidCredentials)
//
// holds for any INVALID_CREDENTIALS error regardless of message.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// # Kind Sentinels

// Sentinels for use with [errors.Is]. They must not be mutated.
var (
	ErrUserAlreadyExists    = &AppError{Code: CodeUserAlreadyExists, HTTPStatus: http.StatusConflict}
	ErrInvalidCredentials   = InvalidCredentials()
	ErrAuthenticationFailed = AuthenticationFailed()
	ErrAccessDenied         = AccessDenied()
	ErrValidation           = &AppError{Code: CodeValidation, HTTPStatus: http.StatusBadRequest}
	ErrNotFound             = &AppError{Code: CodeNotFound, HTTPStatus: http.StatusNotFound}
	ErrInternal             = &AppError{Code: CodeInternal, HTTPStatus: http.StatusInternalServerError}
)

// # Identity Errors

// UserAlreadyExists creates a 409 [AppError] for a registration whose email is taken.
//
// The message includes the email; the caller supplied it, so nothing is leaked.
func UserAlreadyExists(email string) *AppError {
	return &AppError{
		Code:       CodeUserAlreadyExists,
		Message:    "User already exists with email: " + email,
		HTTPStatus: http.StatusConflict,
	}
}

// InvalidCredentials creates the 401 [AppError] returned for an unknown email
// AND for a wrong password. The two cases must stay indistinguishable.
func InvalidCredentials() *AppError {
	return &AppError{
		Code:       CodeInvalidCredentials,
		Message:    "Invalid email or password",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// AuthenticationFailed creates a generic 401 [AppError] for the security layer.
// It never echoes the underlying reason.
func AuthenticationFailed() *AppError {
	return &AppError{
		Code:       CodeAuthenticationFailed,
		Message:    "Authentication failed",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// AccessDenied creates a 403 [AppError] for an authenticated principal that
// lacks the authority required by a resource.
func AccessDenied() *AppError {
	return &AppError{
		Code:       CodeAccessDenied,
		Message:    "Access denied",
		HTTPStatus: http.StatusForbidden,
	}
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("User") // Returns "User not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited() *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    "Rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError] for failed readiness.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       CodeServiceUnavailable,
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// From converts any error into an [*AppError], falling back to [Internal].
func From(err error) *AppError {
	if ae := As(err); ae != nil {
		return ae
	}
	return Internal(err)
}
