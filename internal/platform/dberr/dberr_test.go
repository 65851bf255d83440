// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-iam/internal/platform/apperr"
	"github.com/taibuivan/yomira-iam/internal/platform/dberr"
)

func TestIsUniqueViolation(t *testing.T) {
	violation := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_active_key"}
	wrapped := fmt.Errorf("insert: %w", violation)

	assert.True(t, dberr.IsUniqueViolation(wrapped, ""))
	assert.True(t, dberr.IsUniqueViolation(wrapped, "users_email_active_key"))
	assert.False(t, dberr.IsUniqueViolation(wrapped, "users_pkey"))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, ""))
	assert.False(t, dberr.IsUniqueViolation(errors.New("plain"), ""))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	notFound := dberr.Wrap(pgx.ErrNoRows, "find_user")
	assert.ErrorIs(t, notFound, apperr.ErrNotFound)

	cause := errors.New("connection reset")
	internal := dberr.Wrap(cause, "find_user")
	assert.ErrorIs(t, internal, apperr.ErrInternal)
	assert.ErrorIs(t, internal, cause)
	assert.NotContains(t, internal.Error(), "connection reset")
}
