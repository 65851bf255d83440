// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yomira-iam/internal/platform/apperr"
	"github.com/taibuivan/yomira-iam/internal/platform/database/schema"
	"github.com/taibuivan/yomira-iam/internal/platform/dberr"
	"github.com/taibuivan/yomira-iam/internal/platform/sec"
	"github.com/taibuivan/yomira-iam/pkg/uuid"
)

// Queries are assembled once from the schema definition.
var (
	findUserByEmailQuery = fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND NOT %s`,
		schema.Projection(schema.IAMUser.Columns()), schema.IAMUser.Table,
		schema.IAMUser.Email, schema.IAMUser.Deleted,
	)

	findUserByIDQuery = fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND NOT %s`,
		schema.Projection(schema.IAMUser.Columns()), schema.IAMUser.Table,
		schema.IAMUser.ID, schema.IAMUser.Deleted,
	)

	existsUserByEmailQuery = fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND NOT %s)`,
		schema.IAMUser.Table, schema.IAMUser.Email, schema.IAMUser.Deleted,
	)

	insertUserQuery = fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		RETURNING %s, %s, %s`,
		schema.IAMUser.Table, schema.Projection(schema.IAMUser.InsertColumns()),
		placeholders(len(schema.IAMUser.InsertColumns())),
		schema.IAMUser.CreatedAt, schema.IAMUser.UpdatedAt, schema.IAMUser.Version,
	)
)

// placeholders renders "$1, $2, ... $n".
func placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(marks, ", ")
}

// dbtx is the subset of [*pgxpool.Pool] (and pgx.Tx) the store needs.
type dbtx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// # User Repository

// PostgresUserStore implements [UserStore] on the iam.users table.
type PostgresUserStore struct {
	db dbtx
}

// NewPostgresUserStore creates a store backed by a pgx pool or transaction.
func NewPostgresUserStore(db dbtx) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

/*
FindByEmail retrieves a live user by exact email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: ErrUserNotFound or database errors
*/
func (repository *PostgresUserStore) FindByEmail(context context.Context, email string) (*User, error) {
	user, err := scanUser(repository.db.QueryRow(context, findUserByEmailQuery, email))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres_user_store_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a live user by primary key.

Description: Malformed IDs are reported as not found without a round trip.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: ErrUserNotFound or database errors
*/
func (repository *PostgresUserStore) FindByID(context context.Context, id string) (*User, error) {
	if !uuid.IsValid(id) {
		return nil, ErrUserNotFound
	}

	user, err := scanUser(repository.db.QueryRow(context, findUserByIDQuery, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres_user_store_find_by_id_failed: %w", err)
	}

	return user, nil
}

// ExistsByEmail reports whether a live account uses the email.
func (repository *PostgresUserStore) ExistsByEmail(context context.Context, email string) (bool, error) {
	var exists bool
	if err := repository.db.QueryRow(context, existsUserByEmailQuery, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_store_exists_by_email_failed: %w", err)
	}

	return exists, nil
}

/*
Save inserts a new user record.

Description: The partial unique index on email is the final arbiter for
concurrent registrations. A violation is reported as UserAlreadyExists.

Parameters:
  - context: context.Context
  - user: *User (ID, timestamps and version are assigned here)

Returns:
  - *User: The persisted entity
  - error: apperr.UserAlreadyExists or database errors
*/
func (repository *PostgresUserStore) Save(context context.Context, user *User) (*User, error) {
	if user.ID == "" {
		user.ID = uuid.New()
	}

	err := repository.db.QueryRow(context, insertUserQuery,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		string(user.Role),
		user.Enabled,
		user.AccountNonLocked,
		user.AccountNonExpired,
		user.CredentialsNonExpired,
		user.CreatedBy,
		user.UpdatedBy,
	).Scan(&user.CreatedAt, &user.UpdatedAt, &user.Version)

	if err != nil {
		if dberr.IsUniqueViolation(err, schema.IAMUser.EmailActiveKey) {
			return nil, apperr.UserAlreadyExists(user.Email)
		}
		return nil, fmt.Errorf("postgres_user_store_save_failed: %w", err)
	}

	return user, nil
}

// scanUser hydrates a [User] from a row selecting [schema.IAMUserTable.Columns].
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var role string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&role,
		&user.Enabled,
		&user.AccountNonLocked,
		&user.AccountNonExpired,
		&user.CredentialsNonExpired,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.CreatedBy,
		&user.UpdatedBy,
		&user.Version,
	)
	if err != nil {
		return nil, err
	}

	user.Role = sec.UserRole(role)
	return user, nil
}
