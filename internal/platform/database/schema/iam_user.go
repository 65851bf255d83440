// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the IAM database so queries
// never repeat raw identifiers.
package schema

import "strings"

// IAMUserTable represents the 'iam.users' table
type IAMUserTable struct {
	Table                 string
	ID                    string
	Email                 string
	PasswordHash          string
	FirstName             string
	LastName              string
	Role                  string
	Enabled               string
	AccountNonLocked      string
	AccountNonExpired     string
	CredentialsNonExpired string
	CreatedAt             string
	UpdatedAt             string
	CreatedBy             string
	UpdatedBy             string
	Version               string
	Deleted               string

	// EmailActiveKey is the partial unique index on email among live rows.
	EmailActiveKey string
}

// IAMUser is the schema definition for iam.users
var IAMUser = IAMUserTable{
	Table:                 "iam.users",
	ID:                    "id",
	Email:                 "email",
	PasswordHash:          "password_hash",
	FirstName:             "first_name",
	LastName:              "last_name",
	Role:                  "role",
	Enabled:               "enabled",
	AccountNonLocked:      "account_non_locked",
	AccountNonExpired:     "account_non_expired",
	CredentialsNonExpired: "credentials_non_expired",
	CreatedAt:             "created_at",
	UpdatedAt:             "updated_at",
	CreatedBy:             "created_by",
	UpdatedBy:             "updated_by",
	Version:               "version",
	Deleted:               "deleted",
	EmailActiveKey:        "users_email_active_key",
}

// Columns returns the read projection in scan order.
func (t IAMUserTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.PasswordHash, t.FirstName, t.LastName, t.Role,
		t.Enabled, t.AccountNonLocked, t.AccountNonExpired, t.CredentialsNonExpired,
		t.CreatedAt, t.UpdatedAt, t.CreatedBy, t.UpdatedBy, t.Version,
	}
}

// InsertColumns returns the columns written on insert. Timestamps, version
// and the deleted flag come from column defaults.
func (t IAMUserTable) InsertColumns() []string {
	return []string{
		t.ID, t.Email, t.PasswordHash, t.FirstName, t.LastName, t.Role,
		t.Enabled, t.AccountNonLocked, t.AccountNonExpired, t.CredentialsNonExpired,
		t.CreatedBy, t.UpdatedBy,
	}
}

// Projection joins columns into a SELECT list.
func Projection(columns []string) string {
	return strings.Join(columns, ", ")
}
