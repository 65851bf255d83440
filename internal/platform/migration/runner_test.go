// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-iam/internal/platform/migration"
)

func TestPgx5URL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://iam:pw@db:5432/iam?sslmode=disable", "pgx5://iam:pw@db:5432/iam?sslmode=disable"},
		{"postgresql://iam@db/iam", "pgx5://iam@db/iam"},
		{"pgx5://iam@db/iam", "pgx5://iam@db/iam"},
		{"host=db user=iam", "host=db user=iam"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, migration.Pgx5URL(tt.in))
	}
}
