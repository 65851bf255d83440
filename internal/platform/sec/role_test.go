// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-iam/internal/platform/sec"
)

func TestUserRole_Authority(t *testing.T) {
	assert.Equal(t, "ROLE_ADMIN", sec.RoleAdmin.Authority())
	assert.Equal(t, "ROLE_USER", sec.RoleUser.Authority())
	assert.Equal(t, []string{"ROLE_USER"}, sec.RoleUser.Authorities())
	assert.Nil(t, sec.UserRole("GUEST").Authorities())
}

func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{sec.RoleAdmin, sec.RoleAdmin, true},
		{sec.RoleAdmin, sec.RoleUser, true},
		{sec.RoleUser, sec.RoleUser, true},
		{sec.RoleUser, sec.RoleAdmin, false},
		{sec.UserRole(""), sec.RoleUser, false},
		{sec.UserRole("ROOT"), sec.UserRole("ROOT"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"_"+string(tt.target), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

func TestParseRole(t *testing.T) {
	role, err := sec.ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, role)

	_, err = sec.ParseRole("admin")
	assert.Error(t, err)
}

func TestPrincipal_HasAuthority(t *testing.T) {
	principal := &sec.Principal{Email: "alice@x.com", Role: sec.RoleUser, Authorities: sec.RoleUser.Authorities()}

	assert.True(t, principal.HasAuthority("ROLE_USER"))
	assert.False(t, principal.HasAuthority("ROLE_ADMIN"))

	var nilPrincipal *sec.Principal
	assert.False(t, nilPrincipal.HasAuthority("ROLE_USER"))
}
