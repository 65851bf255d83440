// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-iam/internal/platform/apperr"
	"github.com/taibuivan/yomira-iam/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-iam/internal/platform/middleware"
	"github.com/taibuivan/yomira-iam/internal/platform/sec"
)

func requestAs(principal *sec.Principal) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/api/v1/users/alice@x.com", nil)
	if principal != nil {
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
	}
	return request
}

func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(&probe{})

	anonymous := httptest.NewRecorder()
	handler.ServeHTTP(anonymous, requestAs(nil))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)
	assert.Contains(t, anonymous.Body.String(), apperr.CodeAuthenticationFailed)

	authenticated := httptest.NewRecorder()
	handler.ServeHTTP(authenticated, requestAs(alice()))
	assert.Equal(t, http.StatusNoContent, authenticated.Code)
}

func TestRequireRole(t *testing.T) {
	admin := &sec.Principal{UserID: "u-admin", Email: "admin@x.com", Role: sec.RoleAdmin}

	tests := []struct {
		name      string
		principal *sec.Principal
		status    int
		code      string
	}{
		{"anonymous", nil, http.StatusUnauthorized, apperr.CodeAuthenticationFailed},
		{"user_below_admin", alice(), http.StatusForbidden, apperr.CodeAccessDenied},
		{"admin", admin, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			middleware.RequireRole(sec.RoleAdmin)(&probe{}).ServeHTTP(recorder, requestAs(tt.principal))

			assert.Equal(t, tt.status, recorder.Code)
			if tt.code != "" {
				assert.Contains(t, recorder.Body.String(), tt.code)
			}
		})
	}
}
