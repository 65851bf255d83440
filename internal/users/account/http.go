// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-iam/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-iam/internal/platform/request"
	"github.com/taibuivan/yomira-iam/internal/platform/respond"
	"github.com/taibuivan/yomira-iam/internal/platform/sec"
	"github.com/taibuivan/yomira-iam/internal/platform/validate"
)

// Handler implements the HTTP layer for account reads.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account endpoints.
//
// # Endpoints
//   - GET /me      : Any authenticated user.
//   - GET /{email} : ADMIN only.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireAuth).Get("/me", handler.getMe)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Get("/{email}", handler.getByEmail)

	return router
}

/*
GET /api/v1/users/me.

Response:
  - 200: Profile
  - 401: AUTHENTICATION_FAILED
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetOwnProfile(request.Context(), principal)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
GET /api/v1/users/{email}.

Response:
  - 200: Profile
  - 400: VALIDATION_ERROR
  - 401: AUTHENTICATION_FAILED
  - 403: ACCESS_DENIED
  - 404: NOT_FOUND
*/
func (handler *Handler) getByEmail(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, "email")

	if err := (&validate.Validator{}).Email("email", email).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.FindByEmail(request.Context(), email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
