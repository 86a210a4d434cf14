// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/service"
	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/rs/zerolog"
)

// session authenticates the request.
//
// The bearer token of the "Authorization" header is handed to the session
// validator, which re-reads the user, its role and the role's permissions.
// On success the resulting principal is stored in the request context under
// [utils.PrincipalCtxKey] and the request logger gains a user_id field. A
// missing or malformed header is treated like an absent token.
func (h *Handler) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawToken, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			rawToken = ""
		}

		principal, err := h.services.SessionValidator.Validate(r.Context(), rawToken)
		if err != nil {
			h.metrics.RecordSession(sessionOutcome(err))
			writeError(w, r, err)
			return
		}
		h.metrics.RecordSession("")

		l := logger.FromRequest(r).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("user_id", principal.ID())
		})

		ctx := utils.WithPrincipal(l.WithContext(r.Context()), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionOutcome labels a rejected session for metrics.
func sessionOutcome(err error) string {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		return "no_token"
	case errors.Is(err, service.ErrInvalidSession):
		return "invalid_token"
	case errors.Is(err, service.ErrUserNoLongerExists):
		return "user_gone"
	case errors.Is(err, service.ErrUserBlocked):
		return "blocked"
	case errors.Is(err, service.ErrPasswordChanged):
		return "password_changed"
	default:
		return "error"
	}
}
