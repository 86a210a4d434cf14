// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/service"
	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/models"
)

// requirePermission lets the request through only when the session principal
// holds every one of names. It must run after session.
func (h *Handler) requirePermission(names ...string) func(http.Handler) http.Handler {
	return h.guard("permission", names, func(principal models.Principal, required ...string) error {
		return h.services.Authorizer.RequirePermission(principal, required...)
	})
}

// requireRole lets the request through only when the principal's role is one
// of roles. It must run after session.
func (h *Handler) requireRole(roles ...string) func(http.Handler) http.Handler {
	return h.guard("role", roles, func(principal models.Principal, required ...string) error {
		return h.services.Authorizer.RequireRole(principal, required...)
	})
}

func (h *Handler) guard(kind string, required []string, check func(principal models.Principal, required ...string) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := utils.GetPrincipalFromContext(r.Context())
			if !ok {
				writeError(w, r, service.ErrNotLoggedIn)
				return
			}

			if err := check(principal, required...); err != nil {
				h.metrics.RecordAuthorizationDenied(kind)
				logger.FromRequest(r).Info().
					Str("func", "Handler.guard").
					Str(kind, strings.Join(required, ",")).
					Msg("access denied")
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
