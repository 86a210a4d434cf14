// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/Aruba-Creative/nokan-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/api/version", h.getServerVersion)
	if h.metricsHandler != nil {
		router.Method("GET", "/metrics", h.metricsHandler)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", h.authRoutes)

		r.Route("/users", func(r chi.Router) {
			h.authRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(h.session)

				r.Get("/me", h.getMe)
				r.With(h.requirePermission("user:read")).Get("/", h.listUsers)
				r.With(h.requireRole(service.SuperAdminRole)).Post("/", h.createUser)
				r.With(h.requirePermission("user:read")).Get("/{id}", h.getUser)
				r.With(h.requirePermission("user:update")).Patch("/{id}", h.updateUser)
				r.With(h.requireRole(service.SuperAdminRole)).Delete("/{id}", h.deleteUser)
			})
		})

		r.Route("/roles", func(r chi.Router) {
			r.Use(h.session)

			r.With(h.requirePermission("role:read")).Get("/", h.listRoles)
			r.With(h.requirePermission("role:create")).Post("/", h.createRole)
			r.With(h.requirePermission("role:read")).Get("/{id}", h.getRole)
			r.With(h.requirePermission("role:update")).Patch("/{id}", h.updateRole)
			r.With(h.requirePermission("role:delete")).Delete("/{id}", h.deleteRole)
			r.With(h.requirePermission("role:update")).Patch("/{id}/permissions", h.updateRolePermissions)
		})

		r.Route("/permissions", func(r chi.Router) {
			r.Use(h.session)

			r.With(h.requirePermission("permission:read")).Get("/", h.listPermissions)
			r.With(h.requirePermission("permission:create")).Post("/", h.createPermission)
			r.With(h.requirePermission("permission:read")).Get("/{id}", h.getPermission)
			r.With(h.requirePermission("permission:update")).Patch("/{id}", h.updatePermission)
			r.With(h.requirePermission("permission:delete")).Delete("/{id}", h.deletePermission)
		})
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// authRoutes registers signup, login and password change. They are mounted
// under both /auth and /users.
func (h *Handler) authRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		if h.authLimiter != nil {
			r.Use(h.authLimiter.Middleware(h.metrics.RecordRateLimited))
		}
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
	})

	r.With(h.session).Patch("/updatePassword", h.updatePassword)
}
