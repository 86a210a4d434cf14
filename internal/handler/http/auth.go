// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/metrics"
	"github.com/Aruba-Creative/nokan-api/internal/service"
	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/models"
)

// tokenCookieName is the cookie the session token is mirrored to.
const tokenCookieName = "jwt"

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Signup(r.Context(), req)
	if err != nil {
		h.metrics.RecordSignup(metrics.ResultFailure)
		writeError(w, r, err)
		return
	}
	h.metrics.RecordSignup(metrics.ResultSuccess)

	h.sendToken(w, r, user, token, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		h.metrics.RecordLogin(metrics.ResultFailure)
		writeError(w, r, err)
		return
	}
	h.metrics.RecordLogin(metrics.ResultSuccess)

	log.Debug().Str("user_id", user.UserID).Msg("user successfully logged in")
	h.sendToken(w, r, user, token, http.StatusOK)
}

// updatePassword changes the caller's password and returns a fresh token;
// every token issued before the change stops working.
func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrNotLoggedIn)
		return
	}

	var req models.ChangePasswordRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.UpdatePassword(r.Context(), principal.ID(), req)
	if err != nil {
		h.metrics.RecordPasswordChange(metrics.ResultFailure)
		writeError(w, r, err)
		return
	}
	h.metrics.RecordPasswordChange(metrics.ResultSuccess)

	h.sendToken(w, r, user, token, http.StatusOK)
}

// sendToken writes the auth envelope and mirrors the token into an HttpOnly
// cookie expiring with it.
func (h *Handler) sendToken(w http.ResponseWriter, r *http.Request, user models.User, token models.Token, status int) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token.String(),
		Path:     "/",
		Expires:  token.ExpiresTime(),
		HttpOnly: true,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteStrictMode,
	})

	utils.WriteJSON(w, models.AuthResponse{
		Status: models.StatusSuccess,
		Token:  token.String(),
		User:   user,
	}, status)
}
