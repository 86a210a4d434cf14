// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/models"
	"github.com/go-resty/resty/v2"
)

const (
	pathVersion        = "/api/version"
	pathLogin          = "/api/v1/auth/login"
	pathUpdatePassword = "/api/v1/auth/updatePassword"
	pathMe             = "/api/v1/users/me"
)

type httpAdminAPI struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAdminAPI constructs the REST implementation of [AdminAPI] for the
// server at cfg.HTTPAddress. A missing scheme defaults to http.
func NewHTTPAdminAPI(cfg config.ClientAdapter, logger *logger.Logger) (AdminAPI, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(cfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	return &httpAdminAPI{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAdminAPI) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAdminAPI) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [AdminAPI]. It POSTs the credentials to the login
// endpoint and keeps the token of the response body.
func (h *httpAdminAPI) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	var result models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post(pathLogin)
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return h.acceptToken(result)
}

// WhoAmI implements [AdminAPI].
func (h *httpAdminAPI) WhoAmI(ctx context.Context) (models.User, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.User{}, err
	}

	resp, err := req.Get(pathMe)
	if err != nil {
		return models.User{}, fmt.Errorf("whoami request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var envelope struct {
		Data struct {
			User models.User `json:"user"`
		} `json:"data"`
	}
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return models.User{}, fmt.Errorf("decode whoami response: %w", err)
	}

	return envelope.Data.User, nil
}

// ChangePassword implements [AdminAPI].
func (h *httpAdminAPI) ChangePassword(ctx context.Context, body models.ChangePasswordRequest) (models.User, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.User{}, err
	}

	var result models.AuthResponse
	resp, err := req.
		SetBody(body).
		SetResult(&result).
		Patch(pathUpdatePassword)
	if err != nil {
		return models.User{}, fmt.Errorf("update password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return h.acceptToken(result)
}

// Version implements [AdminAPI].
func (h *httpAdminAPI) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get(pathVersion)
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpAdminAPI) acceptToken(result models.AuthResponse) (models.User, error) {
	if result.Token == "" {
		return models.User{}, fmt.Errorf("server response carries no token")
	}

	h.SetToken(result.Token)
	h.logger.Debug().Str("user_id", result.User.UserID).Msg("session token updated")

	return result.User, nil
}

func (h *httpAdminAPI) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrMissingToken
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}
