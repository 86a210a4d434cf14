// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the nokan-api admin REST API
// used by the adminctl tool.
//
// [AdminAPI] hides the transport: callers send model values and get back
// sentinel errors (e.g. [ErrUnauthorized] for 401, [ErrTooManyRequests] for
// 429) that can be checked with [errors.Is]. The server's fail message is
// kept in the wrapped error text.
package adapter

import (
	"context"

	"github.com/Aruba-Creative/nokan-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/admin_api_mock.go -package=mock

// AdminAPI is the subset of the admin API driven by adminctl.
type AdminAPI interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" when none is set.
	Token() string

	// Login authenticates with username and password. On success the issued
	// token is stored via SetToken and the user is returned.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// WhoAmI returns the user of the stored token together with its role.
	WhoAmI(ctx context.Context) (models.User, error)

	// ChangePassword changes the password of the current user. The server
	// answers with a fresh token, which replaces the stored one: every token
	// issued before the change stops working.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.User, error)

	// Version returns the server version.
	Version(ctx context.Context) (string, error)
}
