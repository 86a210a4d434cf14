// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/Aruba-Creative/nokan-api/models"
)

// CredentialService owns user accounts and their passwords.
type CredentialService interface {
	// CreateUser validates req, hashes the password and stores the user.
	// The returned user never has PasswordChangedAt set.
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	// ChangePassword checks the current password and stores the new hash
	// together with PasswordChangedAt in one write.
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) (models.User, error)
	VerifyPassword(raw, hash string) bool
	GetUser(ctx context.Context, userID string) (models.User, error)
	ListUsers(ctx context.Context, params models.ListParams) ([]models.User, error)
	UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// RoleService manages roles and resolves their permission references.
type RoleService interface {
	CreateRole(ctx context.Context, req models.CreateRoleRequest) (models.Role, error)
	GetRole(ctx context.Context, roleID string) (models.Role, error)
	ListRoles(ctx context.Context) ([]models.Role, error)
	UpdateRole(ctx context.Context, roleID string, req models.UpdateRoleRequest) (models.Role, error)
	UpdateRolePermissions(ctx context.Context, roleID string, req models.UpdateRolePermissionsRequest) (models.Role, error)
	// ResolvePermissions returns the names of the role's permissions that
	// currently exist.
	ResolvePermissions(ctx context.Context, role models.Role) (map[string]struct{}, error)
	DeleteRole(ctx context.Context, roleID string) error
}

// PermissionService manages the flat permission catalogue.
type PermissionService interface {
	CreatePermission(ctx context.Context, req models.CreatePermissionRequest) (models.Permission, error)
	GetPermission(ctx context.Context, permissionID string) (models.Permission, error)
	ListPermissions(ctx context.Context, params models.ListParams) ([]models.Permission, error)
	UpdatePermission(ctx context.Context, permissionID string, req models.UpdatePermissionRequest) (models.Permission, error)
	DeletePermission(ctx context.Context, permissionID string) error
}

// TokenService signs and verifies session tokens.
type TokenService interface {
	Issue(ctx context.Context, userID string) (models.Token, error)
	// Verify checks signature, issuer and expiry. It does not consult the
	// store; staleness is decided by the SessionValidator.
	Verify(ctx context.Context, rawToken string) (models.Token, error)
}

// SessionValidator turns a raw bearer token into an authenticated principal.
type SessionValidator interface {
	Validate(ctx context.Context, rawToken string) (models.Principal, error)
}

// Authorizer decides whether a principal may proceed.
type Authorizer interface {
	// RequirePermission allows only when the principal holds every name.
	RequirePermission(principal models.Principal, names ...string) error
	// RequireRole allows only when the principal's role is in roles.
	RequireRole(principal models.Principal, roles ...string) error
}

// AuthService implements the signup, login and password change flows.
type AuthService interface {
	Signup(ctx context.Context, req models.CreateUserRequest) (models.User, models.Token, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	UpdatePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) (models.User, models.Token, error)
}

// BootstrapService seeds the default permission catalogue, roles and the
// first super administrator.
type BootstrapService interface {
	Seed(ctx context.Context) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
