// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/Aruba-Creative/nokan-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists administrator accounts. Every lookup ignores
// inactive (soft-deleted) users.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// CreateFirstUser inserts user only when the users table is empty and
	// returns ErrUsersAlreadyExist otherwise.
	CreateFirstUser(ctx context.Context, user models.User) (models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	// FindPrincipal returns the user with its Role and the Role's existing
	// permissions resolved in a single query.
	FindPrincipal(ctx context.Context, userID string) (models.User, error)
	ListUsers(ctx context.Context, params models.ListParams) ([]models.User, error)
	UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (models.User, error)
	// UpdatePassword stores the new hash together with the change watermark.
	UpdatePassword(ctx context.Context, userID, passwordHash string, changedAt time.Time) (models.User, error)
	DeactivateUser(ctx context.Context, userID string) error
}

// RoleRepository persists roles and their permission references.
// Roles are returned with unresolved permission references.
type RoleRepository interface {
	// CreateRole inserts the role and its permission links atomically,
	// failing with ErrUnknownPermission if any id does not exist.
	CreateRole(ctx context.Context, role models.Role) (models.Role, error)
	FindRoleByID(ctx context.Context, roleID string) (models.Role, error)
	FindRoleByName(ctx context.Context, name string) (models.Role, error)
	ListRoles(ctx context.Context) ([]models.Role, error)
	UpdateRole(ctx context.Context, roleID string, req models.UpdateRoleRequest) (models.Role, error)
	// ReplaceRolePermissions swaps the whole permission set of a role.
	ReplaceRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error
	DeleteRole(ctx context.Context, roleID string) error
	// FindRolePermissions returns the existing permissions of a role.
	FindRolePermissions(ctx context.Context, roleID string) ([]models.Permission, error)
}

// PermissionRepository persists permissions.
type PermissionRepository interface {
	CreatePermission(ctx context.Context, permission models.Permission) (models.Permission, error)
	FindPermissionByID(ctx context.Context, permissionID string) (models.Permission, error)
	FindPermissionsByIDs(ctx context.Context, permissionIDs []string) ([]models.Permission, error)
	FindPermissionsByNames(ctx context.Context, names []string) ([]models.Permission, error)
	ListPermissions(ctx context.Context, params models.ListParams) ([]models.Permission, error)
	UpdatePermission(ctx context.Context, permissionID string, req models.UpdatePermissionRequest) (models.Permission, error)
	DeletePermission(ctx context.Context, permissionID string) error
	CountPermissions(ctx context.Context) (int64, error)
}

// IDGenerator produces identifiers for new records.
type IDGenerator interface {
	Generate() string
}
