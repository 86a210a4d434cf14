// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	"github.com/Aruba-Creative/nokan-api/models"
	sq "github.com/Masterminds/squirrel"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	userColumns = `id, name, username, password_hash, role_id, blocked, active, password_changed_at, created_by, created_at, updated_at`

	createUser = `INSERT INTO users (id, name, username, password_hash, role_id, created_by)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING ` + userColumns + `;`

	// firstUserLock serialises concurrent bootstrap signups so that the
	// NOT EXISTS check below observes a committed first user.
	firstUserLock = `SELECT pg_advisory_xact_lock(hashtext('users:first'));`

	createFirstUser = `INSERT INTO users (id, name, username, password_hash, role_id, created_by)
    SELECT $1::text, $2::text, $3::text, $4::text, $5::text, $6::text
    WHERE NOT EXISTS (SELECT 1 FROM users)
    RETURNING ` + userColumns + `;`

	countUsers = `SELECT COUNT(*) FROM users;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1 AND active;`

	findUserByUsername = `SELECT ` + userColumns + `
    FROM users
    WHERE username = $1 AND active;`

	// findPrincipal loads a user, its role and the role's permissions in one
	// round trip. Dangling role or permission references yield NULL columns.
	findPrincipal = `SELECT u.id, u.name, u.username, u.password_hash, u.role_id, u.blocked, u.active,
        u.password_changed_at, u.created_by, u.created_at, u.updated_at,
        r.id, r.name, r.description, r.created_at, r.updated_at,
        p.id, p.name, p.description, p.created_at, p.updated_at
    FROM users u
    LEFT JOIN roles r ON r.id = u.role_id
    LEFT JOIN role_permissions rp ON rp.role_id = r.id
    LEFT JOIN permissions p ON p.id = rp.permission_id
    WHERE u.id = $1 AND u.active
    ORDER BY p.name;`

	updatePassword = `UPDATE users
    SET password_hash = $2, password_changed_at = $3, updated_at = NOW()
    WHERE id = $1 AND active
    RETURNING ` + userColumns + `;`

	deactivateUser = `UPDATE users
    SET active = FALSE, updated_at = NOW()
    WHERE id = $1 AND active;`

	roleColumns = `id, name, description, created_at, updated_at`

	createRole = `INSERT INTO roles (id, name, description)
    VALUES ($1, $2, $3)
    RETURNING ` + roleColumns + `;`

	findRoleByID = `SELECT ` + roleColumns + ` FROM roles WHERE id = $1;`

	findRoleByName = `SELECT ` + roleColumns + ` FROM roles WHERE name = $1;`

	listRoles = `SELECT ` + roleColumns + ` FROM roles ORDER BY name;`

	lockRole = `SELECT id FROM roles WHERE id = $1 FOR UPDATE;`

	touchRole = `UPDATE roles SET updated_at = NOW() WHERE id = $1;`

	deleteRolePermissions = `DELETE FROM role_permissions WHERE role_id = $1;`

	deleteRole = `DELETE FROM roles WHERE id = $1;`

	findRolePermissions = `SELECT p.id, p.name, p.description, p.created_at, p.updated_at
    FROM role_permissions rp
    JOIN permissions p ON p.id = rp.permission_id
    WHERE rp.role_id = $1
    ORDER BY p.name;`

	permissionColumns = `id, name, description, created_at, updated_at`

	createPermission = `INSERT INTO permissions (id, name, description)
    VALUES ($1, $2, $3)
    RETURNING ` + permissionColumns + `;`

	findPermissionByID = `SELECT ` + permissionColumns + ` FROM permissions WHERE id = $1;`

	deletePermission = `DELETE FROM permissions WHERE id = $1;`

	countPermissions = `SELECT COUNT(*) FROM permissions;`
)

// buildListUsersQuery pages over active users ordered by creation time.
func buildListUsersQuery(params models.ListParams) (string, []any, error) {
	builder := psql.Select(userColumns).
		From("users").
		Where(sq.Eq{"active": true}).
		OrderBy("created_at", "id")

	builder = paginate(builder, params)

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateUserQuery builds a partial UPDATE of the non-nil fields of req.
// The username must already be normalized.
func buildUpdateUserQuery(userID string, req models.UpdateUserRequest) (string, []any, error) {
	builder := psql.Update("users").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		Where(sq.Eq{"active": true}).
		Suffix("RETURNING " + userColumns)

	if req.Name != nil {
		builder = builder.Set("name", *req.Name)
	}
	if req.Username != nil {
		builder = builder.Set("username", *req.Username)
	}
	if req.RoleID != nil {
		builder = builder.Set("role_id", *req.RoleID)
	}
	if req.Blocked != nil {
		builder = builder.Set("blocked", *req.Blocked)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildLockPermissionsQuery selects the given permission ids with a shared
// row lock, so that they cannot be deleted until the transaction ends.
func buildLockPermissionsQuery(permissionIDs []string) (string, []any, error) {
	query, args, err := psql.Select("id").
		From("permissions").
		Where(sq.Eq{"id": permissionIDs}).
		Suffix("FOR SHARE").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildInsertRolePermissionsQuery inserts one link row per permission id.
func buildInsertRolePermissionsQuery(roleID string, permissionIDs []string) (string, []any, error) {
	builder := psql.Insert("role_permissions").Columns("role_id", "permission_id")
	for _, id := range permissionIDs {
		builder = builder.Values(roleID, id)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildRolePermissionIDsQuery returns the raw permission references of the
// given roles, dangling ones included.
func buildRolePermissionIDsQuery(roleIDs []string) (string, []any, error) {
	query, args, err := psql.Select("role_id", "permission_id").
		From("role_permissions").
		Where(sq.Eq{"role_id": roleIDs}).
		OrderBy("role_id", "permission_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateRoleQuery builds a partial UPDATE of a role's name and description.
func buildUpdateRoleQuery(roleID string, req models.UpdateRoleRequest) (string, []any, error) {
	builder := psql.Update("roles").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": roleID}).
		Suffix("RETURNING " + roleColumns)

	if req.Name != nil {
		builder = builder.Set("name", *req.Name)
	}
	if req.Description != nil {
		builder = builder.Set("description", *req.Description)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildFindPermissionsQuery selects permissions whose column matches one of values.
func buildFindPermissionsQuery(column string, values []string) (string, []any, error) {
	query, args, err := psql.Select(permissionColumns).
		From("permissions").
		Where(sq.Eq{column: values}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildListPermissionsQuery pages over permissions ordered by name.
func buildListPermissionsQuery(params models.ListParams) (string, []any, error) {
	builder := paginate(psql.Select(permissionColumns).From("permissions").OrderBy("name"), params)

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdatePermissionQuery builds a partial UPDATE of a permission.
func buildUpdatePermissionQuery(permissionID string, req models.UpdatePermissionRequest) (string, []any, error) {
	builder := psql.Update("permissions").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": permissionID}).
		Suffix("RETURNING " + permissionColumns)

	if req.Name != nil {
		builder = builder.Set("name", *req.Name)
	}
	if req.Description != nil {
		builder = builder.Set("description", *req.Description)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func paginate(builder sq.SelectBuilder, params models.ListParams) sq.SelectBuilder {
	if params.Limit > 0 {
		builder = builder.Limit(params.Limit).Offset(params.Offset())
	}
	return builder
}
