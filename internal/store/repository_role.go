// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/models"
	"github.com/jackc/pgerrcode"
)

// roleRepository is the PostgreSQL-backed implementation of [RoleRepository].
// Roles are read with unresolved permission references; resolving them is
// left to the caller.
type roleRepository struct {
	logger *logger.Logger
	db     *DB
	ids    IDGenerator
}

// NewRoleRepository constructs a [RoleRepository] backed by db.
func NewRoleRepository(db *DB, ids IDGenerator, logger *logger.Logger) RoleRepository {
	logger.Debug().Msg("creating role repository")
	return &roleRepository{
		db:     db,
		ids:    ids,
		logger: logger,
	}
}

// CreateRole inserts the role and links it to its permissions inside a single
// transaction. Referenced permissions are share-locked first so that none of
// them can disappear between the existence check and the commit.
//
// Error handling:
//   - a permission id that does not exist → [ErrUnknownPermission].
//   - unique_violation on name → [ErrRoleNameAlreadyExists].
func (r *roleRepository) CreateRole(ctx context.Context, role models.Role) (models.Role, error) {
	log := logger.FromContext(ctx)

	permissionIDs := uniqueIDs(role.PermissionIDs())

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "roleRepository.CreateRole").Msg("failed to begin transaction")
		return models.Role{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer rollback(tx)

	if err = lockPermissions(ctx, tx, permissionIDs); err != nil {
		log.Err(err).Str("func", "roleRepository.CreateRole").Str("name", role.Name).Msg("failed to lock permissions")
		return models.Role{}, err
	}

	created, err := scanRoleRow(tx.QueryRowContext(ctx, createRole, r.ids.Generate(), role.Name, role.Description))
	if err != nil {
		log.Err(err).Str("func", "roleRepository.CreateRole").Str("name", role.Name).Msg("error creating role")
		return models.Role{}, err
	}

	if err = insertRolePermissions(ctx, tx, created.RoleID, permissionIDs); err != nil {
		log.Err(err).Str("func", "roleRepository.CreateRole").Str("role_id", created.RoleID).Msg("failed to link permissions")
		return models.Role{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "roleRepository.CreateRole").Msg("failed to commit transaction")
		return models.Role{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	created.Permissions = unresolvedRefs(permissionIDs)
	return created, nil
}

// FindRoleByID returns the role with its raw permission references.
func (r *roleRepository) FindRoleByID(ctx context.Context, roleID string) (models.Role, error) {
	return r.findRole(ctx, "roleRepository.FindRoleByID", findRoleByID, roleID)
}

// FindRoleByName returns the role with its raw permission references.
func (r *roleRepository) FindRoleByName(ctx context.Context, name string) (models.Role, error) {
	return r.findRole(ctx, "roleRepository.FindRoleByName", findRoleByName, name)
}

func (r *roleRepository) findRole(ctx context.Context, funcName, query string, arg string) (models.Role, error) {
	log := logger.FromContext(ctx)

	role, err := scanRoleRow(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if !errors.Is(err, ErrRoleNotFound) {
			log.Err(err).Str("func", funcName).Msg("error finding role")
		}
		return models.Role{}, err
	}

	refs, err := r.permissionRefs(ctx, []string{role.RoleID})
	if err != nil {
		log.Err(err).Str("func", funcName).Str("role_id", role.RoleID).Msg("error loading role permissions")
		return models.Role{}, err
	}

	role.Permissions = refs[role.RoleID]
	if role.Permissions == nil {
		role.Permissions = []models.PermissionRef{}
	}
	return role, nil
}

// ListRoles returns every role ordered by name.
func (r *roleRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listRoles)
	if err != nil {
		log.Err(err).Str("func", "roleRepository.ListRoles").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	roles := make([]models.Role, 0)
	for rows.Next() {
		role, scanErr := scanRole(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "roleRepository.ListRoles").Msg("failed to scan role row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		roles = append(roles, role)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "roleRepository.ListRoles").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if len(roles) == 0 {
		return roles, nil
	}

	roleIDs := make([]string, 0, len(roles))
	for _, role := range roles {
		roleIDs = append(roleIDs, role.RoleID)
	}

	refs, err := r.permissionRefs(ctx, roleIDs)
	if err != nil {
		log.Err(err).Str("func", "roleRepository.ListRoles").Msg("error loading role permissions")
		return nil, err
	}

	for i := range roles {
		roles[i].Permissions = refs[roles[i].RoleID]
		if roles[i].Permissions == nil {
			roles[i].Permissions = []models.PermissionRef{}
		}
	}

	return roles, nil
}

// UpdateRole applies a partial update of name and description.
func (r *roleRepository) UpdateRole(ctx context.Context, roleID string, req models.UpdateRoleRequest) (models.Role, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateRoleQuery(roleID, req)
	if err != nil {
		log.Err(err).Str("func", "roleRepository.UpdateRole").Msg("failed to create query")
		return models.Role{}, err
	}

	role, err := scanRoleRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, ErrRoleNotFound) {
			log.Err(err).Str("func", "roleRepository.UpdateRole").Str("role_id", roleID).Msg("error updating role")
		}
		return models.Role{}, err
	}

	refs, err := r.permissionRefs(ctx, []string{role.RoleID})
	if err != nil {
		log.Err(err).Str("func", "roleRepository.UpdateRole").Str("role_id", roleID).Msg("error loading role permissions")
		return models.Role{}, err
	}

	role.Permissions = refs[role.RoleID]
	if role.Permissions == nil {
		role.Permissions = []models.PermissionRef{}
	}
	return role, nil
}

// ReplaceRolePermissions replaces the permission links of a role. The role
// row is locked for update so concurrent replacements are applied one after
// the other rather than interleaved.
func (r *roleRepository) ReplaceRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	log := logger.FromContext(ctx)

	permissionIDs = uniqueIDs(permissionIDs)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "roleRepository.ReplaceRolePermissions").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer rollback(tx)

	var lockedID string
	err = tx.QueryRowContext(ctx, lockRole, roleID).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoleNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "roleRepository.ReplaceRolePermissions").Str("role_id", roleID).Msg("failed to lock role")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = lockPermissions(ctx, tx, permissionIDs); err != nil {
		log.Err(err).Str("func", "roleRepository.ReplaceRolePermissions").Str("role_id", roleID).Msg("failed to lock permissions")
		return err
	}

	if _, err = tx.ExecContext(ctx, deleteRolePermissions, roleID); err != nil {
		log.Err(err).Str("func", "roleRepository.ReplaceRolePermissions").Str("role_id", roleID).Msg("failed to unlink permissions")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = insertRolePermissions(ctx, tx, roleID, permissionIDs); err != nil {
		log.Err(err).Str("func", "roleRepository.ReplaceRolePermissions").Str("role_id", roleID).Msg("failed to link permissions")
		return err
	}

	if _, err = tx.ExecContext(ctx, touchRole, roleID); err != nil {
		log.Err(err).Str("func", "roleRepository.ReplaceRolePermissions").Str("role_id", roleID).Msg("failed to touch role")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "roleRepository.ReplaceRolePermissions").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// DeleteRole removes the role and, by cascade, its permission links. Users
// still referencing the role keep the dangling id and lose every permission.
func (r *roleRepository) DeleteRole(ctx context.Context, roleID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteRole, roleID)
	if err != nil {
		log.Err(err).Str("func", "roleRepository.DeleteRole").Str("role_id", roleID).Msg("failed to execute query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrRoleNotFound
	}

	return nil
}

// FindRolePermissions returns the permissions of a role that still exist.
func (r *roleRepository) FindRolePermissions(ctx context.Context, roleID string) ([]models.Permission, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findRolePermissions, roleID)
	if err != nil {
		log.Err(err).Str("func", "roleRepository.FindRolePermissions").Str("role_id", roleID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	permissions, err := scanPermissions(rows)
	if err != nil {
		log.Err(err).Str("func", "roleRepository.FindRolePermissions").Str("role_id", roleID).Msg("failed to scan permissions")
		return nil, err
	}

	return permissions, nil
}

// permissionRefs loads the raw permission references of the given roles,
// keyed by role id.
func (r *roleRepository) permissionRefs(ctx context.Context, roleIDs []string) (map[string][]models.PermissionRef, error) {
	query, args, err := buildRolePermissionIDsQuery(roleIDs)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	refs := make(map[string][]models.PermissionRef, len(roleIDs))
	for rows.Next() {
		var roleID, permissionID string
		if err = rows.Scan(&roleID, &permissionID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		refs[roleID] = append(refs[roleID], models.UnresolvedPermission(permissionID))
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return refs, nil
}

// lockPermissions share-locks the given permissions and fails with
// [ErrUnknownPermission] when any of them is missing. ids must be unique.
func lockPermissions(ctx context.Context, tx *sql.Tx, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildLockPermissionsQuery(ids)
	if err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		found++
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if found != len(ids) {
		return ErrUnknownPermission
	}
	return nil
}

func insertRolePermissions(ctx context.Context, tx *sql.Tx, roleID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildInsertRolePermissionsQuery(roleID, ids)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func scanRoleRow(row *sql.Row) (models.Role, error) {
	if err := row.Err(); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Role{}, ErrRoleNameAlreadyExists
		}
		return models.Role{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	role, err := scanRole(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Role{}, ErrRoleNotFound
	case postgresError(err) == pgerrcode.UniqueViolation:
		return models.Role{}, ErrRoleNameAlreadyExists
	case postgresError(err) != "":
		return models.Role{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	case err != nil:
		return models.Role{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return role, nil
}

func scanRole(row rowScanner) (models.Role, error) {
	var role models.Role
	err := row.Scan(&role.RoleID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	return role, err
}

func unresolvedRefs(ids []string) []models.PermissionRef {
	refs := make([]models.PermissionRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, models.UnresolvedPermission(id))
	}
	return refs
}

// uniqueIDs drops duplicates while keeping the first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
