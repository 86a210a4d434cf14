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

type permissionRepository struct {
	logger *logger.Logger
	db     *DB
	ids    IDGenerator
}

// NewPermissionRepository constructs a [PermissionRepository] backed by db.
func NewPermissionRepository(db *DB, ids IDGenerator, logger *logger.Logger) PermissionRepository {
	logger.Debug().Msg("creating permission repository")
	return &permissionRepository{
		db:     db,
		ids:    ids,
		logger: logger,
	}
}

func (r *permissionRepository) CreatePermission(ctx context.Context, permission models.Permission) (models.Permission, error) {
	created, err := scanPermissionRow(r.db.QueryRowContext(ctx, createPermission, r.ids.Generate(), permission.Name, permission.Description))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "permissionRepository.CreatePermission").Str("name", permission.Name).Msg("error creating permission")
		return models.Permission{}, err
	}
	return created, nil
}

func (r *permissionRepository) FindPermissionByID(ctx context.Context, permissionID string) (models.Permission, error) {
	permission, err := scanPermissionRow(r.db.QueryRowContext(ctx, findPermissionByID, permissionID))
	if err != nil && !errors.Is(err, ErrPermissionNotFound) {
		logger.FromContext(ctx).Err(err).Str("func", "permissionRepository.FindPermissionByID").Str("permission_id", permissionID).Msg("error finding permission")
	}
	return permission, err
}

// FindPermissionsByIDs returns the existing permissions among ids. Missing
// ids are silently skipped.
func (r *permissionRepository) FindPermissionsByIDs(ctx context.Context, permissionIDs []string) ([]models.Permission, error) {
	return r.findPermissions(ctx, "permissionRepository.FindPermissionsByIDs", "id", permissionIDs)
}

// FindPermissionsByNames returns the existing permissions among names.
func (r *permissionRepository) FindPermissionsByNames(ctx context.Context, names []string) ([]models.Permission, error) {
	return r.findPermissions(ctx, "permissionRepository.FindPermissionsByNames", "name", names)
}

func (r *permissionRepository) findPermissions(ctx context.Context, funcName, column string, values []string) ([]models.Permission, error) {
	if len(values) == 0 {
		return []models.Permission{}, nil
	}

	log := logger.FromContext(ctx)

	query, args, err := buildFindPermissionsQuery(column, values)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	permissions, err := scanPermissions(rows)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to scan permissions")
		return nil, err
	}
	return permissions, nil
}

// ListPermissions returns a page of permissions ordered by name.
func (r *permissionRepository) ListPermissions(ctx context.Context, params models.ListParams) ([]models.Permission, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPermissionsQuery(params)
	if err != nil {
		log.Err(err).Str("func", "permissionRepository.ListPermissions").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "permissionRepository.ListPermissions").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	permissions, err := scanPermissions(rows)
	if err != nil {
		log.Err(err).Str("func", "permissionRepository.ListPermissions").Msg("failed to scan permissions")
		return nil, err
	}
	return permissions, nil
}

func (r *permissionRepository) UpdatePermission(ctx context.Context, permissionID string, req models.UpdatePermissionRequest) (models.Permission, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePermissionQuery(permissionID, req)
	if err != nil {
		log.Err(err).Str("func", "permissionRepository.UpdatePermission").Msg("failed to create query")
		return models.Permission{}, err
	}

	permission, err := scanPermissionRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil && !errors.Is(err, ErrPermissionNotFound) {
		log.Err(err).Str("func", "permissionRepository.UpdatePermission").Str("permission_id", permissionID).Msg("error updating permission")
	}
	return permission, err
}

// DeletePermission removes a permission. Role links pointing at it are left
// in place and are ignored by every read.
func (r *permissionRepository) DeletePermission(ctx context.Context, permissionID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deletePermission, permissionID)
	if err != nil {
		log.Err(err).Str("func", "permissionRepository.DeletePermission").Str("permission_id", permissionID).Msg("failed to execute query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrPermissionNotFound
	}
	return nil
}

func (r *permissionRepository) CountPermissions(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countPermissions).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "permissionRepository.CountPermissions").Msg("error counting permissions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

func scanPermissionRow(row *sql.Row) (models.Permission, error) {
	if err := row.Err(); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Permission{}, ErrPermissionNameAlreadyExists
		}
		return models.Permission{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	permission, err := scanPermission(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Permission{}, ErrPermissionNotFound
	case postgresError(err) == pgerrcode.UniqueViolation:
		return models.Permission{}, ErrPermissionNameAlreadyExists
	case postgresError(err) != "":
		return models.Permission{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	case err != nil:
		return models.Permission{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return permission, nil
}

func scanPermission(row rowScanner) (models.Permission, error) {
	var p models.Permission
	err := row.Scan(&p.PermissionID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func scanPermissions(rows *sql.Rows) ([]models.Permission, error) {
	permissions := make([]models.Permission, 0)
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		permissions = append(permissions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return permissions, nil
}
