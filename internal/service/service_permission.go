// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"

	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/store"
	"github.com/Aruba-Creative/nokan-api/internal/validators"
	"github.com/Aruba-Creative/nokan-api/models"
)

// permissionService is the concrete implementation of PermissionService.
// Deleting a permission leaves the role links behind; they are dropped when
// roles are resolved.
type permissionService struct {
	permissionRepository store.PermissionRepository
	validator            validators.Validator
	logger               *logger.Logger
}

func NewPermissionService(storages *store.Storages, validator validators.Validator, logger *logger.Logger) PermissionService {
	return &permissionService{
		permissionRepository: storages.PermissionRepository,
		validator:            validator,
		logger:               logger,
	}
}

func (s *permissionService) CreatePermission(ctx context.Context, req models.CreatePermissionRequest) (models.Permission, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Permission{}, validationError(err)
	}

	created, err := s.permissionRepository.CreatePermission(ctx, models.Permission{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "permissionService.CreatePermission").Str("name", req.Name).Msg("permission creation ended with error")
		return models.Permission{}, mapStoreError("permission creation ended with error", err)
	}

	return created, nil
}

func (s *permissionService) GetPermission(ctx context.Context, permissionID string) (models.Permission, error) {
	p, err := s.permissionRepository.FindPermissionByID(ctx, permissionID)
	if err != nil {
		return models.Permission{}, mapStoreError("error finding permission", err)
	}
	return p, nil
}

func (s *permissionService) ListPermissions(ctx context.Context, params models.ListParams) ([]models.Permission, error) {
	permissions, err := s.permissionRepository.ListPermissions(ctx, params)
	if err != nil {
		return nil, mapStoreError("error listing permissions", err)
	}
	return permissions, nil
}

// UpdatePermission renames or re-describes a permission. A rename is seen by
// every role holding it on its next resolution.
func (s *permissionService) UpdatePermission(ctx context.Context, permissionID string, req models.UpdatePermissionRequest) (models.Permission, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Permission{}, validationError(err)
	}

	updated, err := s.permissionRepository.UpdatePermission(ctx, permissionID, req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "permissionService.UpdatePermission").Str("permission_id", permissionID).Msg("error updating permission")
		return models.Permission{}, mapStoreError("error updating permission", err)
	}
	return updated, nil
}

func (s *permissionService) DeletePermission(ctx context.Context, permissionID string) error {
	if err := s.permissionRepository.DeletePermission(ctx, permissionID); err != nil {
		return mapStoreError("error deleting permission", err)
	}
	return nil
}
