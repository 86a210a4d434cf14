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

// roleService is the concrete implementation of RoleService.
//
// The role repository hands out unresolved permission references. Every role
// leaving this service has been joined against the permissions that exist
// right now; references to deleted permissions are dropped.
type roleService struct {
	roleRepository       store.RoleRepository
	permissionRepository store.PermissionRepository
	validator            validators.Validator
	logger               *logger.Logger
}

func NewRoleService(storages *store.Storages, validator validators.Validator, logger *logger.Logger) RoleService {
	return &roleService{
		roleRepository:       storages.RoleRepository,
		permissionRepository: storages.PermissionRepository,
		validator:            validator,
		logger:               logger,
	}
}

// CreateRole stores a role with the given permission ids. Unknown ids and a
// taken name are reported as validation errors; duplicates collapse.
func (s *roleService) CreateRole(ctx context.Context, req models.CreateRoleRequest) (models.Role, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Role{}, validationError(err)
	}

	refs := make([]models.PermissionRef, 0, len(req.PermissionIDs))
	for _, id := range req.PermissionIDs {
		refs = append(refs, models.UnresolvedPermission(id))
	}

	created, err := s.roleRepository.CreateRole(ctx, models.Role{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Permissions: refs,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "roleService.CreateRole").Str("name", req.Name).Msg("role creation ended with error")
		return models.Role{}, mapStoreError("role creation ended with error", err)
	}

	return s.resolve(ctx, created)
}

func (s *roleService) GetRole(ctx context.Context, roleID string) (models.Role, error) {
	role, err := s.roleRepository.FindRoleByID(ctx, roleID)
	if err != nil {
		return models.Role{}, mapStoreError("error finding role", err)
	}
	return s.resolve(ctx, role)
}

// ListRoles returns every role resolved with one permission lookup.
func (s *roleService) ListRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.roleRepository.ListRoles(ctx)
	if err != nil {
		return nil, mapStoreError("error listing roles", err)
	}

	var ids []string
	for _, role := range roles {
		ids = append(ids, role.PermissionIDs()...)
	}

	known, err := s.lookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range roles {
		roles[i] = resolveWith(roles[i], known)
	}
	return roles, nil
}

func (s *roleService) UpdateRole(ctx context.Context, roleID string, req models.UpdateRoleRequest) (models.Role, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Role{}, validationError(err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}

	role, err := s.roleRepository.UpdateRole(ctx, roleID, req)
	if err != nil {
		return models.Role{}, mapStoreError("error updating role", err)
	}
	return s.resolve(ctx, role)
}

// UpdateRolePermissions replaces the whole permission set of a role.
func (s *roleService) UpdateRolePermissions(ctx context.Context, roleID string, req models.UpdateRolePermissionsRequest) (models.Role, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Role{}, validationError(err)
	}

	if err := s.roleRepository.ReplaceRolePermissions(ctx, roleID, req.PermissionIDs); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "roleService.UpdateRolePermissions").Str("role_id", roleID).Msg("error replacing role permissions")
		return models.Role{}, mapStoreError("error replacing role permissions", err)
	}

	return s.GetRole(ctx, roleID)
}

// ResolvePermissions returns the names of the role's existing permissions.
// Already resolved references are looked up again so that renames and
// deletions are observed.
func (s *roleService) ResolvePermissions(ctx context.Context, role models.Role) (map[string]struct{}, error) {
	resolved, err := s.resolve(ctx, role)
	if err != nil {
		return nil, err
	}
	return resolved.PermissionNames(), nil
}

// DeleteRole deletes the role only. Users assigned to it keep the reference
// and end up with no permissions.
func (s *roleService) DeleteRole(ctx context.Context, roleID string) error {
	if err := s.roleRepository.DeleteRole(ctx, roleID); err != nil {
		return mapStoreError("error deleting role", err)
	}
	return nil
}

func (s *roleService) resolve(ctx context.Context, role models.Role) (models.Role, error) {
	known, err := s.lookup(ctx, role.PermissionIDs())
	if err != nil {
		return models.Role{}, err
	}
	return resolveWith(role, known), nil
}

// lookup loads the existing permissions among ids keyed by id.
func (s *roleService) lookup(ctx context.Context, ids []string) (map[string]models.Permission, error) {
	known := make(map[string]models.Permission, len(ids))
	if len(ids) == 0 {
		return known, nil
	}

	permissions, err := s.permissionRepository.FindPermissionsByIDs(ctx, ids)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "roleService.lookup").Msg("error resolving permissions")
		return nil, mapStoreError("error resolving permissions", err)
	}

	for _, p := range permissions {
		known[p.PermissionID] = p
	}
	return known, nil
}

// resolveWith replaces every reference of role by the matching permission
// in known. Missing ones are dropped and duplicates collapse.
func resolveWith(role models.Role, known map[string]models.Permission) models.Role {
	seen := make(map[string]struct{}, len(role.Permissions))
	refs := make([]models.PermissionRef, 0, len(role.Permissions))

	for _, ref := range role.Permissions {
		if _, dup := seen[ref.ID]; dup {
			continue
		}
		p, ok := known[ref.ID]
		if !ok {
			continue
		}
		seen[ref.ID] = struct{}{}
		refs = append(refs, models.ResolvedPermission(p))
	}

	role.Permissions = refs
	return role
}
