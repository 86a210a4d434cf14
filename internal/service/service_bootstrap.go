// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/store"
	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/internal/validators"
	"github.com/Aruba-Creative/nokan-api/models"
)

var (
	defaultResources = []string{"user", "role", "permission", "project", "link"}
	defaultActions   = []string{"create", "read", "update", "delete"}
)

var actionDescriptions = map[string]string{
	"create": "Create %ss",
	"read":   "Read %s information",
	"update": "Update %s details",
	"delete": "Delete %ss",
}

type defaultRole struct {
	name        string
	description string
	// permissions lists permission names; nil means all of them.
	permissions []string
}

var defaultRoles = []defaultRole{
	{
		name:        SuperAdminRole,
		description: "Super administrator with all permissions",
	},
	{
		name:        "admin",
		description: "Administrator with limited permissions",
		permissions: []string{
			"user:read", "user:create", "user:update",
			"role:read", "permission:read",
			"project:read", "project:create", "project:update",
			"link:read", "link:create", "link:update",
		},
	},
	{
		name:        "user",
		description: "Regular user with minimal permissions",
		permissions: []string{"user:read", "project:read", "link:read"},
	},
}

// DefaultPermissions returns the resource:action catalogue created by Seed.
func DefaultPermissions() []models.Permission {
	permissions := make([]models.Permission, 0, len(defaultResources)*len(defaultActions))
	for _, resource := range defaultResources {
		for _, action := range defaultActions {
			permissions = append(permissions, models.Permission{
				Name:        resource + ":" + action,
				Description: fmt.Sprintf(actionDescriptions[action], resource),
			})
		}
	}
	return permissions
}

// bootstrapService creates whatever part of the default data is missing.
// Existing permissions, roles and users are never modified, so Seed can run
// on every start.
type bootstrapService struct {
	storages *store.Storages
	cfg      config.Bootstrap
	hashCost int
	logger   *logger.Logger
}

func NewBootstrapService(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) BootstrapService {
	return &bootstrapService{
		storages: storages,
		cfg:      cfg.Bootstrap,
		hashCost: cfg.App.PasswordHashCost,
		logger:   logger,
	}
}

// Seed creates the default permissions and roles when seeding is enabled,
// then the configured super administrator when no user exists yet.
func (b *bootstrapService) Seed(ctx context.Context) error {
	if b.cfg.SeedEnabled() {
		permissions, err := b.seedPermissions(ctx)
		if err != nil {
			return fmt.Errorf("error seeding permissions: %w", err)
		}
		if err = b.seedRoles(ctx, permissions); err != nil {
			return fmt.Errorf("error seeding roles: %w", err)
		}
	}

	if b.cfg.AdminUsername != "" {
		if err := b.seedAdmin(ctx); err != nil {
			return fmt.Errorf("error seeding super admin: %w", err)
		}
	}

	return nil
}

// seedPermissions creates missing default permissions and returns all of
// them keyed by name.
func (b *bootstrapService) seedPermissions(ctx context.Context) (map[string]models.Permission, error) {
	log := logger.FromContext(ctx)
	defaults := DefaultPermissions()

	names := make([]string, 0, len(defaults))
	for _, p := range defaults {
		names = append(names, p.Name)
	}

	existing, err := b.storages.PermissionRepository.FindPermissionsByNames(ctx, names)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]models.Permission, len(defaults))
	for _, p := range existing {
		byName[p.Name] = p
	}

	created := 0
	for _, p := range defaults {
		if _, ok := byName[p.Name]; ok {
			continue
		}

		stored, createErr := b.storages.PermissionRepository.CreatePermission(ctx, p)
		if errors.Is(createErr, store.ErrPermissionNameAlreadyExists) {
			// created concurrently by another instance
			continue
		}
		if createErr != nil {
			return nil, createErr
		}
		byName[stored.Name] = stored
		created++
	}

	if len(byName) != len(defaults) {
		existing, err = b.storages.PermissionRepository.FindPermissionsByNames(ctx, names)
		if err != nil {
			return nil, err
		}
		for _, p := range existing {
			byName[p.Name] = p
		}
	}

	log.Info().Str("func", "bootstrapService.seedPermissions").Int("created", created).Msg("default permissions seeded")
	return byName, nil
}

func (b *bootstrapService) seedRoles(ctx context.Context, permissions map[string]models.Permission) error {
	log := logger.FromContext(ctx)

	for _, def := range defaultRoles {
		_, err := b.storages.RoleRepository.FindRoleByName(ctx, def.name)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrRoleNotFound) {
			return err
		}

		role := models.Role{Name: def.name, Description: def.description}
		if def.permissions == nil {
			for _, p := range DefaultPermissions() {
				if stored, ok := permissions[p.Name]; ok {
					role.Permissions = append(role.Permissions, models.UnresolvedPermission(stored.PermissionID))
				}
			}
		} else {
			for _, name := range def.permissions {
				if stored, ok := permissions[name]; ok {
					role.Permissions = append(role.Permissions, models.UnresolvedPermission(stored.PermissionID))
				}
			}
		}

		_, err = b.storages.RoleRepository.CreateRole(ctx, role)
		if errors.Is(err, store.ErrRoleNameAlreadyExists) {
			continue
		}
		if err != nil {
			return err
		}
		log.Info().Str("func", "bootstrapService.seedRoles").Str("role", def.name).Msg("default role created")
	}

	return nil
}

func (b *bootstrapService) seedAdmin(ctx context.Context) error {
	log := logger.FromContext(ctx)

	count, err := b.storages.UserRepository.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug().Str("func", "bootstrapService.seedAdmin").Msg("users already exist, skipping super admin creation")
		return nil
	}

	role, err := b.storages.RoleRepository.FindRoleByName(ctx, SuperAdminRole)
	if errors.Is(err, store.ErrRoleNotFound) {
		return ErrSuperAdminRoleNotFound
	}
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(b.cfg.AdminPassword, b.hashCost)
	if err != nil {
		return err
	}

	name := b.cfg.AdminName
	if name == "" {
		name = "Super Admin"
	}

	user, err := b.storages.UserRepository.CreateFirstUser(ctx, models.User{
		Name:         name,
		Username:     validators.NormalizeUsername(b.cfg.AdminUsername),
		PasswordHash: hash,
		RoleID:       role.RoleID,
	})
	if errors.Is(err, store.ErrUsersAlreadyExist) {
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Str("func", "bootstrapService.seedAdmin").Str("user_id", user.UserID).Msg("super admin created")
	return nil
}
