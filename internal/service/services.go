// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/store"
	"github.com/Aruba-Creative/nokan-api/internal/validators"
)

type Services struct {
	AuthService       AuthService
	CredentialService CredentialService
	RoleService       RoleService
	PermissionService PermissionService
	TokenService      TokenService
	SessionValidator  SessionValidator
	Authorizer        Authorizer
	BootstrapService  BootstrapService
	AppInfoService    AppInfoService
}

// NewServices wires every service over storages. All time-dependent
// services share now, so that password change watermarks and token
// issuance times are comparable.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, now func() time.Time, logger *logger.Logger) (*Services, error) {
	if now == nil {
		now = time.Now
	}

	validator := validators.NewAdminValidator(cfg.App.PasswordMinLength)

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	tokenService := NewTokenService(cfg.App, now, logger)
	credentialService := NewCredentialService(storages, validator, cfg.App, now, logger)

	return &Services{
		AuthService:       NewAuthService(storages, credentialService, tokenService, validator, cfg.App, logger),
		CredentialService: credentialService,
		RoleService:       NewRoleService(storages, validator, logger),
		PermissionService: NewPermissionService(storages, validator, logger),
		TokenService:      tokenService,
		SessionValidator:  NewSessionValidator(tokenService, storages, logger),
		Authorizer:        NewAuthorizer(),
		BootstrapService:  NewBootstrapService(storages, cfg, logger),
		AppInfoService:    appInfoService,
	}, nil
}
