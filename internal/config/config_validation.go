// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	app := cfg.App
	switch {
	case app.TokenSignKey == "":
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	case app.TokenIssuer == "":
		return fmt.Errorf("%w: token issuer is required", ErrInvalidAppConfigs)
	case app.TokenDuration <= 0:
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	case app.PasswordHashCost < bcrypt.MinCost || app.PasswordHashCost > bcrypt.MaxCost:
		return fmt.Errorf("%w: password hash cost must be within [%d, %d]", ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost)
	case app.PasswordMinLength < 1:
		return fmt.Errorf("%w: password min length must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	srv := cfg.Server
	switch {
	case srv.HTTPAddress == "":
		return fmt.Errorf("%w: HTTP address is required", ErrInvalidServerConfigs)
	case srv.RequestTimeout < 0:
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalidServerConfigs)
	case srv.AuthRateLimit < 0 || srv.AuthRateBurst < 0:
		return fmt.Errorf("%w: auth rate limit must not be negative", ErrInvalidServerConfigs)
	}

	boot := cfg.Bootstrap
	if boot.AdminUsername != "" && len(boot.AdminPassword) < app.PasswordMinLength {
		return fmt.Errorf("%w: admin password must be at least %d characters", ErrInvalidBootstrapConfigs, app.PasswordMinLength)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	u, err := url.Parse(cfg.Adapter.HTTPAddress)
	if cfg.Adapter.HTTPAddress == "" || err != nil || u.Host == "" {
		return fmt.Errorf("%w: server address must be an absolute URL", ErrInvalidAdapterConfigs)
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}

	if cfg.Adapter.TokenFile == "" {
		return fmt.Errorf("%w: token file is required", ErrInvalidAdapterConfigs)
	}

	return nil
}
