// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid. Returned errors wrap one of these with details.
var (
	// ErrInvalidAppConfigs indicates invalid token or password settings
	// (for example, missing sign key or out-of-range bcrypt cost).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidBootstrapConfigs indicates an incomplete bootstrap
	// administrator definition.
	ErrInvalidBootstrapConfigs = errors.New("invalid bootstrap configuration")
	// ErrInvalidAdapterConfigs indicates invalid adminctl client settings
	// (for example, missing server address or token file).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)
