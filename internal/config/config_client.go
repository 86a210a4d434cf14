// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the adminctl transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the nokan-api server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// TokenFile is the path of the file holding the session token.
	TokenFile string
}

// ClientConfig is the adminctl configuration assembled from [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport address, timeout and token storage.
	Adapter ClientAdapter
}

// GetClientConfig builds and validates the adminctl config view.
//
// Only environment variables, an optional JSON file (CONFIG) and defaults
// are consulted: adminctl command-line flags belong to its subcommands.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSON().
		withDefaults().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			TokenFile:      cfg.Adapter.TokenFile,
		},
	}

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}

	return clientCfg, nil
}
