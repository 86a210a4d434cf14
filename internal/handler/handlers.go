// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/handler/http"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger, opts ...http.Option) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}
	if services == nil {
		return nil, errNoServices
	}

	return &Handlers{HTTP: http.NewHandler(services, cfg, logger, opts...)}, nil
}
