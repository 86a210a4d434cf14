// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/metrics"
	"github.com/Aruba-Creative/nokan-api/internal/service"
)

// Handler serves the admin REST API.
type Handler struct {
	services *service.Services
	cfg      config.Server

	metrics metrics.MetricsCollector
	// metricsHandler serves /metrics; the route is absent when nil.
	metricsHandler http.Handler

	authLimiter *RateLimiter

	logger *logger.Logger
}

// Option customizes a Handler.
type Option func(*Handler)

// WithMetrics reports request outcomes to collector and exposes scrape on
// /metrics. Either may be nil.
func WithMetrics(collector metrics.MetricsCollector, scrape http.Handler) Option {
	return func(h *Handler) {
		if collector != nil {
			h.metrics = collector
		}
		h.metricsHandler = scrape
	}
}

// WithAuthRateLimiter limits signup and login per client address.
func WithAuthRateLimiter(limiter *RateLimiter) Option {
	return func(h *Handler) {
		h.authLimiter = limiter
	}
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services: services,
		cfg:      cfg,
		metrics:  metrics.Nop{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	logger.Info().Msg("http handler created")
	return h
}
