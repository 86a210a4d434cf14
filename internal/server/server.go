// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/handler"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
)

type server struct {
	httpServer *httpServer
	// onShutdown runs after the HTTP server has stopped, in order.
	onShutdown []func()
	logger     *logger.Logger
}

// NewServer creates the HTTP server for handlers. The hooks are called once
// the server has drained, in the order given.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger, onShutdown ...func()) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoHTTPHandler
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		onShutdown: onShutdown,
		logger:     logger,
	}, nil
}

// RunServer serves until SIGTERM, SIGINT or SIGQUIT.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx)
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()

	for _, hook := range s.onShutdown {
		hook()
	}
}

func (s *server) run(ctx context.Context) {
	done := make(chan struct{})

	go func() {
		defer close(done)
		s.httpServer.RunServer()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown signal received")
	case <-done:
		// listener failed; there is nothing left to drain but the hooks
	}

	s.Shutdown()
	<-done

	s.logger.Info().Msg("server Shutdown gracefully")
}
