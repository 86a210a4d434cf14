// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/handler"
	"github.com/Aruba-Creative/nokan-api/internal/handler/http"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/metrics"
	"github.com/Aruba-Creative/nokan-api/internal/server"
	"github.com/Aruba-Creative/nokan-api/internal/service"
	"github.com/Aruba-Creative/nokan-api/internal/store"
	"github.com/Aruba-Creative/nokan-api/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const startupTimeout = time.Minute

func main() {
	info := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(info)

	log := logger.NewLogger("nokan-api")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = info.Version()
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Dur("request_timeout", cfg.Server.RequestTimeout).
		Dur("token_duration", cfg.App.TokenDuration).
		Bool("seed", cfg.Bootstrap.SeedEnabled()).
		Msg("received configs")

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting database")
	}
	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	services, err := service.NewServices(storages, *cfg, time.Now, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = services.BootstrapService.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("error seeding permissions and roles")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	authLimiter := http.NewRateLimiter(http.PerMinute(cfg.Server.AuthRateLimit, cfg.Server.AuthRateBurst))

	handlers, err := handler.NewHandlers(services, cfg.Server, log,
		http.WithMetrics(collector, metrics.Handler(registry)),
		http.WithAuthRateLimiter(authLimiter),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log,
		authLimiter.Stop,
		func() {
			if err := db.Close(); err != nil {
				log.Err(err).Msg("error closing database")
			}
		},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.BuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version())
	fmt.Printf("Build date: %s\n", info.Date())
	fmt.Printf("Build commit: %s\n", info.Commit())
}
