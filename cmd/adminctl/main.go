// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/Aruba-Creative/nokan-api/internal/adapter"
	"github.com/Aruba-Creative/nokan-api/internal/client"
	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logger.NewConsoleLogger("adminctl", os.Stderr)

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Error().Err(err).Msg("error getting configs")
		return 1
	}

	api, err := adapter.NewHTTPAdminAPI(cfg.Adapter, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating admin api client")
		return 1
	}

	app := client.NewApp(api, client.NewFileTokenStore(cfg.Adapter.TokenFile), os.Stdin, os.Stdout, log)
	app.SetBuildInfo(models.NewBuildInfo(buildVersion, buildDate, buildCommit))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = app.Run(ctx, os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("command failed")
		if errors.Is(err, client.ErrUsage) {
			return 2
		}
		return 1
	}

	return 0
}
