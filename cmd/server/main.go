package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-digest-sync/internal/config"
	httphandler "github.com/MKhiriev/go-digest-sync/internal/handler/http"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/server"
	"github.com/MKhiriev/go-digest-sync/internal/service"
	"github.com/MKhiriev/go-digest-sync/internal/store"
	"github.com/MKhiriev/go-digest-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("digest-sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()
	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	if err = storages.DB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}

	services := service.NewServices(storages, *cfg, log)
	handler := httphandler.NewHandler(services, log)

	background := workers.NewWorkers(storages, cfg.Workers, log)
	background.Run()

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
