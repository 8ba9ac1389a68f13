package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-digest-sync/internal/adapter"
	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/service"
	"github.com/MKhiriev/go-digest-sync/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("digest-sync-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter := adapter.NewHTTPSyncAdapter(cfg.Adapter)
	serverAdapter.SetToken(cfg.App.Token)

	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewClientServices(localStorage, serverAdapter, cfg, log)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	services.Job.Start(ctx, cfg.Workers.SyncInterval)
	log.Info().Dur("interval", cfg.Workers.SyncInterval).Msg("background sync started")

	<-ctx.Done()
	services.Job.Stop()
	log.Info().Msg("client stopped gracefully")
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
