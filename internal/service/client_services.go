package service

import (
	"github.com/MKhiriev/go-digest-sync/internal/adapter"
	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/store"
)

// ClientServices bundles the client-side service layer.
type ClientServices struct {
	Sync ClientSyncService
	Job  ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, server adapter.SyncAdapter, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	syncService := NewClientSyncService(storages.Mirror, server, cfg.App, logger)

	return &ClientServices{
		Sync: syncService,
		Job:  NewClientSyncJob(syncService, logger),
	}
}
