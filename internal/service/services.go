package service

import (
	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/store"
)

type Services struct {
	AuthService    AuthService
	SessionService SessionService
	SyncService    SyncService
	ApplyService   ApplyService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	sessions := NewSessionService(storages.Sessions, cfg.Sync, logger)
	collector := NewRecordCollector(storages.Sources, logger)

	return &Services{
		AuthService:    NewAuthService(cfg.App, logger),
		SessionService: sessions,
		SyncService:    NewSyncService(sessions, collector, cfg.Sync, logger),
		ApplyService:   NewApplyService(sessions, storages.Summaries, logger),
	}
}
