package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer. Currently it holds
// only [LocalMirrorRepository]; additional repositories can be added here
// as the feature set grows.
type ClientStorages struct {
	// Mirror is the SQLite-backed local mirror of the server's
	// synchronised records.
	Mirror LocalMirrorRepository
}

// NewClientStorages initialises the client storage layer using the
// supplied configuration and logger. It opens (creating if necessary) the
// SQLite file at cfg.DB.DSN and bootstraps the mirror schema.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.BootstrapLocalSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("schema bootstrap failed: %w", err)
	}

	return &ClientStorages{
		Mirror: NewLocalMirrorRepository(db, logger),
	}, nil
}
