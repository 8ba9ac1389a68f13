package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
)

// Storages groups all server-side storage collaborators into a single
// value that can be passed around the service layer.
type Storages struct {
	// Sessions is the sync-session store. It is a [FailoverSessionStore]
	// when Redis is configured, or a purely in-process store otherwise.
	Sessions SessionStore

	// Summaries is the read-write summary collaborator used by apply.
	Summaries SummaryRepository

	// Sources enumerates every synchronised record kind, the summary
	// table included, for full and delta collection.
	Sources []EnvelopeSource

	// DB is the shared entity database handle, exposed so callers can run
	// migrations and close the pool on shutdown.
	DB *DB
}

// NewStorages initialises the server storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens and pings the PostgreSQL entity database at cfg.DB.DSN.
//  2. Connects to Redis for session storage when an address is
//     configured; a failed or absent Redis leaves the session store
//     running on the in-process fallback alone.
//  3. Constructs the five per-kind repositories and groups them.
//
// Returns an error only if the entity database cannot be reached:
// sessions degrade, records do not.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	var primary SessionStore
	if cfg.Sessions.RedisAddress != "" {
		primary, err = NewRedisSessionStore(ctx, cfg.Sessions, log)
		if err != nil {
			log.Err(err).Str("func", "NewStorages").Msg("redis unavailable at startup, session store starts degraded")
			primary = nil
		}
	}

	summaries := NewSummaryRepository(db, log)

	return &Storages{
		Sessions:  NewFailoverSessionStore(primary, NewMemorySessionStore(), log),
		Summaries: summaries,
		Sources: []EnvelopeSource{
			NewPreferenceRepository(db, log),
			NewRequestRepository(db, log),
			summaries,
			NewCrawlRepository(db, log),
			NewModelCallRepository(db, log),
		},
		DB: db,
	}, nil
}
