package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-digest-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientSyncService reconciles the local mirror with the sync server. All
// methods are safe for concurrent use; the session token is negotiated
// lazily and renewed when the server stops accepting it.
type ClientSyncService interface {
	// Bootstrap performs the first-time download: one full-sync page plus
	// delta pages until the mirror has absorbed the whole record stream.
	Bootstrap(ctx context.Context) error

	// Sync runs one reconciliation round: push pending local edits, then
	// pull everything past the mirror's watermark. Falls back to Bootstrap
	// when the mirror has never synced.
	Sync(ctx context.Context) error

	// PushLocalEdits sends queued read-flag edits to the server and
	// settles each one by the per-item verdict: acknowledged edits are
	// dropped, conflicting ones are overwritten by the server snapshot.
	PushLocalEdits(ctx context.Context) error

	// MarkSummaryRead records a read-flag edit locally so it survives
	// offline until the next push.
	MarkSummaryRead(ctx context.Context, id string, isRead bool) error

	// ListSummaries returns the live mirrored summaries.
	ListSummaries(ctx context.Context) ([]models.EntityEnvelope, error)
}

// ClientSyncJob is a background worker that periodically calls Sync.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs immediately,
	// then every interval, defaulting to 5 minutes if interval is zero or
	// negative. Any previously running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
