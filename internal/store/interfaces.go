package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-digest-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SessionStore is the TTL-capable key/value contract every session backend
// satisfies. Implementations: the shared Redis store, the in-process
// fallback store, and the failover wrapper combining the two. Which one a
// deployment runs on is decided once, by dependency injection at startup.
type SessionStore interface {
	// Get fetches a session by its token. Returns [ErrSessionNotFound]
	// when the token is absent (or TTL-evicted), [ErrSessionExpired] when
	// the in-process store finds a record past its stored expiry.
	Get(ctx context.Context, sessionID string) (models.SyncSession, error)

	// Set persists the session under its token with the given TTL.
	Set(ctx context.Context, session models.SyncSession, ttl time.Duration) error

	// TTL reports the remaining lifetime of a session.
	TTL(ctx context.Context, sessionID string) (time.Duration, error)

	// Delete removes a session. Deleting an absent session is not an
	// error.
	Delete(ctx context.Context, sessionID string) error
}

// Pinger is implemented by session stores that can report backend
// reachability. The store health worker uses it to observe availability
// transitions.
type Pinger interface {
	Ping(ctx context.Context) error
}

// EnvelopeSource enumerates one entity kind for one owner. The record
// collector is generic over this capability, so the sync pipeline never
// branches on concrete entity types.
type EnvelopeSource interface {
	// EntityType names the kind this source serves.
	EntityType() models.EntityType

	// ListEnvelopes returns every record of this kind owned by ownerID,
	// soft-deleted ones included, as envelopes. Order is unspecified; the
	// collector sorts the merged stream.
	ListEnvelopes(ctx context.Context, ownerID int64) ([]models.EntityEnvelope, error)
}

// SummaryRepository is the one collaborator with a client-facing write
// path: summaries accept is_read updates and soft deletes through apply.
// Both writes are version-checked compare-and-swap statements, so the
// "read current version, compare, write new version" sequence is atomic at
// single-row granularity.
type SummaryRepository interface {
	// GetSummary fetches one summary scoped to its owner. Returns
	// [ErrSummaryNotFound] when no such row exists.
	GetSummary(ctx context.Context, ownerID, id int64) (models.Summary, error)

	// UpdateReadFlag sets is_read iff the row still carries
	// expectedVersion, bumping server_version in the same statement.
	// Returns the post-write version, [ErrVersionConflict] when the row
	// moved past expectedVersion, or [ErrSummaryNotFound].
	UpdateReadFlag(ctx context.Context, ownerID, id, expectedVersion int64, isRead bool) (int64, error)

	// SoftDelete marks the summary deleted iff the row still carries
	// expectedVersion, bumping server_version in the same statement.
	// Returns the post-write version, [ErrVersionConflict], or
	// [ErrSummaryNotFound].
	SoftDelete(ctx context.Context, ownerID, id, expectedVersion int64) (int64, error)
}
