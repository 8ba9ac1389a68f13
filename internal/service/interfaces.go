package service

import (
	"context"

	"github.com/MKhiriev/go-digest-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SessionService issues and validates bounded sync sessions. Every sync
// operation funnels its session check through LoadAndValidate, so
// ownership, device binding, and expiry are enforced in exactly one place.
type SessionService interface {
	// StartSession issues a fresh session for the owner and device,
	// clamping the requested page size into the configured bounds.
	StartSession(ctx context.Context, ownerID int64, clientID string, requestedLimit int) (models.SyncSessionInfo, error)

	// LoadAndValidate resolves sessionID and checks it against the caller:
	// the stored owner and client identifiers must match exactly, and the
	// session must not be past its expiry. Returns [ErrSessionNotFound],
	// [ErrSessionForbidden], or [ErrSessionExpired] accordingly.
	LoadAndValidate(ctx context.Context, sessionID string, ownerID int64, clientID string) (models.SyncSession, error)
}

// Collector assembles the owner's complete record stream across every
// entity kind, sorted into the protocol's canonical order.
type Collector interface {
	Collect(ctx context.Context, ownerID int64) ([]models.EntityEnvelope, error)
}

// SyncService serves the two read operations of the protocol.
type SyncService interface {
	// GetFull returns one page of the owner's complete record stream,
	// deleted records included, for first-time device bootstrap.
	GetFull(ctx context.Context, ownerID int64, req models.FullSyncRequest) (models.FullSyncResult, error)

	// GetDelta returns one page of records strictly newer than the
	// client's watermark, partitioned into created and deleted buckets.
	GetDelta(ctx context.Context, ownerID int64, req models.DeltaSyncRequest) (models.DeltaSyncResult, error)
}

// ApplyService pushes client edits into collaborator storage with
// per-item optimistic concurrency. Items are independent: one bad or
// conflicting item never blocks its batch-mates.
type ApplyService interface {
	Apply(ctx context.Context, ownerID int64, req models.ApplyRequest) (models.ApplyResult, error)
}

// AuthService resolves bearer tokens into owner identities. Token
// issuance lives in the upstream identity service; this side only
// verifies.
type AuthService interface {
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
