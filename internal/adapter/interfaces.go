// Package adapter contains the client-side gateway to the sync server's
// HTTP API.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-digest-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// SyncAdapter is the client's view of the server's sync API. One
// implementation speaks HTTP; tests substitute their own.
type SyncAdapter interface {
	// SetToken installs the bearer token used on every subsequent call.
	SetToken(token string)
	// Token returns the currently installed bearer token.
	Token() string

	// StartSession opens a bounded sync session for this device.
	StartSession(ctx context.Context, req models.StartSessionRequest) (models.SyncSessionInfo, error)
	// FetchFull retrieves one page of the complete record stream.
	FetchFull(ctx context.Context, req models.FullSyncRequest) (models.FullSyncResult, error)
	// FetchDelta retrieves one page of changes past the watermark.
	FetchDelta(ctx context.Context, req models.DeltaSyncRequest) (models.DeltaSyncResult, error)
	// Apply pushes local edits and returns per-item verdicts.
	Apply(ctx context.Context, req models.ApplyRequest) (models.ApplyResult, error)
}
