package store

import (
	"context"

	"github.com/MKhiriev/go-digest-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalMirrorRepository is the low-level local mirror of the server's
// synchronised records, plus the client's own sync bookkeeping (watermark
// and pending local edits).
type LocalMirrorRepository interface {
	// UpsertEnvelopes lands server envelopes in the mirror, replacing any
	// older copy of the same (entity_type, id) pair.
	UpsertEnvelopes(ctx context.Context, envelopes ...models.EntityEnvelope) error
	// GetEnvelope returns one mirrored record.
	GetEnvelope(ctx context.Context, entityType models.EntityType, id string) (models.EntityEnvelope, error)
	// ListEnvelopes returns every mirrored record of one kind, deleted
	// ones included.
	ListEnvelopes(ctx context.Context, entityType models.EntityType) ([]models.EntityEnvelope, error)

	// Watermark returns the highest server version the mirror has fully
	// absorbed; zero means never synced.
	Watermark(ctx context.Context) (int64, error)
	// SetWatermark records the cursor returned by the last sync page.
	SetWatermark(ctx context.Context, since int64) error

	// MarkSummaryRead flags a mirrored summary as read locally so the
	// change survives offline until the next push.
	MarkSummaryRead(ctx context.Context, id string, isRead bool) error
	// PendingReadMarks lists local read-flag edits not yet acknowledged
	// by the server.
	PendingReadMarks(ctx context.Context) ([]models.PendingReadMark, error)
	// ClearPendingReadMark drops one acknowledged local edit.
	ClearPendingReadMark(ctx context.Context, id string) error
}
