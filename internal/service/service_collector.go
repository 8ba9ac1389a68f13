package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/store"
	"github.com/MKhiriev/go-digest-sync/models"
)

// recordCollector merges the per-kind record streams into one slice in
// the protocol's canonical order: ascending (server_version, id,
// entity_type). The order is what makes watermark paging deterministic —
// two identical requests must cut identical pages.
type recordCollector struct {
	sources []store.EnvelopeSource
	logger  *logger.Logger
}

func NewRecordCollector(sources []store.EnvelopeSource, logger *logger.Logger) Collector {
	return &recordCollector{
		sources: sources,
		logger:  logger,
	}
}

// Collect implements [Collector]. A failure in any single source fails
// the whole collection: a page silently missing one kind would corrupt
// the client's watermark, which is worse than a retryable error.
func (c *recordCollector) Collect(ctx context.Context, ownerID int64) ([]models.EntityEnvelope, error) {
	log := logger.FromContext(ctx)

	merged := make([]models.EntityEnvelope, 0, 100)
	for _, source := range c.sources {
		envelopes, err := source.ListEnvelopes(ctx, ownerID)
		if err != nil {
			log.Err(err).
				Str("func", "recordCollector.Collect").
				Str("entity_type", string(source.EntityType())).
				Int64("owner_id", ownerID).
				Msg("record source failed, aborting collection")
			return nil, fmt.Errorf("failed to collect %s records: %w", source.EntityType(), err)
		}
		merged = append(merged, envelopes...)
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.ServerVersion != b.ServerVersion {
			return a.ServerVersion < b.ServerVersion
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return a.EntityType < b.EntityType
	})

	return merged, nil
}
