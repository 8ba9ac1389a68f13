// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/models"
)

// syncService serves full and delta reads. Both are the same operation
// underneath — collect, cut a watermark page — differing only in the
// starting watermark and the response shape.
type syncService struct {
	sessions  SessionService
	collector Collector
	cfg       config.Sync
	logger    *logger.Logger
}

func NewSyncService(sessions SessionService, collector Collector, cfg config.Sync, logger *logger.Logger) SyncService {
	return &syncService{
		sessions:  sessions,
		collector: collector,
		cfg:       cfg,
		logger:    logger,
	}
}

// GetFull implements [SyncService]. A full sync is a delta from the zero
// watermark delivered flat: deleted records ride along as envelope
// shells, so a restoring device also learns what is gone.
func (s *syncService) GetFull(ctx context.Context, ownerID int64, req models.FullSyncRequest) (models.FullSyncResult, error) {
	log := logger.FromContext(ctx)

	session, err := s.sessions.LoadAndValidate(ctx, req.SessionID, ownerID, req.ClientID)
	if err != nil {
		return models.FullSyncResult{}, err
	}

	records, err := s.collector.Collect(ctx, ownerID)
	if err != nil {
		return models.FullSyncResult{}, err
	}

	limit := s.pageLimit(req.Limit, session.PageLimit)
	page, total, hasMore, nextSince := paginate(records, 0, limit)

	log.Debug().
		Str("func", "syncService.GetFull").
		Int64("owner_id", ownerID).
		Int("page_size", len(page)).
		Int("total", total).
		Bool("has_more", hasMore).
		Msg("full sync page served")

	return models.FullSyncResult{
		SessionID: session.SessionID,
		HasMore:   hasMore,
		NextSince: nextSince,
		Items:     page,
		Pagination: models.Pagination{
			Total:   total,
			Limit:   limit,
			Offset:  0,
			HasMore: hasMore,
		},
	}, nil
}

// GetDelta implements [SyncService]. The page is partitioned by deletion
// state; Updated stays empty because collaborator storage keeps no prior
// versions to tell first-delivery from re-delivery apart, and clients
// upsert by id either way.
func (s *syncService) GetDelta(ctx context.Context, ownerID int64, req models.DeltaSyncRequest) (models.DeltaSyncResult, error) {
	log := logger.FromContext(ctx)

	if req.Since < 0 {
		return models.DeltaSyncResult{}, ErrValidationBadSince
	}

	session, err := s.sessions.LoadAndValidate(ctx, req.SessionID, ownerID, req.ClientID)
	if err != nil {
		return models.DeltaSyncResult{}, err
	}

	records, err := s.collector.Collect(ctx, ownerID)
	if err != nil {
		return models.DeltaSyncResult{}, err
	}

	limit := s.pageLimit(req.Limit, session.PageLimit)
	page, _, hasMore, nextSince := paginate(records, req.Since, limit)

	created := make([]models.EntityEnvelope, 0, len(page))
	deleted := make([]models.EntityEnvelope, 0)
	for _, envelope := range page {
		if envelope.Deleted() {
			deleted = append(deleted, envelope)
		} else {
			created = append(created, envelope)
		}
	}

	log.Debug().
		Str("func", "syncService.GetDelta").
		Int64("owner_id", ownerID).
		Int64("since", req.Since).
		Int64("next_since", nextSince).
		Int("created", len(created)).
		Int("deleted", len(deleted)).
		Bool("has_more", hasMore).
		Msg("delta sync page served")

	return models.DeltaSyncResult{
		SessionID: session.SessionID,
		Since:     req.Since,
		HasMore:   hasMore,
		NextSince: nextSince,
		Created:   created,
		Updated:   []models.EntityEnvelope{},
		Deleted:   deleted,
	}, nil
}

// pageLimit resolves the effective page size: a per-request override wins
// over the session's negotiated value, clamped into the configured bounds
// the same way session start clamps.
func (s *syncService) pageLimit(requested, sessionLimit int) int {
	switch {
	case requested <= 0:
		return sessionLimit
	case requested < s.cfg.MinPageLimit:
		return s.cfg.MinPageLimit
	case requested > s.cfg.MaxPageLimit:
		return s.cfg.MaxPageLimit
	}
	return requested
}
