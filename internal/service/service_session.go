// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/store"
	"github.com/MKhiriev/go-digest-sync/internal/utils"
	"github.com/MKhiriev/go-digest-sync/models"
)

type sessionService struct {
	sessions store.SessionStore
	uuid     *utils.UUIDGenerator
	cfg      config.Sync
	logger   *logger.Logger
}

func NewSessionService(sessions store.SessionStore, cfg config.Sync, logger *logger.Logger) SessionService {
	return &sessionService{
		sessions: sessions,
		uuid:     utils.NewUUIDGenerator(),
		cfg:      cfg,
		logger:   logger,
	}
}

// StartSession implements [SessionService]. The requested page size is
// clamped into the configured bounds rather than rejected: zero means
// "server default", anything else is pulled to the nearest bound.
func (s *sessionService) StartSession(ctx context.Context, ownerID int64, clientID string, requestedLimit int) (models.SyncSessionInfo, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return models.SyncSessionInfo{}, ErrValidationNoOwnerID
	}

	now := time.Now()
	session := models.SyncSession{
		SessionID: s.uuid.Generate(),
		OwnerID:   ownerID,
		ClientID:  clientID,
		PageLimit: s.clampLimit(requestedLimit),
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}

	if err := s.sessions.Set(ctx, session, s.cfg.SessionTTL); err != nil {
		log.Err(err).Str("func", "sessionService.StartSession").Int64("owner_id", ownerID).Msg("failed to persist sync session")
		return models.SyncSessionInfo{}, fmt.Errorf("failed to persist sync session: %w", err)
	}

	log.Debug().
		Str("func", "sessionService.StartSession").
		Int64("owner_id", ownerID).
		Str("client_id", clientID).
		Int("page_limit", session.PageLimit).
		Time("expires_at", session.ExpiresAt).
		Msg("sync session started")

	return models.SyncSessionInfo{
		SessionID:    session.SessionID,
		DefaultLimit: session.PageLimit,
		MaxLimit:     s.cfg.MaxPageLimit,
		ExpiresAt:    session.ExpiresAt,
		Since:        0,
	}, nil
}

// LoadAndValidate implements [SessionService]. Not-found and expired are
// deliberately distinct outcomes: a client holding an expired session
// should start a new one, a client holding an unknown token is likely
// misconfigured.
func (s *sessionService) LoadAndValidate(ctx context.Context, sessionID string, ownerID int64, clientID string) (models.SyncSession, error) {
	log := logger.FromContext(ctx)

	if sessionID == "" {
		return models.SyncSession{}, ErrValidationNoSessionID
	}
	if ownerID == 0 {
		return models.SyncSession{}, ErrValidationNoOwnerID
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrSessionNotFound):
			return models.SyncSession{}, ErrSessionNotFound
		case errors.Is(err, store.ErrSessionExpired):
			return models.SyncSession{}, ErrSessionExpired
		}
		log.Err(err).Str("func", "sessionService.LoadAndValidate").Msg("failed to load sync session")
		return models.SyncSession{}, fmt.Errorf("failed to load sync session: %w", err)
	}

	if session.OwnerID != ownerID || session.ClientID != clientID {
		log.Warn().
			Str("func", "sessionService.LoadAndValidate").
			Int64("owner_id", ownerID).
			Int64("session_owner_id", session.OwnerID).
			Msg("sync session presented by wrong owner or device")
		return models.SyncSession{}, ErrSessionForbidden
	}

	// The TTL-backed store evicts expired sessions on its own; this check
	// covers the in-process fallback and clock edges near expiry.
	if session.ExpiredAt(time.Now()) {
		return models.SyncSession{}, ErrSessionExpired
	}

	return session, nil
}

func (s *sessionService) clampLimit(requested int) int {
	switch {
	case requested <= 0:
		return s.cfg.DefaultPageLimit
	case requested < s.cfg.MinPageLimit:
		return s.cfg.MinPageLimit
	case requested > s.cfg.MaxPageLimit:
		return s.cfg.MaxPageLimit
	}
	return requested
}
