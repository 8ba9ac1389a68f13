// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/adapter"
	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/store"
	"github.com/MKhiriev/go-digest-sync/models"
)

// sessionRenewalSlack is how long before the advertised expiry a cached
// session token is discarded, so a round never starts on a token that
// expires mid-flight.
const sessionRenewalSlack = 30 * time.Second

type clientSyncService struct {
	mirror store.LocalMirrorRepository
	server adapter.SyncAdapter
	cfg    config.ClientApp
	logger *logger.Logger

	mu      sync.Mutex
	session models.SyncSessionInfo
}

func NewClientSyncService(mirror store.LocalMirrorRepository, server adapter.SyncAdapter, cfg config.ClientApp, logger *logger.Logger) ClientSyncService {
	return &clientSyncService{
		mirror: mirror,
		server: server,
		cfg:    cfg,
		logger: logger,
	}
}

// Sync implements [ClientSyncService]. Local edits are pushed before the
// pull so that a conflict verdict and the snapshot that resolves it land
// in the same round.
func (s *clientSyncService) Sync(ctx context.Context) error {
	if err := s.PushLocalEdits(ctx); err != nil {
		return fmt.Errorf("push local edits: %w", err)
	}

	watermark, err := s.mirror.Watermark(ctx)
	if err != nil {
		return fmt.Errorf("read watermark: %w", err)
	}
	if watermark == 0 {
		return s.Bootstrap(ctx)
	}

	return s.pullDelta(ctx, watermark)
}

// Bootstrap implements [ClientSyncService]. The full-sync operation hands
// out the first page plus a watermark; the rest of the stream is drained
// through the delta operation, which pages by that watermark.
func (s *clientSyncService) Bootstrap(ctx context.Context) error {
	var page models.FullSyncResult
	err := s.withSession(ctx, func(session models.SyncSessionInfo) error {
		var callErr error
		page, callErr = s.server.FetchFull(ctx, models.FullSyncRequest{
			SessionID: session.SessionID,
			ClientID:  s.cfg.ClientID,
		})
		return callErr
	})
	if err != nil {
		return fmt.Errorf("fetch full page: %w", err)
	}

	if err = s.absorb(ctx, page.NextSince, page.Items...); err != nil {
		return err
	}

	s.logger.Info().
		Str("func", "clientSyncService.Bootstrap").
		Int("records", len(page.Items)).
		Int64("watermark", page.NextSince).
		Msg("mirror bootstrapped")

	if !page.HasMore {
		return nil
	}
	return s.pullDelta(ctx, page.NextSince)
}

// pullDelta drains delta pages starting past since until the server
// reports no more changes. The watermark advances after every absorbed
// page, so an interrupted pull resumes without re-downloading.
func (s *clientSyncService) pullDelta(ctx context.Context, since int64) error {
	for {
		var page models.DeltaSyncResult
		err := s.withSession(ctx, func(session models.SyncSessionInfo) error {
			var callErr error
			page, callErr = s.server.FetchDelta(ctx, models.DeltaSyncRequest{
				SessionID: session.SessionID,
				ClientID:  s.cfg.ClientID,
				Since:     since,
			})
			return callErr
		})
		if err != nil {
			return fmt.Errorf("fetch delta page: %w", err)
		}

		batch := make([]models.EntityEnvelope, 0, len(page.Created)+len(page.Updated)+len(page.Deleted))
		batch = append(batch, page.Created...)
		batch = append(batch, page.Updated...)
		batch = append(batch, page.Deleted...)

		if err = s.absorb(ctx, page.NextSince, batch...); err != nil {
			return err
		}

		if !page.HasMore || page.NextSince == since {
			return nil
		}
		since = page.NextSince
	}
}

// absorb lands one page in the mirror and advances the watermark. The
// upsert must land before the watermark does: a crash between the two
// re-downloads the page, which the upsert makes idempotent.
func (s *clientSyncService) absorb(ctx context.Context, nextSince int64, envelopes ...models.EntityEnvelope) error {
	if len(envelopes) > 0 {
		if err := s.mirror.UpsertEnvelopes(ctx, envelopes...); err != nil {
			return fmt.Errorf("upsert page into mirror: %w", err)
		}
	}
	if err := s.mirror.SetWatermark(ctx, nextSince); err != nil {
		return fmt.Errorf("advance watermark: %w", err)
	}
	return nil
}

// PushLocalEdits implements [ClientSyncService].
func (s *clientSyncService) PushLocalEdits(ctx context.Context) error {
	marks, err := s.mirror.PendingReadMarks(ctx)
	if err != nil {
		return fmt.Errorf("list pending edits: %w", err)
	}
	if len(marks) == 0 {
		return nil
	}

	changes := make([]models.SyncApplyItem, 0, len(marks))
	for _, mark := range marks {
		changes = append(changes, models.SyncApplyItem{
			EntityType:      models.EntitySummary,
			ID:              mark.ID,
			Action:          models.ActionUpdate,
			LastSeenVersion: mark.LastSeenVersion,
			Payload:         map[string]any{"is_read": mark.IsRead},
		})
	}

	var result models.ApplyResult
	err = s.withSession(ctx, func(session models.SyncSessionInfo) error {
		var callErr error
		result, callErr = s.server.Apply(ctx, models.ApplyRequest{
			SessionID: session.SessionID,
			ClientID:  s.cfg.ClientID,
			Changes:   changes,
		})
		return callErr
	})
	if err != nil {
		return fmt.Errorf("apply local edits: %w", err)
	}

	return s.settleVerdicts(ctx, result.Results)
}

// settleVerdicts resolves each pushed edit by its per-item outcome. Every
// verdict clears the pending mark: applied means the server took the
// edit, conflict means the server's copy wins and is mirrored from the
// snapshot, invalid means retrying the same item can never succeed.
func (s *clientSyncService) settleVerdicts(ctx context.Context, verdicts []models.SyncApplyResult) error {
	log := logger.FromContext(ctx)

	for _, verdict := range verdicts {
		switch verdict.Status {
		case models.StatusConflict:
			if verdict.ServerSnapshot != nil {
				if err := s.mirror.UpsertEnvelopes(ctx, *verdict.ServerSnapshot); err != nil {
					return fmt.Errorf("mirror conflict snapshot for %s: %w", verdict.ID, err)
				}
			}
			log.Warn().
				Str("func", "clientSyncService.settleVerdicts").
				Str("id", verdict.ID).
				Int64("server_version", verdict.ServerVersion).
				Msg("local edit lost to a newer server write")
		case models.StatusInvalid:
			log.Warn().
				Str("func", "clientSyncService.settleVerdicts").
				Str("id", verdict.ID).
				Str("error_code", string(verdict.ErrorCode)).
				Msg("server rejected local edit")
		}

		if err := s.mirror.ClearPendingReadMark(ctx, verdict.ID); err != nil {
			return fmt.Errorf("clear pending edit %s: %w", verdict.ID, err)
		}
	}

	return nil
}

// MarkSummaryRead implements [ClientSyncService].
func (s *clientSyncService) MarkSummaryRead(ctx context.Context, id string, isRead bool) error {
	if err := s.mirror.MarkSummaryRead(ctx, id, isRead); err != nil {
		return fmt.Errorf("mark summary %s: %w", id, err)
	}
	return nil
}

// ListSummaries implements [ClientSyncService].
func (s *clientSyncService) ListSummaries(ctx context.Context) ([]models.EntityEnvelope, error) {
	mirrored, err := s.mirror.ListEnvelopes(ctx, models.EntitySummary)
	if err != nil {
		return nil, fmt.Errorf("list mirrored summaries: %w", err)
	}

	live := make([]models.EntityEnvelope, 0, len(mirrored))
	for _, envelope := range mirrored {
		if !envelope.Deleted() {
			live = append(live, envelope)
		}
	}
	return live, nil
}

// withSession runs call under a valid session token. A call rejected for
// session reasons gets exactly one retry on a freshly negotiated session;
// everything else is returned as is.
func (s *clientSyncService) withSession(ctx context.Context, call func(models.SyncSessionInfo) error) error {
	session, err := s.ensureSession(ctx)
	if err != nil {
		return err
	}

	err = call(session)
	if err == nil || !sessionRejected(err) {
		return err
	}

	s.logger.Debug().
		Str("func", "clientSyncService.withSession").
		Err(err).
		Msg("session rejected, renegotiating")
	s.dropSession()

	session, err = s.ensureSession(ctx)
	if err != nil {
		return err
	}
	return call(session)
}

func (s *clientSyncService) ensureSession(ctx context.Context) (models.SyncSessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.SessionID != "" && time.Now().Add(sessionRenewalSlack).Before(s.session.ExpiresAt) {
		return s.session, nil
	}

	info, err := s.server.StartSession(ctx, models.StartSessionRequest{ClientID: s.cfg.ClientID})
	if err != nil {
		return models.SyncSessionInfo{}, fmt.Errorf("start session: %w", err)
	}

	s.session = info
	return info, nil
}

func (s *clientSyncService) dropSession() {
	s.mu.Lock()
	s.session = models.SyncSessionInfo{}
	s.mu.Unlock()
}

// sessionRejected reports whether err means the presented session token
// is no longer honoured, as opposed to a fault in the request itself.
func sessionRejected(err error) bool {
	return errors.Is(err, adapter.ErrNotFound) ||
		errors.Is(err, adapter.ErrForbidden) ||
		errors.Is(err, adapter.ErrUnauthorized)
}
