// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/models"
)

// FailoverSessionStore composes the shared store and the in-process store
// behind the single [SessionStore] interface. Reads prefer the shared
// store and fall back on its failure; writes land in the fallback when the
// shared store is unreachable, so starting a session never errors on store
// unavailability.
//
// The failover is selected here, at construction, not by feature checks
// scattered through call sites: everything above this type sees one
// SessionStore.
type FailoverSessionStore struct {
	primary  SessionStore
	fallback SessionStore
	logger   *logger.Logger

	degraded atomic.Bool
}

// NewFailoverSessionStore wires a failover store. primary may be nil, in
// which case every call goes straight to fallback (single-instance
// deployments with no shared store configured).
func NewFailoverSessionStore(primary, fallback SessionStore, log *logger.Logger) *FailoverSessionStore {
	return &FailoverSessionStore{
		primary:  primary,
		fallback: fallback,
		logger:   log,
	}
}

// Get implements [SessionStore]. A session absent from the shared store is
// also looked up in the fallback: it may have been written there while the
// shared store was down.
func (s *FailoverSessionStore) Get(ctx context.Context, sessionID string) (models.SyncSession, error) {
	if s.primary == nil {
		return s.fallback.Get(ctx, sessionID)
	}

	session, err := s.primary.Get(ctx, sessionID)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrSessionStoreUnavailable) {
		s.markDegraded(err)
		return s.fallback.Get(ctx, sessionID)
	}

	if errors.Is(err, ErrSessionNotFound) {
		return s.fallback.Get(ctx, sessionID)
	}

	return models.SyncSession{}, err
}

// Set implements [SessionStore]. Shared-store failures are absorbed: the
// session is written to the fallback instead and the caller proceeds.
func (s *FailoverSessionStore) Set(ctx context.Context, session models.SyncSession, ttl time.Duration) error {
	if s.primary == nil {
		return s.fallback.Set(ctx, session, ttl)
	}

	if err := s.primary.Set(ctx, session, ttl); err != nil {
		s.markDegraded(err)
		return s.fallback.Set(ctx, session, ttl)
	}

	return nil
}

// TTL implements [SessionStore].
func (s *FailoverSessionStore) TTL(ctx context.Context, sessionID string) (time.Duration, error) {
	if s.primary == nil {
		return s.fallback.TTL(ctx, sessionID)
	}

	ttl, err := s.primary.TTL(ctx, sessionID)
	if err == nil {
		return ttl, nil
	}

	if errors.Is(err, ErrSessionStoreUnavailable) || errors.Is(err, ErrSessionNotFound) {
		return s.fallback.TTL(ctx, sessionID)
	}

	return 0, err
}

// Delete implements [SessionStore]. The session is removed from both
// stores so a failover copy cannot resurrect it.
func (s *FailoverSessionStore) Delete(ctx context.Context, sessionID string) error {
	var primaryErr error
	if s.primary != nil {
		primaryErr = s.primary.Delete(ctx, sessionID)
	}

	if err := s.fallback.Delete(ctx, sessionID); err != nil {
		return err
	}

	return primaryErr
}

// Ping probes the shared store and records availability transitions.
// Without a shared store it reports healthy: the fallback has no remote
// dependency to lose.
func (s *FailoverSessionStore) Ping(ctx context.Context) error {
	if s.primary == nil {
		return nil
	}

	pinger, ok := s.primary.(Pinger)
	if !ok {
		return nil
	}

	if err := pinger.Ping(ctx); err != nil {
		s.markDegraded(err)
		return err
	}

	if s.degraded.CompareAndSwap(true, false) {
		s.logger.Info().Str("func", "FailoverSessionStore.Ping").Msg("shared session store recovered")
	}

	return nil
}

// Degraded reports whether the last shared-store interaction failed.
func (s *FailoverSessionStore) Degraded() bool {
	return s.degraded.Load()
}

func (s *FailoverSessionStore) markDegraded(err error) {
	if s.degraded.CompareAndSwap(false, true) {
		s.logger.Warn().Err(err).Str("func", "FailoverSessionStore.markDegraded").Msg("shared session store unavailable, using in-process fallback")
	}
}
