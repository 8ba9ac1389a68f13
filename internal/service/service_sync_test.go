// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSessions validates every token against one canned session.
type stubSessions struct {
	session models.SyncSession
	err     error
}

func (s *stubSessions) StartSession(_ context.Context, _ int64, _ string, _ int) (models.SyncSessionInfo, error) {
	return models.SyncSessionInfo{}, nil
}

func (s *stubSessions) LoadAndValidate(_ context.Context, sessionID string, ownerID int64, clientID string) (models.SyncSession, error) {
	if s.err != nil {
		return models.SyncSession{}, s.err
	}
	if sessionID != s.session.SessionID || ownerID != s.session.OwnerID || clientID != s.session.ClientID {
		return models.SyncSession{}, ErrSessionForbidden
	}
	return s.session, nil
}

// stubCollector returns a fixed record stream.
type stubCollector struct {
	records []models.EntityEnvelope
	err     error
}

func (c *stubCollector) Collect(_ context.Context, _ int64) ([]models.EntityEnvelope, error) {
	return c.records, c.err
}

func deletedEnvelope(id string, version int64) models.EntityEnvelope {
	deletedAt := time.Now()
	return models.EntityEnvelope{
		EntityType:    models.EntitySummary,
		ID:            id,
		ServerVersion: version,
		UpdatedAt:     deletedAt,
		DeletedAt:     &deletedAt,
	}
}

func liveEnvelope(id string, version int64) models.EntityEnvelope {
	return models.EntityEnvelope{
		EntityType:    models.EntitySummary,
		ID:            id,
		ServerVersion: version,
		UpdatedAt:     time.Now(),
		Payload:       map[string]any{"title": "t"},
	}
}

func newTestSyncSvc(records []models.EntityEnvelope) (SyncService, *stubSessions) {
	sessions := &stubSessions{
		session: models.SyncSession{
			SessionID: "token-1",
			OwnerID:   7,
			ClientID:  "device-a",
			PageLimit: 100,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
	svc := NewSyncService(sessions, &stubCollector{records: records}, testSyncConfig(), logger.Nop())
	return svc, sessions
}

func TestGetFull_DeliversEverythingIncludingDeleted(t *testing.T) {
	records := []models.EntityEnvelope{
		liveEnvelope("1", 1),
		deletedEnvelope("2", 2),
		liveEnvelope("3", 3),
	}
	svc, _ := newTestSyncSvc(records)

	result, err := svc.GetFull(context.Background(), 7, models.FullSyncRequest{
		SessionID: "token-1",
		ClientID:  "device-a",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-1", result.SessionID)
	assert.Len(t, result.Items, 3)
	assert.False(t, result.HasMore)
	assert.Equal(t, int64(3), result.NextSince)
	assert.Equal(t, 3, result.Pagination.Total)
	assert.Equal(t, 100, result.Pagination.Limit)
	assert.Zero(t, result.Pagination.Offset)
}

func TestGetFull_Paged(t *testing.T) {
	records := []models.EntityEnvelope{
		liveEnvelope("1", 1),
		liveEnvelope("2", 2),
		liveEnvelope("3", 3),
	}
	svc, _ := newTestSyncSvc(records)

	result, err := svc.GetFull(context.Background(), 7, models.FullSyncRequest{
		SessionID: "token-1",
		ClientID:  "device-a",
		Limit:     10, // clamped to the configured minimum anyway
	})
	require.NoError(t, err)

	assert.Len(t, result.Items, 3)
	assert.False(t, result.HasMore)
}

func TestGetFull_SessionRejected(t *testing.T) {
	svc, sessions := newTestSyncSvc(nil)
	sessions.err = ErrSessionExpired

	_, err := svc.GetFull(context.Background(), 7, models.FullSyncRequest{SessionID: "token-1", ClientID: "device-a"})
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestGetDelta_PartitionsByDeletion(t *testing.T) {
	records := []models.EntityEnvelope{
		liveEnvelope("1", 1),
		liveEnvelope("2", 4),
		deletedEnvelope("3", 5),
	}
	svc, _ := newTestSyncSvc(records)

	result, err := svc.GetDelta(context.Background(), 7, models.DeltaSyncRequest{
		SessionID: "token-1",
		ClientID:  "device-a",
		Since:     1,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Since)
	require.Len(t, result.Created, 1)
	assert.Equal(t, "2", result.Created[0].ID)
	require.Len(t, result.Deleted, 1)
	assert.Equal(t, "3", result.Deleted[0].ID)
	assert.Empty(t, result.Updated)
	assert.NotNil(t, result.Updated)
	assert.Equal(t, int64(5), result.NextSince)
}

func TestGetDelta_WatermarkExcludesEqualVersion(t *testing.T) {
	records := []models.EntityEnvelope{
		liveEnvelope("1", 3),
		liveEnvelope("2", 4),
	}
	svc, _ := newTestSyncSvc(records)

	result, err := svc.GetDelta(context.Background(), 7, models.DeltaSyncRequest{
		SessionID: "token-1",
		ClientID:  "device-a",
		Since:     3,
	})
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, "2", result.Created[0].ID)
}

func TestGetDelta_NothingNew(t *testing.T) {
	records := []models.EntityEnvelope{liveEnvelope("1", 3)}
	svc, _ := newTestSyncSvc(records)

	result, err := svc.GetDelta(context.Background(), 7, models.DeltaSyncRequest{
		SessionID: "token-1",
		ClientID:  "device-a",
		Since:     3,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Created)
	assert.Empty(t, result.Deleted)
	assert.False(t, result.HasMore)
	// An empty page keeps the cursor where it was.
	assert.Equal(t, int64(3), result.NextSince)
}

func TestGetDelta_NegativeSince(t *testing.T) {
	svc, _ := newTestSyncSvc(nil)

	_, err := svc.GetDelta(context.Background(), 7, models.DeltaSyncRequest{
		SessionID: "token-1",
		ClientID:  "device-a",
		Since:     -1,
	})
	assert.ErrorIs(t, err, ErrValidationBadSince)
}
