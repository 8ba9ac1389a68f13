// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/adapter"
	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/mock"
	"github.com/MKhiriev/go-digest-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestClientSync(t *testing.T) (*mock.MockLocalMirrorRepository, *mock.MockSyncAdapter, ClientSyncService) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mirror := mock.NewMockLocalMirrorRepository(ctrl)
	server := mock.NewMockSyncAdapter(ctrl)
	svc := NewClientSyncService(mirror, server, config.ClientApp{ClientID: "device-a"}, logger.Nop())

	return mirror, server, svc
}

func freshSession() models.SyncSessionInfo {
	return models.SyncSessionInfo{
		SessionID:    "token-1",
		DefaultLimit: 100,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func mirrorEnvelope(id string, version int64) models.EntityEnvelope {
	return models.EntityEnvelope{
		EntityType:    models.EntitySummary,
		ID:            id,
		ServerVersion: version,
		UpdatedAt:     time.Now(),
		Payload:       map[string]any{"title": "t-" + id, "is_read": false},
	}
}

func TestClientSync_BootstrapAbsorbsFullPage(t *testing.T) {
	mirror, server, svc := newTestClientSync(t)

	items := []models.EntityEnvelope{mirrorEnvelope("1", 1), mirrorEnvelope("2", 3)}

	server.EXPECT().StartSession(gomock.Any(), models.StartSessionRequest{ClientID: "device-a"}).Return(freshSession(), nil)
	server.EXPECT().FetchFull(gomock.Any(), models.FullSyncRequest{SessionID: "token-1", ClientID: "device-a"}).
		Return(models.FullSyncResult{SessionID: "token-1", Items: items, NextSince: 3, HasMore: false}, nil)
	mirror.EXPECT().UpsertEnvelopes(gomock.Any(), items[0], items[1]).Return(nil)
	mirror.EXPECT().SetWatermark(gomock.Any(), int64(3)).Return(nil)

	require.NoError(t, svc.Bootstrap(context.Background()))
}

func TestClientSync_BootstrapDrainsRestThroughDelta(t *testing.T) {
	mirror, server, svc := newTestClientSync(t)

	first := mirrorEnvelope("1", 1)
	second := mirrorEnvelope("2", 5)

	server.EXPECT().StartSession(gomock.Any(), gomock.Any()).Return(freshSession(), nil)
	server.EXPECT().FetchFull(gomock.Any(), gomock.Any()).
		Return(models.FullSyncResult{Items: []models.EntityEnvelope{first}, NextSince: 1, HasMore: true}, nil)
	mirror.EXPECT().UpsertEnvelopes(gomock.Any(), first).Return(nil)
	mirror.EXPECT().SetWatermark(gomock.Any(), int64(1)).Return(nil)

	// остаток потока докачивается дельтами от выданного водяного знака
	server.EXPECT().FetchDelta(gomock.Any(), models.DeltaSyncRequest{SessionID: "token-1", ClientID: "device-a", Since: 1}).
		Return(models.DeltaSyncResult{Created: []models.EntityEnvelope{second}, NextSince: 5, HasMore: false}, nil)
	mirror.EXPECT().UpsertEnvelopes(gomock.Any(), second).Return(nil)
	mirror.EXPECT().SetWatermark(gomock.Any(), int64(5)).Return(nil)

	require.NoError(t, svc.Bootstrap(context.Background()))
}

func TestClientSync_SyncFallsBackToBootstrapOnFreshMirror(t *testing.T) {
	mirror, server, svc := newTestClientSync(t)

	mirror.EXPECT().PendingReadMarks(gomock.Any()).Return(nil, nil)
	mirror.EXPECT().Watermark(gomock.Any()).Return(int64(0), nil)

	server.EXPECT().StartSession(gomock.Any(), gomock.Any()).Return(freshSession(), nil)
	server.EXPECT().FetchFull(gomock.Any(), gomock.Any()).
		Return(models.FullSyncResult{NextSince: 0, HasMore: false}, nil)
	mirror.EXPECT().SetWatermark(gomock.Any(), int64(0)).Return(nil)

	require.NoError(t, svc.Sync(context.Background()))
}

func TestClientSync_SyncPullsDeltaPages(t *testing.T) {
	mirror, server, svc := newTestClientSync(t)

	created := mirrorEnvelope("3", 8)
	deleted := models.EntityEnvelope{EntityType: models.EntitySummary, ID: "4", ServerVersion: 9, UpdatedAt: time.Now(), DeletedAt: ptrTime(time.Now())}
	tail := mirrorEnvelope("5", 11)

	mirror.EXPECT().PendingReadMarks(gomock.Any()).Return(nil, nil)
	mirror.EXPECT().Watermark(gomock.Any()).Return(int64(7), nil)

	server.EXPECT().StartSession(gomock.Any(), gomock.Any()).Return(freshSession(), nil)
	server.EXPECT().FetchDelta(gomock.Any(), models.DeltaSyncRequest{SessionID: "token-1", ClientID: "device-a", Since: 7}).
		Return(models.DeltaSyncResult{Created: []models.EntityEnvelope{created}, Deleted: []models.EntityEnvelope{deleted}, NextSince: 9, HasMore: true}, nil)
	mirror.EXPECT().UpsertEnvelopes(gomock.Any(), created, deleted).Return(nil)
	mirror.EXPECT().SetWatermark(gomock.Any(), int64(9)).Return(nil)

	server.EXPECT().FetchDelta(gomock.Any(), models.DeltaSyncRequest{SessionID: "token-1", ClientID: "device-a", Since: 9}).
		Return(models.DeltaSyncResult{Created: []models.EntityEnvelope{tail}, NextSince: 11, HasMore: false}, nil)
	mirror.EXPECT().UpsertEnvelopes(gomock.Any(), tail).Return(nil)
	mirror.EXPECT().SetWatermark(gomock.Any(), int64(11)).Return(nil)

	require.NoError(t, svc.Sync(context.Background()))
}

func TestClientSync_PushLocalEditsSettlesVerdicts(t *testing.T) {
	mirror, server, svc := newTestClientSync(t)

	marks := []models.PendingReadMark{
		{ID: "1", IsRead: true, LastSeenVersion: 3},
		{ID: "2", IsRead: true, LastSeenVersion: 4},
		{ID: "3", IsRead: false, LastSeenVersion: 2},
	}
	snapshot := mirrorEnvelope("2", 6)

	mirror.EXPECT().PendingReadMarks(gomock.Any()).Return(marks, nil)
	server.EXPECT().StartSession(gomock.Any(), gomock.Any()).Return(freshSession(), nil)
	server.EXPECT().Apply(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.ApplyRequest) (models.ApplyResult, error) {
			require.Len(t, req.Changes, 3)
			assert.Equal(t, "token-1", req.SessionID)
			assert.Equal(t, models.ActionUpdate, req.Changes[0].Action)
			assert.Equal(t, int64(3), req.Changes[0].LastSeenVersion)
			assert.Equal(t, map[string]any{"is_read": true}, req.Changes[0].Payload)

			return models.ApplyResult{Results: []models.SyncApplyResult{
				{EntityType: models.EntitySummary, ID: "1", Status: models.StatusApplied, ServerVersion: 4},
				{EntityType: models.EntitySummary, ID: "2", Status: models.StatusConflict, ServerVersion: 6, ServerSnapshot: &snapshot, ErrorCode: models.CodeVersionConflict},
				{EntityType: models.EntitySummary, ID: "3", Status: models.StatusInvalid, ErrorCode: models.CodeNotFound},
			}}, nil
		})

	// конфликт перезаписывается серверным снимком, все отметки снимаются
	mirror.EXPECT().UpsertEnvelopes(gomock.Any(), snapshot).Return(nil)
	mirror.EXPECT().ClearPendingReadMark(gomock.Any(), "1").Return(nil)
	mirror.EXPECT().ClearPendingReadMark(gomock.Any(), "2").Return(nil)
	mirror.EXPECT().ClearPendingReadMark(gomock.Any(), "3").Return(nil)

	require.NoError(t, svc.PushLocalEdits(context.Background()))
}

func TestClientSync_PushLocalEditsNothingPending(t *testing.T) {
	mirror, _, svc := newTestClientSync(t)

	mirror.EXPECT().PendingReadMarks(gomock.Any()).Return(nil, nil)

	require.NoError(t, svc.PushLocalEdits(context.Background()))
}

func TestClientSync_RenegotiatesRejectedSession(t *testing.T) {
	mirror, server, svc := newTestClientSync(t)

	stale := fmt.Errorf("fetch full page: %w", adapter.ErrNotFound)

	gomock.InOrder(
		server.EXPECT().StartSession(gomock.Any(), gomock.Any()).Return(freshSession(), nil),
		server.EXPECT().FetchFull(gomock.Any(), gomock.Any()).Return(models.FullSyncResult{}, stale),
		server.EXPECT().StartSession(gomock.Any(), gomock.Any()).
			Return(models.SyncSessionInfo{SessionID: "token-2", ExpiresAt: time.Now().Add(time.Hour)}, nil),
		server.EXPECT().FetchFull(gomock.Any(), models.FullSyncRequest{SessionID: "token-2", ClientID: "device-a"}).
			Return(models.FullSyncResult{NextSince: 2, HasMore: false}, nil),
	)
	mirror.EXPECT().SetWatermark(gomock.Any(), int64(2)).Return(nil)

	require.NoError(t, svc.Bootstrap(context.Background()))
}

func TestClientSync_SyncAbortsWhenPushFails(t *testing.T) {
	mirror, _, svc := newTestClientSync(t)

	boom := fmt.Errorf("local db gone")
	mirror.EXPECT().PendingReadMarks(gomock.Any()).Return(nil, boom)

	err := svc.Sync(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestClientSync_MarkSummaryRead(t *testing.T) {
	mirror, _, svc := newTestClientSync(t)

	mirror.EXPECT().MarkSummaryRead(gomock.Any(), "7", true).Return(nil)

	require.NoError(t, svc.MarkSummaryRead(context.Background(), "7", true))
}

func TestClientSync_ListSummariesSkipsDeleted(t *testing.T) {
	mirror, _, svc := newTestClientSync(t)

	gone := time.Now()
	mirror.EXPECT().ListEnvelopes(gomock.Any(), models.EntitySummary).Return([]models.EntityEnvelope{
		mirrorEnvelope("1", 1),
		{EntityType: models.EntitySummary, ID: "2", ServerVersion: 2, DeletedAt: &gone},
		mirrorEnvelope("3", 3),
	}, nil)

	live, err := svc.ListSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, "1", live[0].ID)
	assert.Equal(t, "3", live[1].ID)
}

func ptrTime(t time.Time) *time.Time { return &t }
