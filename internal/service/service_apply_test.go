// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/mock"
	"github.com/MKhiriev/go-digest-sync/internal/store"
	"github.com/MKhiriev/go-digest-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestApplySvc(t *testing.T, ctrl *gomock.Controller) (ApplyService, *mock.MockSummaryRepository) {
	t.Helper()
	mockRepo := mock.NewMockSummaryRepository(ctrl)
	sessions := &stubSessions{
		session: models.SyncSession{
			SessionID: "token-1",
			OwnerID:   7,
			ClientID:  "device-a",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
	return NewApplyService(sessions, mockRepo, logger.Nop()), mockRepo
}

func applyRequest(items ...models.SyncApplyItem) models.ApplyRequest {
	return models.ApplyRequest{
		SessionID: "token-1",
		ClientID:  "device-a",
		Changes:   items,
	}
}

func liveSummary(id, version int64) models.Summary {
	return models.Summary{
		ID:            id,
		OwnerID:       7,
		RequestID:     10,
		Title:         "t",
		SourceURL:     "https://a.example",
		Content:       "text",
		ServerVersion: version,
		UpdatedAt:     time.Now(),
	}
}

func TestApply_UpdateApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestApplySvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().GetSummary(ctx, int64(7), int64(1)).Return(liveSummary(1, 3), nil)
	mockRepo.EXPECT().UpdateReadFlag(ctx, int64(7), int64(1), int64(3), true).Return(int64(4), nil)

	result, err := svc.Apply(ctx, 7, applyRequest(models.SyncApplyItem{
		EntityType:      models.EntitySummary,
		ID:              "1",
		Action:          models.ActionUpdate,
		LastSeenVersion: 3,
		Payload:         map[string]any{"is_read": true},
	}))
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, models.StatusApplied, result.Results[0].Status)
	assert.Equal(t, int64(4), result.Results[0].ServerVersion)
	assert.Empty(t, result.Results[0].ErrorCode)
	assert.Nil(t, result.Conflicts)
}

func TestApply_DeleteApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestApplySvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().GetSummary(ctx, int64(7), int64(2)).Return(liveSummary(2, 5), nil)
	mockRepo.EXPECT().SoftDelete(ctx, int64(7), int64(2), int64(5)).Return(int64(6), nil)

	result, err := svc.Apply(ctx, 7, applyRequest(models.SyncApplyItem{
		EntityType:      models.EntitySummary,
		ID:              "2",
		Action:          models.ActionDelete,
		LastSeenVersion: 5,
	}))
	require.NoError(t, err)

	assert.Equal(t, models.StatusApplied, result.Results[0].Status)
	assert.Equal(t, int64(6), result.Results[0].ServerVersion)
}

func TestApply_StaleVersionConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestApplySvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().GetSummary(ctx, int64(7), int64(1)).Return(liveSummary(1, 5), nil)

	result, err := svc.Apply(ctx, 7, applyRequest(models.SyncApplyItem{
		EntityType:      models.EntitySummary,
		ID:              "1",
		Action:          models.ActionUpdate,
		LastSeenVersion: 3,
		Payload:         map[string]any{"is_read": true},
	}))
	require.NoError(t, err)

	got := result.Results[0]
	assert.Equal(t, models.StatusConflict, got.Status)
	assert.Equal(t, models.CodeVersionConflict, got.ErrorCode)
	assert.Equal(t, int64(5), got.ServerVersion)
	require.NotNil(t, got.ServerSnapshot)
	assert.Equal(t, int64(5), got.ServerSnapshot.ServerVersion)

	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, got, result.Conflicts[0])
}

func TestApply_RacedWriteConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestApplySvc(t, ctrl)
	ctx := context.Background()

	// Version matches on first read, but another writer lands between
	// the read and the guarded UPDATE.
	mockRepo.EXPECT().GetSummary(ctx, int64(7), int64(1)).Return(liveSummary(1, 3), nil)
	mockRepo.EXPECT().UpdateReadFlag(ctx, int64(7), int64(1), int64(3), true).Return(int64(0), store.ErrVersionConflict)
	mockRepo.EXPECT().GetSummary(ctx, int64(7), int64(1)).Return(liveSummary(1, 4), nil)

	result, err := svc.Apply(ctx, 7, applyRequest(models.SyncApplyItem{
		EntityType:      models.EntitySummary,
		ID:              "1",
		Action:          models.ActionUpdate,
		LastSeenVersion: 3,
		Payload:         map[string]any{"is_read": true},
	}))
	require.NoError(t, err)

	got := result.Results[0]
	assert.Equal(t, models.StatusConflict, got.Status)
	assert.Equal(t, int64(4), got.ServerVersion)
}

func TestApply_UnsupportedEntity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestApplySvc(t, ctrl)

	tests := []models.EntityType{
		models.EntityPreference,
		models.EntityRequest,
		models.EntityCrawl,
		models.EntityModelCall,
		models.EntityType("bogus"),
	}

	for _, kind := range tests {
		result, err := svc.Apply(context.Background(), 7, applyRequest(models.SyncApplyItem{
			EntityType:      kind,
			ID:              "1",
			Action:          models.ActionUpdate,
			LastSeenVersion: 1,
			Payload:         map[string]any{"is_read": true},
		}))
		require.NoError(t, err)

		assert.Equal(t, models.StatusInvalid, result.Results[0].Status, string(kind))
		assert.Equal(t, models.CodeUnsupportedEntity, result.Results[0].ErrorCode, string(kind))
	}
}

func TestApply_InvalidAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestApplySvc(t, ctrl)

	result, err := svc.Apply(context.Background(), 7, applyRequest(models.SyncApplyItem{
		EntityType:      models.EntitySummary,
		ID:              "1",
		Action:          models.ApplyAction("create"),
		LastSeenVersion: 1,
	}))
	require.NoError(t, err)

	assert.Equal(t, models.StatusInvalid, result.Results[0].Status)
	assert.Equal(t, models.CodeInvalidAction, result.Results[0].ErrorCode)
}

func TestApply_InvalidFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestApplySvc(t, ctrl)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "empty payload", payload: nil},
		{name: "unknown field", payload: map[string]any{"title": "hacked"}},
		{name: "mixed with unknown field", payload: map[string]any{"is_read": true, "content": "x"}},
		{name: "wrong type", payload: map[string]any{"is_read": "yes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Apply(context.Background(), 7, applyRequest(models.SyncApplyItem{
				EntityType:      models.EntitySummary,
				ID:              "1",
				Action:          models.ActionUpdate,
				LastSeenVersion: 1,
				Payload:         tt.payload,
			}))
			require.NoError(t, err)

			assert.Equal(t, models.StatusInvalid, result.Results[0].Status)
			assert.Equal(t, models.CodeInvalidFields, result.Results[0].ErrorCode)
		})
	}
}

func TestApply_RecordNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestApplySvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().GetSummary(ctx, int64(7), int64(99)).Return(models.Summary{}, store.ErrSummaryNotFound)

	result, err := svc.Apply(ctx, 7, applyRequest(models.SyncApplyItem{
		EntityType:      models.EntitySummary,
		ID:              "99",
		Action:          models.ActionDelete,
		LastSeenVersion: 1,
	}))
	require.NoError(t, err)

	assert.Equal(t, models.StatusInvalid, result.Results[0].Status)
	assert.Equal(t, models.CodeNotFound, result.Results[0].ErrorCode)
}

func TestApply_UnparsableID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestApplySvc(t, ctrl)

	result, err := svc.Apply(context.Background(), 7, applyRequest(models.SyncApplyItem{
		EntityType:      models.EntitySummary,
		ID:              "not-a-number",
		Action:          models.ActionDelete,
		LastSeenVersion: 1,
	}))
	require.NoError(t, err)

	assert.Equal(t, models.StatusInvalid, result.Results[0].Status)
	assert.Equal(t, models.CodeNotFound, result.Results[0].ErrorCode)
}

func TestApply_DeleteAlreadyDeletedIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestApplySvc(t, ctrl)
	ctx := context.Background()

	deletedAt := time.Now()
	gone := liveSummary(1, 4)
	gone.DeletedAt = &deletedAt

	mockRepo.EXPECT().GetSummary(ctx, int64(7), int64(1)).Return(gone, nil)

	result, err := svc.Apply(ctx, 7, applyRequest(models.SyncApplyItem{
		EntityType:      models.EntitySummary,
		ID:              "1",
		Action:          models.ActionDelete,
		LastSeenVersion: 4,
	}))
	require.NoError(t, err)

	assert.Equal(t, models.StatusApplied, result.Results[0].Status)
	assert.Equal(t, int64(4), result.Results[0].ServerVersion)
}

func TestApply_UpdateDeletedIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestApplySvc(t, ctrl)
	ctx := context.Background()

	deletedAt := time.Now()
	gone := liveSummary(1, 4)
	gone.DeletedAt = &deletedAt

	mockRepo.EXPECT().GetSummary(ctx, int64(7), int64(1)).Return(gone, nil)

	result, err := svc.Apply(ctx, 7, applyRequest(models.SyncApplyItem{
		EntityType:      models.EntitySummary,
		ID:              "1",
		Action:          models.ActionUpdate,
		LastSeenVersion: 4,
		Payload:         map[string]any{"is_read": true},
	}))
	require.NoError(t, err)

	assert.Equal(t, models.StatusInvalid, result.Results[0].Status)
	assert.Equal(t, models.CodeNotFound, result.Results[0].ErrorCode)
}

func TestApply_ItemsAreIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestApplySvc(t, ctrl)
	ctx := context.Background()

	// First item conflicts, second still applies.
	mockRepo.EXPECT().GetSummary(ctx, int64(7), int64(1)).Return(liveSummary(1, 9), nil)
	mockRepo.EXPECT().GetSummary(ctx, int64(7), int64(2)).Return(liveSummary(2, 1), nil)
	mockRepo.EXPECT().UpdateReadFlag(ctx, int64(7), int64(2), int64(1), true).Return(int64(2), nil)

	result, err := svc.Apply(ctx, 7, applyRequest(
		models.SyncApplyItem{
			EntityType:      models.EntitySummary,
			ID:              "1",
			Action:          models.ActionUpdate,
			LastSeenVersion: 3,
			Payload:         map[string]any{"is_read": true},
		},
		models.SyncApplyItem{
			EntityType:      models.EntitySummary,
			ID:              "2",
			Action:          models.ActionUpdate,
			LastSeenVersion: 1,
			Payload:         map[string]any{"is_read": true},
		},
	))
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	assert.Equal(t, models.StatusConflict, result.Results[0].Status)
	assert.Equal(t, models.StatusApplied, result.Results[1].Status)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "1", result.Conflicts[0].ID)
}

func TestApply_EmptyBatchRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestApplySvc(t, ctrl)

	_, err := svc.Apply(context.Background(), 7, applyRequest())
	assert.ErrorIs(t, err, ErrValidationNoChanges)
}
