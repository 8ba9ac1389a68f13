// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/store"
	"github.com/MKhiriev/go-digest-sync/models"
)

// summaryMutableFields is the whitelist of summary fields a client may
// change through apply. Everything else on the record is server-produced
// content that devices only mirror.
var summaryMutableFields = map[string]struct{}{
	"is_read": {},
}

// applyService pushes client edits into collaborator storage. Items in a
// batch are independent: each gets its own verdict, and a conflict or a
// malformed item never rolls back its neighbours.
type applyService struct {
	sessions  SessionService
	summaries store.SummaryRepository
	logger    *logger.Logger
}

func NewApplyService(sessions SessionService, summaries store.SummaryRepository, logger *logger.Logger) ApplyService {
	return &applyService{
		sessions:  sessions,
		summaries: summaries,
		logger:    logger,
	}
}

// Apply implements [ApplyService]. Infrastructure failures (database
// down, session store errors) abort the whole call; everything that is
// the client's fault is reported per item instead.
func (s *applyService) Apply(ctx context.Context, ownerID int64, req models.ApplyRequest) (models.ApplyResult, error) {
	log := logger.FromContext(ctx)

	if len(req.Changes) == 0 {
		return models.ApplyResult{}, ErrValidationNoChanges
	}

	session, err := s.sessions.LoadAndValidate(ctx, req.SessionID, ownerID, req.ClientID)
	if err != nil {
		return models.ApplyResult{}, err
	}

	results := make([]models.SyncApplyResult, 0, len(req.Changes))
	var conflicts []models.SyncApplyResult

	for _, item := range req.Changes {
		result, itemErr := s.applyItem(ctx, ownerID, item)
		if itemErr != nil {
			return models.ApplyResult{}, itemErr
		}

		results = append(results, result)
		if result.Status == models.StatusConflict {
			conflicts = append(conflicts, result)
		}
	}

	log.Debug().
		Str("func", "applyService.Apply").
		Int64("owner_id", ownerID).
		Int("changes", len(req.Changes)).
		Int("conflicts", len(conflicts)).
		Msg("apply batch processed")

	return models.ApplyResult{
		SessionID: session.SessionID,
		Results:   results,
		Conflicts: conflicts,
	}, nil
}

// applyItem produces the verdict for one change. The error return is for
// infrastructure failures only; client-fault outcomes come back inside
// the result.
func (s *applyService) applyItem(ctx context.Context, ownerID int64, item models.SyncApplyItem) (models.SyncApplyResult, error) {
	result := models.SyncApplyResult{
		EntityType: item.EntityType,
		ID:         item.ID,
	}

	if item.EntityType != models.EntitySummary {
		result.Status = models.StatusInvalid
		result.ErrorCode = models.CodeUnsupportedEntity
		return result, nil
	}

	if item.Action != models.ActionUpdate && item.Action != models.ActionDelete {
		result.Status = models.StatusInvalid
		result.ErrorCode = models.CodeInvalidAction
		return result, nil
	}

	if item.Action == models.ActionUpdate {
		if code, ok := validateSummaryPayload(item.Payload); !ok {
			result.Status = models.StatusInvalid
			result.ErrorCode = code
			return result, nil
		}
	}

	id, err := strconv.ParseInt(item.ID, 10, 64)
	if err != nil {
		result.Status = models.StatusInvalid
		result.ErrorCode = models.CodeNotFound
		return result, nil
	}

	current, err := s.summaries.GetSummary(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, store.ErrSummaryNotFound) {
			result.Status = models.StatusInvalid
			result.ErrorCode = models.CodeNotFound
			return result, nil
		}
		return models.SyncApplyResult{}, fmt.Errorf("failed to load summary for apply: %w", err)
	}

	if current.DeletedAt != nil {
		// Deleting what is already deleted is an idempotent success; any
		// other edit targets a record the client should treat as gone.
		if item.Action == models.ActionDelete {
			result.Status = models.StatusApplied
			result.ServerVersion = current.ServerVersion
			return result, nil
		}
		result.Status = models.StatusInvalid
		result.ErrorCode = models.CodeNotFound
		return result, nil
	}

	if current.ServerVersion > item.LastSeenVersion {
		return s.conflictResult(result, current), nil
	}

	var newVersion int64
	switch item.Action {
	case models.ActionUpdate:
		isRead := item.Payload["is_read"].(bool)
		newVersion, err = s.summaries.UpdateReadFlag(ctx, ownerID, id, item.LastSeenVersion, isRead)
	case models.ActionDelete:
		newVersion, err = s.summaries.SoftDelete(ctx, ownerID, id, item.LastSeenVersion)
	}

	if err != nil {
		switch {
		case errors.Is(err, store.ErrVersionConflict):
			// Raced: another writer moved the version between our read
			// and the guarded write. Re-read for the snapshot.
			current, refetchErr := s.summaries.GetSummary(ctx, ownerID, id)
			if refetchErr != nil {
				return models.SyncApplyResult{}, fmt.Errorf("failed to re-read summary after conflict: %w", refetchErr)
			}
			return s.conflictResult(result, current), nil
		case errors.Is(err, store.ErrSummaryNotFound):
			result.Status = models.StatusInvalid
			result.ErrorCode = models.CodeNotFound
			return result, nil
		}
		return models.SyncApplyResult{}, fmt.Errorf("failed to apply change to summary: %w", err)
	}

	result.Status = models.StatusApplied
	result.ServerVersion = newVersion
	return result, nil
}

func (s *applyService) conflictResult(result models.SyncApplyResult, current models.Summary) models.SyncApplyResult {
	snapshot := current.ToEnvelope()

	result.Status = models.StatusConflict
	result.ErrorCode = models.CodeVersionConflict
	result.ServerVersion = current.ServerVersion
	result.ServerSnapshot = &snapshot
	return result
}

// validateSummaryPayload checks an update payload against the mutable
// whitelist. Empty payloads and unknown or mistyped fields are client
// bugs, reported as INVALID_FIELDS.
func validateSummaryPayload(payload map[string]any) (models.ApplyErrorCode, bool) {
	if len(payload) == 0 {
		return models.CodeInvalidFields, false
	}

	for field, value := range payload {
		if _, ok := summaryMutableFields[field]; !ok {
			return models.CodeInvalidFields, false
		}
		if field == "is_read" {
			if _, ok := value.(bool); !ok {
				return models.CodeInvalidFields, false
			}
		}
	}

	return "", true
}
