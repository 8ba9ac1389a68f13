// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/models"
)

// summaryRepository is the PostgreSQL-backed summary collaborator. It is
// both an [EnvelopeSource] for record collection and the
// [SummaryRepository] write path for apply.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (owner_id, summary id, etc.).
type summaryRepository struct {
	*DB
	logger *logger.Logger
}

// NewSummaryRepository constructs the summary collaborator backed by the
// provided database connection and logger.
func NewSummaryRepository(db *DB, logger *logger.Logger) *summaryRepository {
	return &summaryRepository{
		DB:     db,
		logger: logger,
	}
}

// EntityType implements [EnvelopeSource].
func (r *summaryRepository) EntityType() models.EntityType {
	return models.EntitySummary
}

// ListEnvelopes implements [EnvelopeSource]. Soft-deleted summaries are
// included: their deletion is a versioned event clients must observe.
func (r *summaryRepository) ListEnvelopes(ctx context.Context, ownerID int64) ([]models.EntityEnvelope, error) {
	return listEnvelopes(ctx, r.DB, "summaries", summaryColumns, ownerID, "summaryRepository.ListEnvelopes",
		func(row rowScanner) (models.EntityEnvelope, error) {
			summary, err := scanSummary(row)
			return summary.ToEnvelope(), err
		})
}

// GetSummary implements [SummaryRepository].
func (r *summaryRepository) GetSummary(ctx context.Context, ownerID, id int64) (models.Summary, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetSummaryQuery(ownerID, id)
	if err != nil {
		log.Err(err).Str("func", "summaryRepository.GetSummary").Int64("owner_id", ownerID).Int64("id", id).Msg("failed to build query")
		return models.Summary{}, err
	}

	summary, err := scanSummary(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Summary{}, ErrSummaryNotFound
		}
		log.Err(err).
			Str("func", "summaryRepository.GetSummary").
			Int64("owner_id", ownerID).
			Int64("id", id).
			Bool("retryable", r.retryable(err)).
			Msg("failed to get summary")
		return models.Summary{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return summary, nil
}

// UpdateReadFlag implements [SummaryRepository]. The statement writes only
// when the row still carries expectedVersion; a zero-row match is
// disambiguated into [ErrVersionConflict] or [ErrSummaryNotFound] by a
// follow-up read.
func (r *summaryRepository) UpdateReadFlag(ctx context.Context, ownerID, id, expectedVersion int64, isRead bool) (int64, error) {
	log := logger.FromContext(ctx)

	var newVersion int64
	err := r.DB.QueryRowContext(ctx, updateSummaryReadFlag, isRead, id, ownerID, expectedVersion).Scan(&newVersion)
	if err == nil {
		return newVersion, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).
			Str("func", "summaryRepository.UpdateReadFlag").
			Int64("owner_id", ownerID).
			Int64("id", id).
			Bool("retryable", r.retryable(err)).
			Msg("failed to update summary read flag")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return 0, r.classifyMissedWrite(ctx, ownerID, id)
}

// SoftDelete implements [SummaryRepository]. Deletion goes through the
// same version-checked write path as updates, so the transition to
// soft-deleted bumps server_version like any other mutation.
func (r *summaryRepository) SoftDelete(ctx context.Context, ownerID, id, expectedVersion int64) (int64, error) {
	log := logger.FromContext(ctx)

	var newVersion int64
	err := r.DB.QueryRowContext(ctx, softDeleteSummary, id, ownerID, expectedVersion).Scan(&newVersion)
	if err == nil {
		return newVersion, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).
			Str("func", "summaryRepository.SoftDelete").
			Int64("owner_id", ownerID).
			Int64("id", id).
			Bool("retryable", r.retryable(err)).
			Msg("failed to soft delete summary")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return 0, r.classifyMissedWrite(ctx, ownerID, id)
}

// classifyMissedWrite distinguishes the two reasons a CAS statement can
// match zero rows: the row is gone entirely, or another writer moved its
// version first.
func (r *summaryRepository) classifyMissedWrite(ctx context.Context, ownerID, id int64) error {
	if _, err := r.GetSummary(ctx, ownerID, id); err != nil {
		if errors.Is(err, ErrSummaryNotFound) {
			return ErrSummaryNotFound
		}
		return err
	}

	return ErrVersionConflict
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (models.Summary, error) {
	var summary models.Summary
	err := row.Scan(
		&summary.ID,
		&summary.OwnerID,
		&summary.RequestID,
		&summary.Title,
		&summary.SourceURL,
		&summary.Content,
		&summary.IsRead,
		&summary.ServerVersion,
		&summary.UpdatedAt,
		&summary.DeletedAt,
	)
	return summary, err
}
