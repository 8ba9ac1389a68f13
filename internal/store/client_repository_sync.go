package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/models"
)

// syncStateWatermark is the sync_state key holding the delta cursor.
const syncStateWatermark = "watermark"

type localMirrorRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalMirrorRepository(db *DB, logger *logger.Logger) LocalMirrorRepository {
	return &localMirrorRepository{
		DB:     db,
		logger: logger,
	}
}

// UpsertEnvelopes implements [LocalMirrorRepository]. Envelopes land
// last-writer-wins: the server's copy is authoritative, so no version
// comparison happens here.
func (l *localMirrorRepository) UpsertEnvelopes(ctx context.Context, envelopes ...models.EntityEnvelope) error {
	log := logger.FromContext(ctx)

	for _, envelope := range envelopes {
		payload, err := marshalMirrorPayload(envelope.Payload)
		if err != nil {
			return err
		}

		_, err = l.DB.ExecContext(ctx, upsertMirrorEnvelope,
			string(envelope.EntityType),
			envelope.ID,
			envelope.ServerVersion,
			envelope.UpdatedAt,
			envelope.DeletedAt,
			payload,
		)
		if err != nil {
			log.Err(err).
				Str("func", "localMirrorRepository.UpsertEnvelopes").
				Str("entity_type", string(envelope.EntityType)).
				Str("id", envelope.ID).
				Msg("failed to execute upsert for mirrored record")
			return fmt.Errorf("failed to mirror record (id=%s): %w", envelope.ID, err)
		}
	}

	return nil
}

// GetEnvelope implements [LocalMirrorRepository].
func (l *localMirrorRepository) GetEnvelope(ctx context.Context, entityType models.EntityType, id string) (models.EntityEnvelope, error) {
	log := logger.FromContext(ctx)

	envelope, err := scanMirrorEnvelope(l.DB.QueryRowContext(ctx, getMirrorEnvelope, string(entityType), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EntityEnvelope{}, ErrMirrorRecordNotFound
		}
		log.Err(err).
			Str("func", "localMirrorRepository.GetEnvelope").
			Str("entity_type", string(entityType)).
			Str("id", id).
			Msg("failed to get mirrored record")
		return models.EntityEnvelope{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return envelope, nil
}

// ListEnvelopes implements [LocalMirrorRepository].
func (l *localMirrorRepository) ListEnvelopes(ctx context.Context, entityType models.EntityType) ([]models.EntityEnvelope, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, listMirrorEnvelopes, string(entityType))
	if err != nil {
		log.Err(err).
			Str("func", "localMirrorRepository.ListEnvelopes").
			Str("entity_type", string(entityType)).
			Msg("failed to list mirrored records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	envelopes := make([]models.EntityEnvelope, 0, 50)
	for rows.Next() {
		envelope, scanErr := scanMirrorEnvelope(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		envelopes = append(envelopes, envelope)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return envelopes, nil
}

// Watermark implements [LocalMirrorRepository].
func (l *localMirrorRepository) Watermark(ctx context.Context) (int64, error) {
	var value string
	err := l.DB.QueryRowContext(ctx, getSyncStateValue, syncStateWatermark).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	since, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt watermark value %q: %w", value, err)
	}

	return since, nil
}

// SetWatermark implements [LocalMirrorRepository].
func (l *localMirrorRepository) SetWatermark(ctx context.Context, since int64) error {
	_, err := l.DB.ExecContext(ctx, setSyncStateValue, syncStateWatermark, strconv.FormatInt(since, 10))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// MarkSummaryRead implements [LocalMirrorRepository]. The edit is applied
// to the mirrored payload immediately so the UI reflects it, and queued in
// pending_read_marks with the mirrored version as precondition.
func (l *localMirrorRepository) MarkSummaryRead(ctx context.Context, id string, isRead bool) error {
	log := logger.FromContext(ctx)

	envelope, err := l.GetEnvelope(ctx, models.EntitySummary, id)
	if err != nil {
		return err
	}
	if envelope.Deleted() {
		return ErrMirrorRecordNotFound
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, upsertPendingReadMark, id, isRead, envelope.ServerVersion); err != nil {
		log.Err(err).Str("func", "localMirrorRepository.MarkSummaryRead").Str("id", id).Msg("failed to queue pending read mark")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, markMirrorSummaryRead, string(models.EntitySummary), id, strconv.FormatBool(isRead)); err != nil {
		log.Err(err).Str("func", "localMirrorRepository.MarkSummaryRead").Str("id", id).Msg("failed to update mirrored payload")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return tx.Commit()
}

// PendingReadMarks implements [LocalMirrorRepository].
func (l *localMirrorRepository) PendingReadMarks(ctx context.Context) ([]models.PendingReadMark, error) {
	rows, err := l.DB.QueryContext(ctx, listPendingReadMarks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	marks := make([]models.PendingReadMark, 0)
	for rows.Next() {
		var mark models.PendingReadMark
		if scanErr := rows.Scan(&mark.ID, &mark.IsRead, &mark.LastSeenVersion); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		marks = append(marks, mark)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return marks, nil
}

// ClearPendingReadMark implements [LocalMirrorRepository].
func (l *localMirrorRepository) ClearPendingReadMark(ctx context.Context, id string) error {
	if _, err := l.DB.ExecContext(ctx, deletePendingReadMark, id); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func marshalMirrorPayload(payload map[string]any) (any, error) {
	if payload == nil {
		return nil, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mirrored payload: %w", err)
	}

	return string(raw), nil
}

func scanMirrorEnvelope(row rowScanner) (models.EntityEnvelope, error) {
	var (
		envelope   models.EntityEnvelope
		entityType string
		payload    sql.NullString
	)

	err := row.Scan(
		&entityType,
		&envelope.ID,
		&envelope.ServerVersion,
		&envelope.UpdatedAt,
		&envelope.DeletedAt,
		&payload,
	)
	if err != nil {
		return models.EntityEnvelope{}, err
	}

	envelope.EntityType = models.EntityType(entityType)
	if payload.Valid {
		if err = json.Unmarshal([]byte(payload.String), &envelope.Payload); err != nil {
			return models.EntityEnvelope{}, fmt.Errorf("failed to decode mirrored payload: %w", err)
		}
	}

	return envelope, nil
}
