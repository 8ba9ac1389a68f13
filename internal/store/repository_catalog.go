package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/models"
)

// The four read-only collaborators. From the client's perspective these
// kinds cannot be mutated through apply, so each repository is just an
// [EnvelopeSource]: enumerate by owner, wrap into envelopes.

// listEnvelopes is the shared enumeration skeleton: build the per-kind
// query, run it, and let scan turn each row into an envelope.
func listEnvelopes(
	ctx context.Context,
	db *DB,
	table string,
	columns []string,
	ownerID int64,
	caller string,
	scan func(rowScanner) (models.EntityEnvelope, error),
) ([]models.EntityEnvelope, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListByOwnerQuery(table, columns, ownerID)
	if err != nil {
		log.Err(err).Str("func", caller).Int64("owner_id", ownerID).Msg("failed to build query")
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Int64("owner_id", ownerID).
			Bool("retryable", db.retryable(err)).
			Msg("failed to execute enumeration query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	envelopes := make([]models.EntityEnvelope, 0, 50)

	for rows.Next() {
		envelope, scanErr := scan(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", caller).Int64("owner_id", ownerID).Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		envelopes = append(envelopes, envelope)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", caller).Int64("owner_id", ownerID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return envelopes, nil
}

// preferenceRepository serves the user-preference kind.
type preferenceRepository struct {
	*DB
	logger *logger.Logger
}

func NewPreferenceRepository(db *DB, logger *logger.Logger) *preferenceRepository {
	return &preferenceRepository{DB: db, logger: logger}
}

func (r *preferenceRepository) EntityType() models.EntityType {
	return models.EntityPreference
}

func (r *preferenceRepository) ListEnvelopes(ctx context.Context, ownerID int64) ([]models.EntityEnvelope, error) {
	return listEnvelopes(ctx, r.DB, "preferences", preferenceColumns, ownerID, "preferenceRepository.ListEnvelopes",
		func(row rowScanner) (models.EntityEnvelope, error) {
			var p models.Preference
			err := row.Scan(&p.ID, &p.OwnerID, &p.Language, &p.Timezone, &p.DigestHour, &p.AutoSummarize, &p.ServerVersion, &p.UpdatedAt, &p.DeletedAt)
			return p.ToEnvelope(), err
		})
}

// requestRepository serves the digest-request kind.
type requestRepository struct {
	*DB
	logger *logger.Logger
}

func NewRequestRepository(db *DB, logger *logger.Logger) *requestRepository {
	return &requestRepository{DB: db, logger: logger}
}

func (r *requestRepository) EntityType() models.EntityType {
	return models.EntityRequest
}

func (r *requestRepository) ListEnvelopes(ctx context.Context, ownerID int64) ([]models.EntityEnvelope, error) {
	return listEnvelopes(ctx, r.DB, "requests", requestColumns, ownerID, "requestRepository.ListEnvelopes",
		func(row rowScanner) (models.EntityEnvelope, error) {
			var req models.DigestRequest
			err := row.Scan(&req.ID, &req.OwnerID, &req.Command, &req.Query, &req.Status, &req.ServerVersion, &req.UpdatedAt, &req.DeletedAt)
			return req.ToEnvelope(), err
		})
}

// crawlRepository serves the crawl-result kind.
type crawlRepository struct {
	*DB
	logger *logger.Logger
}

func NewCrawlRepository(db *DB, logger *logger.Logger) *crawlRepository {
	return &crawlRepository{DB: db, logger: logger}
}

func (r *crawlRepository) EntityType() models.EntityType {
	return models.EntityCrawl
}

func (r *crawlRepository) ListEnvelopes(ctx context.Context, ownerID int64) ([]models.EntityEnvelope, error) {
	return listEnvelopes(ctx, r.DB, "crawl_results", crawlColumns, ownerID, "crawlRepository.ListEnvelopes",
		func(row rowScanner) (models.EntityEnvelope, error) {
			var c models.CrawlResult
			err := row.Scan(&c.ID, &c.OwnerID, &c.RequestID, &c.URL, &c.HTTPStatus, &c.ContentHash, &c.ServerVersion, &c.UpdatedAt, &c.DeletedAt)
			return c.ToEnvelope(), err
		})
}

// modelCallRepository serves the model-call accounting kind.
type modelCallRepository struct {
	*DB
	logger *logger.Logger
}

func NewModelCallRepository(db *DB, logger *logger.Logger) *modelCallRepository {
	return &modelCallRepository{DB: db, logger: logger}
}

func (r *modelCallRepository) EntityType() models.EntityType {
	return models.EntityModelCall
}

func (r *modelCallRepository) ListEnvelopes(ctx context.Context, ownerID int64) ([]models.EntityEnvelope, error) {
	return listEnvelopes(ctx, r.DB, "model_calls", modelCallColumns, ownerID, "modelCallRepository.ListEnvelopes",
		func(row rowScanner) (models.EntityEnvelope, error) {
			var m models.ModelCall
			err := row.Scan(&m.ID, &m.OwnerID, &m.RequestID, &m.Model, &m.PromptTokens, &m.CompletionTokens, &m.ServerVersion, &m.UpdatedAt, &m.DeletedAt)
			return m.ToEnvelope(), err
		})
}
