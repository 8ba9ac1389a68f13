package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// psql is the shared statement builder for all dynamically constructed
// queries. The entity database speaks PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Per-kind column sets, in scan order. Every table carries the same sync
// bookkeeping tail: server_version, updated_at, deleted_at.
var (
	preferenceColumns = []string{"id", "owner_id", "language", "timezone", "digest_hour", "auto_summarize", "server_version", "updated_at", "deleted_at"}
	requestColumns    = []string{"id", "owner_id", "command", "query", "status", "server_version", "updated_at", "deleted_at"}
	summaryColumns    = []string{"id", "owner_id", "request_id", "title", "source_url", "content", "is_read", "server_version", "updated_at", "deleted_at"}
	crawlColumns      = []string{"id", "owner_id", "request_id", "url", "http_status", "content_hash", "server_version", "updated_at", "deleted_at"}
	modelCallColumns  = []string{"id", "owner_id", "request_id", "model", "prompt_tokens", "completion_tokens", "server_version", "updated_at", "deleted_at"}
)

// buildListByOwnerQuery constructs the per-kind enumeration query backing
// [EnvelopeSource.ListEnvelopes]: every row of one table owned by ownerID,
// soft-deleted rows included.
func buildListByOwnerQuery(table string, columns []string, ownerID int64) (string, []any, error) {
	query, args, err := psql.
		Select(columns...).
		From(table).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildGetSummaryQuery constructs the single-summary lookup used by the
// apply path.
func buildGetSummaryQuery(ownerID, id int64) (string, []any, error) {
	query, args, err := psql.
		Select(summaryColumns...).
		From("summaries").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// Compare-and-swap write statements for the summary table. The version
// predicate makes the read-compare-write sequence atomic at row
// granularity: a concurrent writer that bumped server_version first makes
// the statement match zero rows, which the repository reports as
// [ErrVersionConflict]. Both statements bump server_version themselves,
// upholding the "every mutation increments the version, soft delete
// included" invariant the whole protocol rests on.
const (
	updateSummaryReadFlag = `UPDATE summaries
		SET is_read = $1, updated_at = NOW(), server_version = server_version + 1
		WHERE id = $2 AND owner_id = $3 AND server_version = $4
		RETURNING server_version;`

	softDeleteSummary = `UPDATE summaries
		SET deleted_at = NOW(), updated_at = NOW(), server_version = server_version + 1
		WHERE id = $1 AND owner_id = $2 AND server_version = $3 AND deleted_at IS NULL
		RETURNING server_version;`
)
