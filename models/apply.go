package models

// ApplyAction is the mutation a client requests for one record.
type ApplyAction string

const (
	ActionUpdate ApplyAction = "update"
	ActionDelete ApplyAction = "delete"
)

// ApplyStatus is the per-item outcome of an apply batch.
type ApplyStatus string

const (
	// StatusApplied means the change was written and ServerVersion carries
	// the post-write version.
	StatusApplied ApplyStatus = "applied"

	// StatusConflict means the client's LastSeenVersion is behind the
	// current server version; nothing was written and ServerSnapshot
	// carries the current envelope for client-side merging.
	StatusConflict ApplyStatus = "conflict"

	// StatusInvalid means the item was malformed (unknown kind,
	// non-whitelisted fields, missing record). A client bug; retrying the
	// item unmodified will fail again.
	StatusInvalid ApplyStatus = "invalid"
)

// ApplyErrorCode narrows the reason behind a non-applied item.
type ApplyErrorCode string

const (
	CodeUnsupportedEntity ApplyErrorCode = "UNSUPPORTED_ENTITY"
	CodeNotFound          ApplyErrorCode = "NOT_FOUND"
	CodeInvalidFields     ApplyErrorCode = "INVALID_FIELDS"
	CodeInvalidAction     ApplyErrorCode = "INVALID_ACTION"
	CodeVersionConflict   ApplyErrorCode = "VERSION_CONFLICT"
)

// SyncApplyItem is one client mutation, keyed by (entity, id) and guarded
// by the version the client last observed for that record.
type SyncApplyItem struct {
	EntityType EntityType  `json:"entity_type"`
	ID         string      `json:"id"`
	Action     ApplyAction `json:"action"`

	// LastSeenVersion is the optimistic-concurrency guard: the item is
	// rejected as a conflict when the record has moved past this version.
	LastSeenVersion int64 `json:"last_seen_version"`

	// Payload maps field names to new values. Required for update, ignored
	// for delete. Every key must be on the entity kind's mutable-field
	// whitelist.
	Payload map[string]any `json:"payload,omitempty"`
}

// SyncApplyResult is the per-item outcome reported back to the client.
type SyncApplyResult struct {
	EntityType EntityType  `json:"entity_type"`
	ID         string      `json:"id"`
	Status     ApplyStatus `json:"status"`

	// ServerVersion is the post-apply version on success, or the current
	// server version on conflict.
	ServerVersion int64 `json:"server_version,omitempty"`

	// ServerSnapshot is the full current envelope, present only on
	// conflict.
	ServerSnapshot *EntityEnvelope `json:"server_snapshot,omitempty"`

	// ErrorCode is present on invalid and conflict outcomes.
	ErrorCode ApplyErrorCode `json:"error_code,omitempty"`
}

// ApplyResult aggregates a whole apply batch. Conflicts repeats just the
// conflicting results so a client can resolve them without re-scanning
// Results; it is nil when the batch had none.
type ApplyResult struct {
	SessionID string            `json:"session_id"`
	Results   []SyncApplyResult `json:"results"`
	Conflicts []SyncApplyResult `json:"conflicts"`
}
