package store

import "errors"

// Sentinel errors returned by repository and session-store methods to
// signal well-known failure conditions. Callers should use [errors.Is] to
// match against these values.
var (
	// ErrSessionNotFound is returned when a session token does not exist
	// in the backing store, either because it never did or because the
	// store's TTL already evicted it.
	ErrSessionNotFound = errors.New("sync session was not found")

	// ErrSessionExpired is returned by the in-process session store when a
	// record is present but its stored expiry has passed. The TTL-backed
	// store reports absence instead.
	ErrSessionExpired = errors.New("sync session is expired")

	// ErrSessionStoreUnavailable is returned (or wrapped) when the shared
	// session store cannot be reached. The failover store absorbs it by
	// degrading to the in-process store.
	ErrSessionStoreUnavailable = errors.New("session store is unavailable")

	// ErrSummaryNotFound is returned when a query or update targets a
	// summary (identified by id and owner_id) that does not exist.
	ErrSummaryNotFound = errors.New("summary was not found")

	// ErrVersionConflict is returned when an optimistic-locking check
	// fails: the version supplied by the caller does not match the current
	// version stored in the database, meaning another writer has modified
	// the record since it was last read.
	ErrVersionConflict = errors.New("summary version conflict occurred")

	// ErrMirrorRecordNotFound is returned by the client-side mirror when a
	// requested record has never been synced to this device.
	ErrMirrorRecordNotFound = errors.New("record was not found in local mirror")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
