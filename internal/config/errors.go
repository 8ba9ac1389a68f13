package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or inconsistent.
var (
	// ErrInvalidSyncConfigs indicates inconsistent sync-protocol settings
	// (for example, a default page limit outside the min/max bounds).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// required by the client (for example, a missing bearer token).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
