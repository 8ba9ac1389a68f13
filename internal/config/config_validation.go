// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Fallbacks applied by validate when the corresponding values were not
// supplied by any configuration source.
const (
	DefaultSessionTTL = 30 * time.Minute
	DefaultPageLimit  = 100
	DefaultMinLimit   = 10
	DefaultMaxLimit   = 500
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, filling defaults
// for the sync-protocol parameters that were left unset.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.SessionTTL <= 0 {
		cfg.Sync.SessionTTL = DefaultSessionTTL
	}
	if cfg.Sync.DefaultPageLimit <= 0 {
		cfg.Sync.DefaultPageLimit = DefaultPageLimit
	}
	if cfg.Sync.MinPageLimit <= 0 {
		cfg.Sync.MinPageLimit = DefaultMinLimit
	}
	if cfg.Sync.MaxPageLimit <= 0 {
		cfg.Sync.MaxPageLimit = DefaultMaxLimit
	}

	if cfg.Sync.MinPageLimit > cfg.Sync.MaxPageLimit {
		return ErrInvalidSyncConfigs
	}
	if cfg.Sync.DefaultPageLimit < cfg.Sync.MinPageLimit ||
		cfg.Sync.DefaultPageLimit > cfg.Sync.MaxPageLimit {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.Token == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
