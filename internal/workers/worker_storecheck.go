// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/store"
)

// defaultStoreCheckInterval is used when the configuration does not set a
// probe period.
const defaultStoreCheckInterval = 15 * time.Second

// storeCheckWorker periodically probes the shared session store. The probe
// is what lets the failover store notice recovery: request traffic only
// ever observes failures.
type storeCheckWorker struct {
	pinger   store.Pinger
	interval time.Duration
	logger   *logger.Logger
}

func NewStoreCheckWorker(pinger store.Pinger, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = defaultStoreCheckInterval
	}

	return &storeCheckWorker{
		pinger:   pinger,
		interval: interval,
		logger:   logger,
	}
}

// Run implements [Worker]. The probe loop lives for the whole process;
// shutdown ends it together with everything else.
func (w *storeCheckWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), w.interval)
			if err := w.pinger.Ping(ctx); err != nil {
				w.logger.Debug().Err(err).Str("func", "storeCheckWorker.Run").Msg("session store probe failed")
			}
			cancel()
		}
	}()
}
