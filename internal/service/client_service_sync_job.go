package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/adapter"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/sethvargo/go-retry"
)

const defaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	syncService ClientSyncService
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that reconciles the mirror on a
// ticker. The job is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		syncService: syncService,
		logger:      logger,
	}
}

// Start implements [ClientSyncJob]. It stops any previously running job,
// then launches a background goroutine that syncs immediately and again
// every interval. The goroutine exits when ctx is cancelled or Stop is
// called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		j.runOnce(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

// runOnce performs one sync round, retrying transient failures with a
// capped fibonacci backoff. A round that still fails is logged and
// abandoned until the next tick.
func (j *clientSyncJob) runOnce(ctx context.Context) {
	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(500*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := j.syncService.Sync(ctx); err != nil {
			if isTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		j.logger.Error().
			Err(err).
			Str("func", "clientSyncJob.runOnce").
			Msg("sync round failed")
	}
}

// Stop implements [ClientSyncJob]. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call
// when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// isTransient separates faults worth retrying within a round (network
// hiccups, server-side failures) from those a retry cannot fix (the
// server deliberately rejected the request).
func isTransient(err error) bool {
	switch {
	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrUnauthorized),
		errors.Is(err, adapter.ErrForbidden),
		errors.Is(err, adapter.ErrNotFound),
		errors.Is(err, adapter.ErrConflict):
		return false
	}
	return true
}
