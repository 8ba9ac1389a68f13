package service

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/adapter"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClientSync struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubClientSync) Sync(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubClientSync) syncCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubClientSync) Bootstrap(context.Context) error      { return nil }
func (s *stubClientSync) PushLocalEdits(context.Context) error { return nil }
func (s *stubClientSync) MarkSummaryRead(context.Context, string, bool) error {
	return nil
}
func (s *stubClientSync) ListSummaries(context.Context) ([]models.EntityEnvelope, error) {
	return nil, nil
}

func TestClientSyncJob_SyncsImmediatelyAndOnTicks(t *testing.T) {
	svc := &stubClientSync{}
	job := NewClientSyncJob(svc, logger.Nop())

	job.Start(context.Background(), 20*time.Millisecond)
	defer job.Stop()

	require.Eventually(t, func() bool {
		return svc.syncCalls() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_StopTerminatesGoroutine(t *testing.T) {
	svc := &stubClientSync{}
	job := NewClientSyncJob(svc, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	require.Eventually(t, func() bool { return svc.syncCalls() >= 1 }, time.Second, 5*time.Millisecond)

	job.Stop()
	settled := svc.syncCalls()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, svc.syncCalls())
}

func TestClientSyncJob_DoesNotRetryDeliberateRejections(t *testing.T) {
	svc := &stubClientSync{err: fmt.Errorf("apply local edits: %w", adapter.ErrBadRequest)}
	job := NewClientSyncJob(svc, logger.Nop())

	job.Start(context.Background(), time.Hour)
	time.Sleep(100 * time.Millisecond)
	job.Stop()

	// отказ сервера не ретраится внутри раунда
	assert.Equal(t, 1, svc.syncCalls())
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "bad request", err: adapter.ErrBadRequest, want: false},
		{name: "unauthorized", err: adapter.ErrUnauthorized, want: false},
		{name: "forbidden", err: adapter.ErrForbidden, want: false},
		{name: "not found", err: adapter.ErrNotFound, want: false},
		{name: "conflict", err: adapter.ErrConflict, want: false},
		{name: "server error", err: adapter.ErrInternalServerError, want: true},
		{name: "wrapped rejection", err: fmt.Errorf("push: %w", adapter.ErrForbidden), want: false},
		{name: "network failure", err: &net.OpError{Op: "dial", Err: fmt.Errorf("connection refused")}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}
