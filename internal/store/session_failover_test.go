package store

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSessionStore is a scriptable [SessionStore] standing in for the
// shared store in failover tests.
type stubSessionStore struct {
	sessions map[string]models.SyncSession

	getErr  error
	setErr  error
	pingErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]models.SyncSession)}
}

func (s *stubSessionStore) Get(_ context.Context, sessionID string) (models.SyncSession, error) {
	if s.getErr != nil {
		return models.SyncSession{}, s.getErr
	}
	session, ok := s.sessions[sessionID]
	if !ok {
		return models.SyncSession{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *stubSessionStore) Set(_ context.Context, session models.SyncSession, _ time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.sessions[session.SessionID] = session
	return nil
}

func (s *stubSessionStore) TTL(_ context.Context, sessionID string) (time.Duration, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	return time.Until(session.ExpiresAt), nil
}

func (s *stubSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func (s *stubSessionStore) Ping(_ context.Context) error {
	return s.pingErr
}

func TestFailoverSessionStore_PrimaryHealthy(t *testing.T) {
	primary := newStubSessionStore()
	fallback := newStubSessionStore()
	store := NewFailoverSessionStore(primary, fallback, logger.Nop())
	ctx := context.Background()

	session := models.SyncSession{SessionID: "t1", OwnerID: 7, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Set(ctx, session, time.Hour))

	// The write lands in the shared store only.
	assert.Contains(t, primary.sessions, "t1")
	assert.NotContains(t, fallback.sessions, "t1")

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.OwnerID)
	assert.False(t, store.Degraded())
}

func TestFailoverSessionStore_SetFallsBackWhenPrimaryDown(t *testing.T) {
	primary := newStubSessionStore()
	primary.setErr = ErrSessionStoreUnavailable
	primary.getErr = ErrSessionStoreUnavailable
	fallback := newStubSessionStore()
	store := NewFailoverSessionStore(primary, fallback, logger.Nop())
	ctx := context.Background()

	session := models.SyncSession{SessionID: "t2", OwnerID: 7, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Set(ctx, session, time.Hour))

	assert.Contains(t, fallback.sessions, "t2")
	assert.True(t, store.Degraded())

	// The read also fails over and finds the fallback copy.
	got, err := store.Get(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, "t2", got.SessionID)
}

func TestFailoverSessionStore_GetChecksFallbackOnMiss(t *testing.T) {
	primary := newStubSessionStore()
	fallback := newStubSessionStore()
	store := NewFailoverSessionStore(primary, fallback, logger.Nop())
	ctx := context.Background()

	// Session written to the fallback during an earlier outage; the
	// recovered shared store has never seen it.
	fallback.sessions["t3"] = models.SyncSession{SessionID: "t3", OwnerID: 9, ExpiresAt: time.Now().Add(time.Hour)}

	got, err := store.Get(ctx, "t3")
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.OwnerID)
}

func TestFailoverSessionStore_NilPrimary(t *testing.T) {
	fallback := newStubSessionStore()
	store := NewFailoverSessionStore(nil, fallback, logger.Nop())
	ctx := context.Background()

	session := models.SyncSession{SessionID: "t4", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Set(ctx, session, time.Hour))

	_, err := store.Get(ctx, "t4")
	require.NoError(t, err)

	assert.NoError(t, store.Ping(ctx))
	assert.False(t, store.Degraded())
}

func TestFailoverSessionStore_DeleteRemovesBothCopies(t *testing.T) {
	primary := newStubSessionStore()
	fallback := newStubSessionStore()
	store := NewFailoverSessionStore(primary, fallback, logger.Nop())
	ctx := context.Background()

	primary.sessions["t5"] = models.SyncSession{SessionID: "t5"}
	fallback.sessions["t5"] = models.SyncSession{SessionID: "t5"}

	require.NoError(t, store.Delete(ctx, "t5"))
	assert.NotContains(t, primary.sessions, "t5")
	assert.NotContains(t, fallback.sessions, "t5")
}

func TestFailoverSessionStore_PingTracksTransitions(t *testing.T) {
	primary := newStubSessionStore()
	fallback := newStubSessionStore()
	store := NewFailoverSessionStore(primary, fallback, logger.Nop())
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	assert.False(t, store.Degraded())

	primary.pingErr = ErrSessionStoreUnavailable
	assert.Error(t, store.Ping(ctx))
	assert.True(t, store.Degraded())

	primary.pingErr = nil
	require.NoError(t, store.Ping(ctx))
	assert.False(t, store.Degraded())
}
