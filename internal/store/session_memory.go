package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-digest-sync/models"
	"github.com/patrickmn/go-cache"
)

// memoryCleanupInterval is how often the in-process cache sweeps expired
// entries. Correctness does not depend on it: every read also compares the
// record's own expiry, which is the authoritative check on this path.
const memoryCleanupInterval = time.Minute

// memorySessionStore is the in-process fallback implementation of
// [SessionStore]. It exists so that losing the shared store degrades
// session durability to process lifetime instead of erroring callers.
//
// Acceptable for single-instance deployments only: the map is not shared
// across processes, so under multiple instances a session becomes
// invisible to whichever instance did not create it.
type memorySessionStore struct {
	cache *cache.Cache
}

// NewMemorySessionStore constructs the in-process session store.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		cache: cache.New(cache.NoExpiration, memoryCleanupInterval),
	}
}

// Get implements [SessionStore]. Unlike the TTL-backed store, an expired
// record may still be present here between janitor sweeps, so the stored
// expiry is compared on every read and reported as [ErrSessionExpired].
func (s *memorySessionStore) Get(ctx context.Context, sessionID string) (models.SyncSession, error) {
	value, found := s.cache.Get(sessionID)
	if !found {
		return models.SyncSession{}, ErrSessionNotFound
	}

	session, ok := value.(models.SyncSession)
	if !ok {
		return models.SyncSession{}, ErrSessionNotFound
	}

	if session.ExpiredAt(time.Now()) {
		s.cache.Delete(sessionID)
		return models.SyncSession{}, ErrSessionExpired
	}

	return session, nil
}

// Set implements [SessionStore].
func (s *memorySessionStore) Set(ctx context.Context, session models.SyncSession, ttl time.Duration) error {
	s.cache.Set(session.SessionID, session, ttl)
	return nil
}

// TTL implements [SessionStore]. The remaining lifetime is derived from
// the expiry stored in the record itself.
func (s *memorySessionStore) TTL(ctx context.Context, sessionID string) (time.Duration, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	return time.Until(session.ExpiresAt), nil
}

// Delete implements [SessionStore].
func (s *memorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}
