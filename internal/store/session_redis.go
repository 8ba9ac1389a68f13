package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/models"
	"github.com/go-redis/redis/v8"
)

// sessionKeyPrefix namespaces session records in the shared store so that
// other subsystems sharing the same Redis database never collide with
// sync sessions.
const sessionKeyPrefix = "sync:session:"

// redisSessionStore is the shared-store implementation of [SessionStore].
// Sessions are stored as JSON values with a store-native TTL, so expiry
// needs no sweeper: an expired session simply stops existing.
type redisSessionStore struct {
	rdb    *redis.Client
	logger *logger.Logger
}

// NewRedisSessionStore connects to the shared session store described by
// cfg. The connection is verified with a ping so that a misconfigured
// address surfaces at startup rather than on the first session call.
func NewRedisSessionStore(ctx context.Context, cfg config.Sessions, log *logger.Logger) (SessionStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisSessionStore").Str("address", cfg.RedisAddress).Msg("error pinging session store")
		return nil, fmt.Errorf("%w: %w", ErrSessionStoreUnavailable, err)
	}
	log.Info().Str("func", "NewRedisSessionStore").Str("address", cfg.RedisAddress).Msg("connected to session store")

	return &redisSessionStore{rdb: rdb, logger: log}, nil
}

// Get implements [SessionStore].
func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (models.SyncSession, error) {
	raw, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.SyncSession{}, ErrSessionNotFound
		}
		return models.SyncSession{}, fmt.Errorf("%w: %w", ErrSessionStoreUnavailable, err)
	}

	var session models.SyncSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return models.SyncSession{}, fmt.Errorf("error decoding session record: %w", err)
	}

	return session, nil
}

// Set implements [SessionStore].
func (s *redisSessionStore) Set(ctx context.Context, session models.SyncSession, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error encoding session record: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKeyPrefix+session.SessionID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionStoreUnavailable, err)
	}

	return nil
}

// TTL implements [SessionStore]. A missing key is reported as
// [ErrSessionNotFound], matching the behaviour of Get.
func (s *redisSessionStore) TTL(ctx context.Context, sessionID string) (time.Duration, error) {
	ttl, err := s.rdb.TTL(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSessionStoreUnavailable, err)
	}

	if ttl < 0 {
		return 0, ErrSessionNotFound
	}

	return ttl, nil
}

// Delete implements [SessionStore].
func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionStoreUnavailable, err)
	}

	return nil
}

// Ping implements [Pinger].
func (s *redisSessionStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionStoreUnavailable, err)
	}

	return nil
}
