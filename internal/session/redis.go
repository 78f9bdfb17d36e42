package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix     = "session:"
	redisUpdateRetries = 16
)

// RedisStore keeps one JSON snapshot per session key. Updates are optimistic
// WATCH/MULTI transactions retried when another writer touched the key, and
// idle sessions expire through the key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    Clock
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, idleTTL time.Duration, now Clock, logger *slog.Logger) *RedisStore {
	logger.Debug("Initializing Redis session store", "idle_ttl", idleTTL)

	return &RedisStore{
		client: client,
		ttl:    idleTTL,
		now:    clockOrNow(now),
		logger: logger,
	}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ok, err := r.client.SetNX(ctx, redisKey(s.ID), data, r.ttl).Result()
	if err != nil {
		r.logger.Error("Failed to store session", "session_id", s.ID, "error", err)
		return fmt.Errorf("failed to store session: %w", err)
	}
	if !ok {
		return ErrExists
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to load session", "session_id", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return decodeSession(data)
}

func (r *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (*Session, error) {
	logger := r.logger.With("component", "session_store", "operation", "update", "session_id", id)
	key := redisKey(id)

	for attempt := 0; attempt < redisUpdateRetries; attempt++ {
		var result *Session

		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					return ErrNotFound
				}
				return err
			}

			current, err := decodeSession(data)
			if err != nil {
				return err
			}

			working := current.Clone()
			if err := fn(working); err != nil {
				if errors.Is(err, ErrNoChange) {
					result = current
					return nil
				}
				return err
			}
			working.UpdatedAt = r.now()

			encoded, err := json.Marshal(working)
			if err != nil {
				return fmt.Errorf("failed to encode session: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, encoded, r.ttl)
				return nil
			})
			if err != nil {
				return err
			}
			result = working
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			logger.Debug("Session changed during update, retrying", "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	logger.Warn("Session update kept conflicting", "attempts", redisUpdateRetries)
	return nil, fmt.Errorf("session %s: too many concurrent updates", id)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, redisKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// EvictIdle is a no-op: Redis expires idle keys on its own.
func (r *RedisStore) EvictIdle(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, nil
}

func (r *RedisStore) Count(ctx context.Context) (int, error) {
	count := 0
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 256).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
