package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "tradedesk:session:"

// RedisStore keeps sessions in Redis with a key TTL matching their lifetime,
// so expired sessions disappear without sweeping.
type RedisStore struct {
	Client *redis.Client
}

// NewRedisStore creates a RedisStore with a new client.
func NewRedisStore(opt *redis.Options) *RedisStore {
	return &RedisStore{Client: redis.NewClient(opt)}
}

// Ping checks connectivity at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, bool, error) {
	b, err := s.Client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, false, fmt.Errorf("decode session: %w", err)
	}
	return &sess, true, nil
}

func (s *RedisStore) Put(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.Client.Set(ctx, redisKeyPrefix+sess.ID, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.Client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// Close releases the client's connections.
func (s *RedisStore) Close() error {
	return s.Client.Close()
}
