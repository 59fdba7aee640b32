package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs a session with Redis so state survives process
// restarts and is shared between API instances. Keys are namespaced per
// session ID, keeping the single-writer-per-key contract.
type RedisStore struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

var _ Store = (*RedisStore)(nil)

// DefaultSessionTTL comfortably outlives any stay; expired sessions just
// fall back to the default property on next visit.
const DefaultSessionTTL = 30 * 24 * time.Hour

func NewRedisStore(client *redis.Client, sessionID string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{client: client, sessionID: sessionID, ttl: ttl}
}

// NewRedisStoreFromURL dials Redis from a redis:// URL, with optional
// password and database overrides, and scopes the store to sessionID.
func NewRedisStoreFromURL(url, password string, db int, sessionID string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}
	return NewRedisStore(redis.NewClient(opts), sessionID, ttl), nil
}

func (s *RedisStore) key(k string) string {
	return "session:" + s.sessionID + ":" + k
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", ErrNotCached
	}
	return v, err
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	return s.client.Del(ctx, full...).Err()
}
