package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is used when a redis:// location has no key parameter.
const DefaultRedisKey = "uiregistry:artifact"

// RedisStore keeps the artifact in a single Redis string key, for service
// fleets that share one published registry.
type RedisStore struct {
	client   *redis.Client
	key      string
	location string
}

// NewRedisStore connects to the Redis server addressed by location
// (redis://[user:pass@]host:port/db?key=name) and verifies it with PING.
func NewRedisStore(ctx context.Context, location string) (Store, error) {
	redisURL, key, err := parseRedisLocation(location)
	if err != nil {
		return nil, err
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}

	return withHooks(&RedisStore{
		client:   client,
		key:      key,
		location: redactURL(redisURL) + "#" + key,
	}, "redis"), nil
}

// parseRedisLocation splits the store-specific key parameter from the URL
// understood by go-redis.
func parseRedisLocation(location string) (redisURL, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("parse redis location: %w", err)
	}
	q := u.Query()
	key = q.Get("key")
	if key == "" {
		key = DefaultRedisKey
	}
	q.Del("key")
	u.RawQuery = q.Encode()
	return u.String(), key, nil
}

// Load reads the artifact key.
func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return data, nil
}

// Save overwrites the artifact key. SET replaces the value atomically.
func (s *RedisStore) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Location returns the redacted server URL and key.
func (s *RedisStore) Location() string { return s.location }

// Close closes the Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

// redactURL hides credentials in locations printed to logs.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
