package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "dymo:ratelimit:"
	defaultStateTTL  = time.Hour
)

// RedisStore implements Store on top of Redis. State is JSON-encoded under
// a prefixed key per client identifier, with a TTL so stale entries expire
// on their own.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the key prefix. Default: "dymo:ratelimit:".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		rs.keyPrefix = prefix
	}
}

// WithStateTTL sets how long entries live without updates. Zero disables
// expiration. Default: 1 hour.
func WithStateTTL(ttl time.Duration) RedisStoreOption {
	return func(rs *RedisStore) {
		rs.ttl = ttl
	}
}

// NewRedisStore connects to Redis using a connection URL in the form
// "redis://:password@localhost:6379/0" and verifies the server responds
// before returning.
func NewRedisStore(ctx context.Context, redisURL string, opts ...RedisStoreOption) (*RedisStore, error) {
	connOpt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidRedisURL, err)
	}

	client := redis.NewClient(connOpt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrRedisNotReady, err)
	}

	return NewRedisStoreFromClient(client, opts...), nil
}

// NewRedisStoreFromClient wraps an existing Redis client. The caller keeps
// ownership of the client's lifecycle unless Close is used.
func NewRedisStoreFromClient(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		ttl:       defaultStateTTL,
	}

	for _, opt := range opts {
		opt(rs)
	}

	return rs
}

func (rs *RedisStore) key(clientID string) string {
	return rs.keyPrefix + clientID
}

func (rs *RedisStore) Get(ctx context.Context, clientID string) (State, bool, error) {
	data, err := rs.client.Get(ctx, rs.key(clientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("read rate limit state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, false, fmt.Errorf("decode rate limit state: %w", err)
	}
	return state, true, nil
}

func (rs *RedisStore) Set(ctx context.Context, clientID string, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode rate limit state: %w", err)
	}

	if err := rs.client.Set(ctx, rs.key(clientID), data, rs.ttl).Err(); err != nil {
		return fmt.Errorf("write rate limit state: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
