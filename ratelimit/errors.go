package ratelimit

import "errors"

var (
	// ErrInvalidRedisURL is returned when the Redis connection URL cannot be parsed.
	ErrInvalidRedisURL = errors.New("failed to parse redis connection URL")

	// ErrRedisNotReady is returned when the Redis server does not respond to ping.
	ErrRedisNotReady = errors.New("redis server is not ready")
)
