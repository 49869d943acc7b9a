// Package ratelimit tracks server-communicated rate-limit state per client
// identifier.
//
// The Dymo API reports throttling through response headers. A Tracker caches
// the most recently observed values for each client identifier so the SDK can
// avoid issuing requests that would be rejected. State lives in a pluggable
// Store: the default MemoryStore is process-local, while RedisStore lets
// multiple processes sharing one API key see the same throttle state.
package ratelimit
