package ratelimit

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Rate-limit header names as emitted by the Dymo API.
const (
	HeaderLimit      = "X-Ratelimit-Limit-Requests"
	HeaderRemaining  = "X-Ratelimit-Remaining-Requests"
	HeaderReset      = "X-Ratelimit-Reset-Requests"
	HeaderRetryAfter = "Retry-After"
)

// Tracker records the rate-limit headers last seen for each client
// identifier. It never fails: store errors are logged and the tracker
// answers as if the identifier were unknown (fail-open).
type Tracker struct {
	store  Store
	clock  func() time.Time
	logger *slog.Logger
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithStore sets the backing store. Default: a fresh MemoryStore.
func WithStore(store Store) TrackerOption {
	return func(t *Tracker) {
		t.store = store
	}
}

// WithClock sets the time source, used to stamp updates and resolve
// HTTP-date Retry-After values.
func WithClock(clock func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.clock = clock
	}
}

// WithLogger sets the logger for store failures.
func WithLogger(logger *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// NewTracker creates a tracker with an in-memory store unless WithStore
// overrides it.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store:  NewMemoryStore(),
		clock:  time.Now,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Update merges recognized rate-limit headers into the state tracked for
// clientID. Headers that are absent or fail to parse leave the prior value
// untouched. LastUpdated is always stamped.
func (t *Tracker) Update(ctx context.Context, clientID string, headers http.Header) {
	state, _, err := t.store.Get(ctx, clientID)
	if err != nil {
		t.logger.Warn("rate limit state read failed",
			"client_id", clientID, "error", err)
		state = State{}
	}

	if v, ok := intHeader(headers, HeaderLimit); ok {
		state.Limit = &v
	}
	if v, ok := intHeader(headers, HeaderRemaining); ok {
		state.Remaining = &v
	}
	if v := headers.Get(HeaderReset); v != "" {
		state.ResetTime = v
	}
	if secs, ok := parseRetryAfter(headers.Get(HeaderRetryAfter), t.clock()); ok {
		state.RetryAfter = &secs
	}
	state.LastUpdated = t.clock()

	if err := t.store.Set(ctx, clientID, state); err != nil {
		t.logger.Warn("rate limit state write failed",
			"client_id", clientID, "error", err)
	}
}

// IsRateLimited reports whether the last observed response for clientID
// said no requests remain. Unknown identifiers are not limited.
func (t *Tracker) IsRateLimited(ctx context.Context, clientID string) bool {
	state, ok, err := t.store.Get(ctx, clientID)
	if err != nil || !ok {
		return false
	}
	return state.Remaining != nil && *state.Remaining <= 0
}

// RetryAfter returns the server-communicated wait for clientID, if known.
func (t *Tracker) RetryAfter(ctx context.Context, clientID string) (time.Duration, bool) {
	state, ok, err := t.store.Get(ctx, clientID)
	if err != nil || !ok || state.RetryAfter == nil {
		return 0, false
	}
	return time.Duration(*state.RetryAfter) * time.Second, true
}

// State returns a copy of the tracked state for clientID.
func (t *Tracker) State(ctx context.Context, clientID string) (State, bool) {
	state, ok, err := t.store.Get(ctx, clientID)
	if err != nil {
		return State{}, false
	}
	return state, ok
}

func intHeader(headers http.Header, name string) (int, bool) {
	v := headers.Get(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseRetryAfter handles both forms the header allows: a number of seconds
// (fractions rounded up) or an HTTP date resolved against now. Past dates
// collapse to zero.
func parseRetryAfter(value string, now time.Time) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		if secs < 0 {
			return 0, false
		}
		return int(math.Ceil(secs)), true
	}

	for _, layout := range []string{http.TimeFormat, time.RFC850, time.ANSIC} {
		when, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		d := when.Sub(now)
		if d < 0 {
			return 0, true
		}
		return int(math.Ceil(d.Seconds())), true
	}

	return 0, false
}
