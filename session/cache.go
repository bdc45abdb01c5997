package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultTTL is the validity window for a cached session snapshot.
const DefaultTTL = 10 * time.Second

// Cache memoizes the current session for a short TTL window and de-duplicates
// concurrent lookups: callers arriving while a fetch is in flight share its
// result instead of issuing their own. Construct one per application instance
// and pass it by reference; there is no package-level state.
type Cache struct {
	source  Source
	ttl     time.Duration
	nowTime func() time.Time // injectable for testing

	mu        sync.Mutex
	cached    *Session
	fetchedAt time.Time
	inflight  *inflightFetch
}

// inflightFetch is the shared handle for a single outstanding source fetch.
// done is closed once session/err are populated.
type inflightFetch struct {
	done    chan struct{}
	session *Session
	err     error
}

// CacheOption defines a function type to modify the Cache instance.
type CacheOption func(*Cache)

// WithTTL overrides the cache validity window.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CacheOption {
	return func(c *Cache) {
		c.nowTime = nowFunc
	}
}

// NewCache initializes a session cache backed by the given source.
func NewCache(source Source, options ...CacheOption) (*Cache, error) {
	if source == nil {
		return nil, errors.New("[NewCache] source is required")
	}

	cache := &Cache{
		source:  source,
		ttl:     DefaultTTL,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(cache)
	}

	return cache, nil
}

// Get returns the cached session when it is younger than the TTL; otherwise
// it triggers exactly one underlying fetch, sharing the result with any
// concurrent callers, and stores it with a fresh expiry on completion.
// Source failures propagate unchanged; there are no retries at this layer.
func (c *Cache) Get(ctx context.Context) (*Session, error) {
	c.mu.Lock()

	if c.cached != nil && c.nowTime().Sub(c.fetchedAt) < c.ttl {
		cached := c.cached
		c.mu.Unlock()
		return cached, nil
	}

	if c.inflight != nil {
		fetch := c.inflight
		c.mu.Unlock()
		return waitForFetch(ctx, fetch)
	}

	fetch := &inflightFetch{done: make(chan struct{})}
	c.inflight = fetch
	c.mu.Unlock()

	fetch.session, fetch.err = c.source.FetchSession(ctx)
	close(fetch.done)

	c.mu.Lock()
	if fetch.err == nil {
		c.cached = fetch.session
		c.fetchedAt = c.nowTime()
	}
	c.inflight = nil
	c.mu.Unlock()

	return fetch.session, fetch.err
}

// Set replaces the cached session, stamping it with a fresh expiry. Called
// after a successful token refresh so the new tokens are served immediately.
func (c *Cache) Set(session *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = session
	c.fetchedAt = c.nowTime()
}

// Clear drops the cached entry immediately. An in-flight fetch is left to
// finish; its result still lands in the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
	c.fetchedAt = time.Time{}
}

func waitForFetch(ctx context.Context, fetch *inflightFetch) (*Session, error) {
	select {
	case <-fetch.done:
		return fetch.session, fetch.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
