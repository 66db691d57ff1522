// Package cache provides a two-tier byte cache: an in-memory L1 with TTL and
// a size bound, backed by an optional Redis L2 that survives restarts.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultTTL             = time.Hour
	DefaultMaxEntries      = 1000
	DefaultCleanupInterval = 5 * time.Minute

	redisPingTimeout = 3 * time.Second
)

// Options configures a Tiered cache. An empty RedisURL disables L2.
type Options struct {
	RedisURL        string
	TTL             time.Duration
	MaxEntries      int
	CleanupInterval time.Duration
}

// Tiered implements L1 (memory) + L2 (Redis) caching. All failures are
// treated as misses.
type Tiered struct {
	l1         sync.Map      // key -> *entry
	rdb        *redis.Client // nil if Redis unavailable
	ttl        time.Duration
	maxEntries int
	logger     *zap.Logger
	now        func() time.Time

	hits   atomic.Int64
	misses atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// New sets up the cache and starts the L1 cleanup loop. An unreachable or
// invalid Redis URL logs a warning and leaves L2 disabled.
func New(ctx context.Context, opts Options, logger *zap.Logger) *Tiered {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = DefaultCleanupInterval
	}

	c := &Tiered{
		ttl:        opts.TTL,
		maxEntries: opts.MaxEntries,
		logger:     logger,
		now:        time.Now,
		stop:       make(chan struct{}),
	}

	if opts.RedisURL != "" {
		c.rdb = connectRedis(ctx, opts.RedisURL, logger)
	}

	logger.Info("cache initialized",
		zap.Duration("ttl", c.ttl),
		zap.Bool("redis", c.rdb != nil),
		zap.Int("max_entries", c.maxEntries),
	)

	go c.cleanupLoop(opts.CleanupInterval)
	return c
}

func connectRedis(ctx context.Context, url string, logger *zap.Logger) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("invalid redis URL, L2 cache disabled", zap.Error(err))
		return nil
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, L2 cache disabled", zap.String("addr", opts.Addr), zap.Error(err))
		_ = rdb.Close()
		return nil
	}

	logger.Info("L2 redis cache connected", zap.String("addr", opts.Addr))
	return rdb
}

// Get tries L1, then L2. An L2 hit repopulates L1.
func (c *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	if val, ok := c.l1.Load(key); ok {
		e := val.(*entry)
		if c.now().Before(e.expiresAt) {
			c.hits.Add(1)
			return e.data, true
		}
		c.l1.Delete(key)
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			c.hits.Add(1)
			c.l1.Store(key, &entry{data: data, expiresAt: c.now().Add(c.ttl)})
			return data, true
		}
		if err != redis.Nil {
			c.logger.Debug("L2 cache get failed", zap.Error(err))
		}
	}

	c.misses.Add(1)
	return nil, false
}

// Set stores value in both tiers.
func (c *Tiered) Set(ctx context.Context, key string, value []byte) {
	c.evictIfNeeded()

	data := append([]byte(nil), value...)
	c.l1.Store(key, &entry{data: data, expiresAt: c.now().Add(c.ttl)})

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Debug("L2 cache set failed", zap.Error(err))
		}
	}
}

// Stats returns hit and miss counters.
func (c *Tiered) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of L1 entries, including expired ones not yet swept.
func (c *Tiered) Len() int {
	n := 0
	c.l1.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// RedisEnabled reports whether L2 is active.
func (c *Tiered) RedisEnabled() bool {
	return c.rdb != nil
}

// Close stops the cleanup loop and closes the Redis client.
func (c *Tiered) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// evictIfNeeded removes entries when L1 reaches maxEntries: expired entries
// first, then the entries closest to expiry.
func (c *Tiered) evictIfNeeded() {
	count := c.Len()
	if count < c.maxEntries {
		return
	}

	now := c.now()
	c.l1.Range(func(key, val any) bool {
		if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return count >= c.maxEntries
	})

	for count >= c.maxEntries {
		var oldestKey any
		var oldestAt time.Time
		c.l1.Range(func(key, val any) bool {
			e, ok := val.(*entry)
			if ok && (oldestKey == nil || e.expiresAt.Before(oldestAt)) {
				oldestKey = key
				oldestAt = e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			break
		}
		c.l1.Delete(oldestKey)
		count--
	}
}

func (c *Tiered) sweep() {
	now := c.now()
	c.l1.Range(func(key, val any) bool {
		if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
			c.l1.Delete(key)
		}
		return true
	})
}

func (c *Tiered) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}
