// Package cache is a cache-aside layer over Redis.  Cached values are JSON
// documents; a broken or absent Redis never breaks a request, it only costs
// the caller the recompute.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Outcome classifies a cache lookup for callers that care (tests, metrics).
type Outcome int

const (
	// Miss: the key was absent (or its value was unreadable) and the value
	// was produced fresh.
	Miss Outcome = iota
	// Hit: the value came straight from the cache.
	Hit
	// Unavailable: the backend could not be reached; behaves like a miss
	// except no write-back is attempted.
	Unavailable
)

// Cache wraps a Redis client with a default TTL.  A nil client is a valid
// disabled cache: every lookup reports Unavailable.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New builds a Cache.  ttl is the default expiry applied when a call does
// not override it.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// TTL reports the default expiry.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Key joins namespace parts with ":" into a deterministic cache key.
// Callers substitute a literal "all" for absent filter parts so the same
// logical query always maps to the same key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Remove deletes a key, best effort.
func (c *Cache) Remove(ctx context.Context, key string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache delete failed")
	}
}

// GetOrSet runs the cache-aside protocol for one key: return the cached
// value on a hit, otherwise produce it and write it back.  Producer errors
// propagate unchanged and nothing is cached for them.  Backend failures are
// logged and swallowed; the produced value is still returned.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, produce func(context.Context) (T, error)) (T, Outcome, error) {
	var zero T

	outcome := Unavailable
	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, key).Result()
		switch {
		case err == nil:
			var cached T
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return cached, Hit, nil
			}
			// Corrupt entry: drop it and recompute.
			log.Warn().Str("key", key).Msg("cache entry unreadable, recomputing")
			c.Remove(ctx, key)
			outcome = Miss
		case err == redis.Nil:
			outcome = Miss
		default:
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
			outcome = Unavailable
		}
	}

	val, err := produce(ctx)
	if err != nil {
		return zero, outcome, err
	}

	if c.rdb != nil && outcome == Miss {
		if raw, jsonErr := json.Marshal(val); jsonErr == nil {
			if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("cache write failed")
			}
		}
	}
	return val, outcome, nil
}
