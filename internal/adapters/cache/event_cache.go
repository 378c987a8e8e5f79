package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eventhub/internal/domain"
)

const (
	// GenerationKey counts invalidations. Lists are stored under the generation they were read at.
	GenerationKey = "eventhub:events:gen"
	// EventsKeyPrefix prefixes the per-generation JSON-encoded event list.
	EventsKeyPrefix = "eventhub:events:all:"
	// DefaultTTL applies when no positive ttl is configured. Lists written for a superseded
	// generation are never read again and only go away by expiring.
	DefaultTTL = time.Minute
)

// redisStore is the subset of the go-redis client the cache uses.
type redisStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

type eventCache struct {
	rdb redisStore
	ttl time.Duration
}

// NewEventCache returns an EventCache backed by Redis. Entries expire after ttl, or DefaultTTL when ttl is not positive.
func NewEventCache(rdb *redis.Client, ttl time.Duration) domain.EventCache {
	return newEventCache(rdb, ttl)
}

func newEventCache(rdb redisStore, ttl time.Duration) *eventCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &eventCache{rdb: rdb, ttl: ttl}
}

func eventsKey(gen int64) string {
	return fmt.Sprintf("%s%d", EventsKeyPrefix, gen)
}

func (c *eventCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, GenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get cache generation: %w", err)
	}
	return gen, nil
}

func (c *eventCache) GetAll(ctx context.Context) ([]*domain.Event, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	val, err := c.rdb.Get(ctx, eventsKey(gen)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("get cached events: %w", err)
	}
	var events []*domain.Event
	if err := json.Unmarshal([]byte(val), &events); err != nil {
		return nil, 0, false, fmt.Errorf("decode cached events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, gen, true, nil
}

func (c *eventCache) SetAll(ctx context.Context, gen int64, events []*domain.Event) error {
	b, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	key := eventsKey(gen)
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		return err
	}
	// Readers only look at the current generation, so a superseded write is already invisible.
	// Dropping it keeps it from lingering until expiry.
	current, err := c.generation(ctx)
	if err != nil {
		return err
	}
	if current != gen {
		return c.rdb.Del(ctx, key).Err()
	}
	return nil
}

func (c *eventCache) Invalidate(ctx context.Context) error {
	gen, err := c.rdb.Incr(ctx, GenerationKey).Result()
	if err != nil {
		return err
	}
	return c.rdb.Del(ctx, eventsKey(gen-1)).Err()
}
