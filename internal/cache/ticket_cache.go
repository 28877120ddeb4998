package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/helpdesk-labs/ticket-api/internal/domain"
	"github.com/helpdesk-labs/ticket-api/internal/repository"
)

const (
	keyListPrefix = "tickets:list:"
	keyGeneration = "tickets:listgen"
)

// TicketListCache caches ticket list results in Redis.
//
// Entries are keyed by a generation number that InvalidateAll bumps. A load
// that read storage before an invalidation writes under the old generation,
// which no reader asks for again.
type TicketListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTicketListCache returns a new TicketListCache.
func NewTicketListCache(rdb *redis.Client, ttl time.Duration) *TicketListCache {
	return &TicketListCache{rdb: rdb, ttl: ttl}
}

// Key derives the cache key for a filter at generation gen.
func Key(gen int64, filter repository.TicketFilter) string {
	values := url.Values{}
	values.Set("status", filter.Status)
	values.Set("q", filter.Query)
	return keyListPrefix + strconv.FormatInt(gen, 10) + ":" + values.Encode()
}

// Generation returns the current list generation. A missing counter is
// generation 0.
func (c *TicketListCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, keyGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get returns the cached list for filter, reporting false on a miss.
func (c *TicketListCache) Get(ctx context.Context, gen int64, filter repository.TicketFilter) ([]domain.Ticket, bool, error) {
	b, err := c.rdb.Get(ctx, Key(gen, filter)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var list []domain.Ticket
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, false, err
	}
	return list, true, nil
}

// Set stores the list for filter under generation gen.
func (c *TicketListCache) Set(ctx context.Context, gen int64, filter repository.TicketFilter, list []domain.Ticket) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(gen, filter), b, c.ttl).Err()
}

// InvalidateAll moves readers to a new generation and removes every cached
// list.
func (c *TicketListCache) InvalidateAll(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, keyGeneration).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, keyListPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
