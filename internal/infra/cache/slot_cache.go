package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SlotCache stores generated slot grids per expert. Entries are addressed
// through a per-expert generation counter, so Invalidate never has to scan
// keys: bumping the generation orphans every older entry until its TTL runs out.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	return &SlotCache{client: client, ttl: ttl}
}

func generationKey(expertID uint) string {
	return fmt.Sprintf("slots:gen:%d", expertID)
}

func gridKey(expertID uint, gen int64, durationMin int, month string) string {
	return fmt.Sprintf("slots:%d:%d:%d:%s", expertID, gen, durationMin, month)
}

// Generation returns the expert's current cache generation. Callers read it
// before loading the rows a grid is built from and hand it back to Set, so a
// grid computed from rows that a concurrent replace superseded lands on an
// orphaned key.
func (c *SlotCache) Generation(ctx context.Context, expertID uint) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, generationKey(expertID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get returns the grid cached under gen and whether it was found.
func (c *SlotCache) Get(ctx context.Context, expertID uint, gen int64, durationMin int, month string) (map[string][]string, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}

	raw, err := c.client.Get(ctx, gridKey(expertID, gen, durationMin, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var grid map[string][]string
	if err := json.Unmarshal(raw, &grid); err != nil {
		return nil, false, err
	}
	return grid, true, nil
}

func (c *SlotCache) Set(ctx context.Context, expertID uint, gen int64, durationMin int, month string, grid map[string][]string) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(grid)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, gridKey(expertID, gen, durationMin, month), data, c.ttl).Err()
}

func (c *SlotCache) Invalidate(ctx context.Context, expertID uint) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, generationKey(expertID)).Err()
}
