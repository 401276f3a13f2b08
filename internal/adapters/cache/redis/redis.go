package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okibi/gateway-bridge/internal/core/ports"
	"github.com/okibi/gateway-bridge/pkg/schema"
)

// retention guards against unbounded growth; it is deliberately much longer
// than any discovery TTL so stale entries remain available as fallbacks.
const retention = 24 * time.Hour

const keyPrefix = "bridge:models:"

type envelope struct {
	Models    []schema.ModelDescriptor `json:"models"`
	FetchedAt time.Time                `json:"fetched_at"`
}

// Cache is a redis-backed ModelCache for deployments where several bridge
// processes should share one discovery cache.
type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Get(key string) ([]schema.ModelDescriptor, time.Time, bool) {
	data, err := c.client.Get(context.Background(), keyPrefix+key).Bytes()
	if err != nil {
		return nil, time.Time{}, false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, time.Time{}, false
	}
	return env.Models, env.FetchedAt, true
}

func (c *Cache) Put(key string, models []schema.ModelDescriptor, fetchedAt time.Time) error {
	data, err := json.Marshal(envelope{Models: models, FetchedAt: fetchedAt})
	if err != nil {
		return err
	}
	return c.client.Set(context.Background(), keyPrefix+key, data, retention).Err()
}

func (c *Cache) Delete(key string) error {
	return c.client.Del(context.Background(), keyPrefix+key).Err()
}

func (c *Cache) Flush() error {
	ctx := context.Background()
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

var _ ports.ModelCache = (*Cache)(nil)
