package collect

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MarkTegna/netwalker/pkg/util"
)

// Cache is an optional Redis-backed cache of resolved ambiguous prefixes,
// keyed by device, VRF, and bare address. A nil *Cache is valid and behaves
// as a permanent miss, so the resolver never has to check for one.
type Cache struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

// NewCache creates a resolution cache client.
func NewCache(addr string, db int, ttl time.Duration) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
		ctx: context.Background(),
		ttl: ttl,
	}
}

// Connect tests the connection.
func (c *Cache) Connect() error {
	return c.client.Ping(c.ctx).Err()
}

// Close closes the connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func cacheKey(device, vrf, ip string) string {
	return fmt.Sprintf("netwalker:resolve:%s|%s|%s", device, vrf, ip)
}

// Get returns the cached CIDR for a bare address, if present.
func (c *Cache) Get(device, vrf, ip string) (string, bool) {
	if c == nil {
		return "", false
	}
	cidr, err := c.client.Get(c.ctx, cacheKey(device, vrf, ip)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		util.Warnf("resolution cache get: %v", err)
		return "", false
	}
	return cidr, true
}

// Set stores a resolved CIDR. Cache errors are logged, never fatal.
func (c *Cache) Set(device, vrf, ip, cidr string) {
	if c == nil {
		return
	}
	if err := c.client.Set(c.ctx, cacheKey(device, vrf, ip), cidr, c.ttl).Err(); err != nil {
		util.Warnf("resolution cache set: %v", err)
	}
}
