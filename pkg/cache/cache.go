package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a thin optional read-cache. When REDIS_ADDR is unset the
// client is disabled and every call falls through to the database path;
// Redis outages degrade the same way.
type Client struct {
	rdb *redis.Client
}

// Init connects to Redis when REDIS_ADDR is configured. A disabled
// client is returned otherwise.
func Init() *Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("Cache disabled: REDIS_ADDR not set")
		return &Client{}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("Cache disabled: redis ping failed: %v", err)
		return &Client{}
	}
	log.Printf("Cache connected: %s", addr)
	return &Client{rdb: rdb}
}

func (c *Client) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON loads and unmarshals a cached value. Returns false on miss,
// disabled cache or any Redis error.
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Cache get %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("Cache decode %s failed: %v", key, err)
		return false
	}
	return true
}

// SetJSON stores a value with a TTL. Failures are logged and ignored.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("Cache encode %s failed: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("Cache set %s failed: %v", key, err)
	}
}

// Invalidate drops a key, typically after a write that affects it.
func (c *Client) Invalidate(ctx context.Context, key string) {
	if !c.Enabled() {
		return
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		log.Printf("Cache del %s failed: %v", key, err)
	}
}
