package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 24 * time.Hour

// Cache provides Redis-backed vector caching so re-ingested or repeated
// texts skip the embedding service.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache builds a cache over an existing Redis client.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "embedding:" + model + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached vector for text, or nil on a miss.
func (c *Cache) Get(ctx context.Context, model, text string) ([]float32, error) {
	data, err := c.client.Get(ctx, c.key(model, text)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var v []float32
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Set stores a vector under the model+text key.
func (c *Cache) Set(ctx context.Context, model, text string, vector []float32) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(model, text), data, c.ttl).Err()
}
