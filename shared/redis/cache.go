package redis

import (
	"context"
	"encoding/json"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// JSONCache stores values of type T as JSON under prefix+id. A zero ttl keeps
// keys until they are overwritten or deleted.
type JSONCache[T any] struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewJSONCache[T any](client *goredis.Client, prefix string, ttl time.Duration) *JSONCache[T] {
	return &JSONCache[T]{client: client, prefix: prefix, ttl: ttl}
}

func (c *JSONCache[T]) key(id string) string {
	return c.prefix + id
}

// Get returns (nil, false) on any miss, transport error or decode error.
func (c *JSONCache[T]) Get(ctx context.Context, id string) (*T, bool) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			log.Printf("JSONCache: read error for key %s: %v", c.key(id), err)
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Printf("JSONCache: decode error for key %s: %v", c.key(id), err)
		return nil, false
	}
	return &v, true
}

// Set stores value. Write failures are logged, not returned.
func (c *JSONCache[T]) Set(ctx context.Context, id string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("JSONCache: marshal error for key %s: %v", c.key(id), err)
		return
	}
	if err := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); err != nil {
		log.Printf("JSONCache: write error for key %s: %v", c.key(id), err)
	}
}

func (c *JSONCache[T]) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		log.Printf("JSONCache: delete error for key %s: %v", c.key(id), err)
	}
}
