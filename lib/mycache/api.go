package mycache

import (
	"context"
	"os"
	"time"
)

// Cache is a TTL-bound key-value cache. Entries disappear after their
// time-to-live expires.
type Cache[T any] interface {
	Get(c context.Context, key string) (T, bool, error)
	Set(c context.Context, key string, value T, ttl time.Duration) error
	Delete(c context.Context, key string) error
}

func New[T any](c context.Context) (Cache[T], func(), error) {
	if os.Getenv("REDIS_ADDR") != "" {
		return newRedisCache[T](c, os.Getenv("REDIS_ADDR"))
	}

	return NewInMemoryCache[T](c)
}
