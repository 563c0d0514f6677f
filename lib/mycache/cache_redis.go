package mycache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisCache[T any] struct {
	client *redis.Client
}

func newRedisCache[T any](c context.Context, addr string) (Cache[T], func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	err := client.Ping(c).Err()
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to redis at %s: %s", addr, err)
	}

	return &redisCache[T]{
			client: client,
		}, func() {
			client.Close()
		}, nil
}

func (rc *redisCache[T]) Get(c context.Context, key string) (T, bool, error) {
	var value T

	raw, err := rc.client.Get(c, key).Result()
	if err == redis.Nil {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("error fetching %s from redis: %s", key, err)
	}

	err = json.Unmarshal([]byte(raw), &value)
	if err != nil {
		return value, false, fmt.Errorf("error unmarshalling cached %s: %s", key, err)
	}

	return value, true, nil
}

func (rc *redisCache[T]) Set(c context.Context, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshalling %s: %s", key, err)
	}

	err = rc.client.SetEx(c, key, raw, ttl).Err()
	if err != nil {
		return fmt.Errorf("error storing %s in redis: %s", key, err)
	}

	return nil
}

func (rc *redisCache[T]) Delete(c context.Context, key string) error {
	err := rc.client.Del(c, key).Err()
	if err != nil {
		return fmt.Errorf("error deleting %s from redis: %s", key, err)
	}

	return nil
}
