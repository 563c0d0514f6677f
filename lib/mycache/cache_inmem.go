package mycache

import (
	"context"
	"sync"
	"time"
)

type inMemoryCache[T any] struct {
	sync.Mutex
	entries map[string]inMemoryEntry[T]
}

type inMemoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func NewInMemoryCache[T any](c context.Context) (Cache[T], func(), error) {
	return &inMemoryCache[T]{
		entries: map[string]inMemoryEntry[T]{},
	}, func() {}, nil
}

func (imc *inMemoryCache[T]) Get(c context.Context, key string) (T, bool, error) {
	imc.Lock()
	defer imc.Unlock()

	entry, found := imc.entries[key]
	if !found {
		var value T
		return value, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(imc.entries, key)
		var value T
		return value, false, nil
	}

	return entry.value, true, nil
}

func (imc *inMemoryCache[T]) Set(c context.Context, key string, value T, ttl time.Duration) error {
	imc.Lock()
	defer imc.Unlock()

	imc.entries[key] = inMemoryEntry[T]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

func (imc *inMemoryCache[T]) Delete(c context.Context, key string) error {
	imc.Lock()
	defer imc.Unlock()

	delete(imc.entries, key)

	return nil
}
