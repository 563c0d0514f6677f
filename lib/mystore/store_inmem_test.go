package mystore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	UID   string
	Count int
}

func TestInMemoryStore(t *testing.T) {
	c := context.TODO()
	store, cleanup, err := NewInMemoryStore[record](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get on empty store", func(t *testing.T) {
		_, exists, err := store.Get(c, "unknown")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Put and get", func(t *testing.T) {
		err := store.Put(c, "a", record{UID: "a", Count: 1})
		assert.NoError(t, err)

		got, exists, err := store.Get(c, "a")
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, 1, got.Count)
	})

	t.Run("Mutation within transaction is committed", func(t *testing.T) {
		err := store.RunInTransaction(c, func(c context.Context) error {
			got, _, err := store.Get(c, "a")
			if err != nil {
				return err
			}
			got.Count++
			return store.Put(c, "a", got)
		})
		assert.NoError(t, err)

		got, _, _ := store.Get(c, "a")
		assert.Equal(t, 2, got.Count)
	})

	t.Run("Failing transaction returns error", func(t *testing.T) {
		err := store.RunInTransaction(c, func(c context.Context) error {
			return fmt.Errorf("boom")
		})
		assert.Error(t, err)
	})
}
