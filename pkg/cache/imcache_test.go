package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImStore(t *testing.T) {
	ctx := context.Background()
	store := NewImStore[string, int]("imcache", 0)

	_, err := store.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "a", 1))
	v, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, present, err := store.PutIfAbsent(ctx, "a", 2)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 1, v)

	v, present, err = store.PutIfAbsent(ctx, "b", 2)
	require.NoError(t, err)
	assert.False(t, present)
	assert.Equal(t, 2, v)

	require.NoError(t, store.Evict(ctx, "a"))
	_, err = store.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Get(ctx, "b")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestImStoreExpiration(t *testing.T) {
	ctx := context.Background()
	store := NewImStore[string, int]("imcache", 10*time.Millisecond)

	require.NoError(t, store.Put(ctx, "a", 1))
	time.Sleep(50 * time.Millisecond)

	_, err := store.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)
}
