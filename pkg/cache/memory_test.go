package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/navelplace/navel-lib/pkg/testcommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MemoryStore(t *testing.T) {
	type TestResponse struct {
		ID string
	}

	tests := []struct {
		name       string
		expiration time.Duration
		delay      time.Duration
		want       *TestResponse
		wantErr    error
	}{
		{
			name:       "entry without expiration",
			want:       &TestResponse{ID: "1"},
			expiration: 0,
			delay:      10 * time.Millisecond,
		},
		{
			name:       "entry not yet expired",
			want:       &TestResponse{ID: "1"},
			expiration: 1 * time.Second,
			delay:      1 * time.Millisecond,
		},
		{
			name:       "entry expired",
			want:       nil,
			expiration: 10 * time.Millisecond,
			delay:      50 * time.Millisecond,
			wantErr:    ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemory[string, *TestResponse]("memory", tt.expiration)

			err := store.Put(ctx, "1", &TestResponse{ID: "1"})
			require.NoError(t, err)

			time.Sleep(tt.delay)

			got, err := store.Get(ctx, "1")
			if diff := cmp.Diff(tt.wantErr, err, testcommon.ErrorStringComparer()); diff != "" {
				t.Errorf("error diff (+got -want):\n %s", diff)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("diff (+got -want):\n %s", diff)
			}
		})
	}
}

func TestMemoryStorePutIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[int, string]("memory", 20*time.Millisecond)

	got, present, err := store.PutIfAbsent(ctx, 1, "a")
	require.NoError(t, err)
	assert.False(t, present)
	assert.Equal(t, "a", got)

	got, present, err = store.PutIfAbsent(ctx, 1, "b")
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "a", got)

	time.Sleep(50 * time.Millisecond)

	got, present, err = store.PutIfAbsent(ctx, 1, "c")
	require.NoError(t, err)
	assert.False(t, present, "expired entries must be replaced")
	assert.Equal(t, "c", got)
}

func TestMemoryStoreEvictAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[int, string]("memory", 0)

	require.NoError(t, store.Put(ctx, 1, "a"))
	require.NoError(t, store.Put(ctx, 2, "b"))

	require.NoError(t, store.Evict(ctx, 1))
	_, err := store.Get(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)

	v, err := store.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Get(ctx, 2)
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, "memory", store.Name())
}
