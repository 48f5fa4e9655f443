package shared

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, time.Minute), mr
}

func TestCheckAndInsertRejectsReplay(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.CheckAndInsert(ctx, "abc", "/purchase/vendor"))
	err := store.CheckAndInsert(ctx, "abc", "/purchase/vendor")
	assert.True(t, errors.Is(err, ErrIdempotencyConflict))

	require.NoError(t, store.CheckAndInsert(ctx, "abc", "/public/party"))
	assert.True(t, mr.Exists(IdempotencyKey("/purchase/vendor", "abc")))
	assert.Equal(t, time.Minute, mr.TTL(IdempotencyKey("/purchase/vendor", "abc")))
}

func TestKeysExpire(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.CheckAndInsert(ctx, "abc", "m"))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, store.CheckAndInsert(ctx, "abc", "m"))
}

func TestDeleteReleasesKey(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.CheckAndInsert(ctx, "abc", "m"))
	require.NoError(t, store.Delete(ctx, "abc", "m"))
	require.NoError(t, store.CheckAndInsert(ctx, "abc", "m"))
}

func TestNilStoreIsDisabled(t *testing.T) {
	store := NewIdempotencyStore(nil, time.Minute)
	require.Nil(t, store)
	assert.NoError(t, store.CheckAndInsert(context.Background(), "abc", "m"))
	assert.NoError(t, store.Delete(context.Background(), "abc", "m"))
}

func TestCheckAndInsertRequiresKey(t *testing.T) {
	store, _ := newStore(t)
	assert.Error(t, store.CheckAndInsert(context.Background(), "", "m"))
	assert.Error(t, store.CheckAndInsert(context.Background(), "abc", ""))
}
