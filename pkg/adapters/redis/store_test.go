package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/animgraph/pkg/adapters/redis"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	tests.SlotStoreContractTest(t, redis.NewFromClient(client))
}

func TestRedisStore_KeyLayout(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "avatar", &domain.Slot{Key: "Main", ID: "1"}))
	assert.True(t, mr.Exists("test:avatar:slot:Main"))
	assert.True(t, mr.Exists("test:avatar:index"))

	require.NoError(t, store.Delete(ctx, "avatar", "Main"))
	assert.False(t, mr.Exists("test:avatar:slot:Main"))

	keys, err := store.List(ctx, "avatar")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
