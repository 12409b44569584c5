package cache

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-studio/internal/domain/store"
)

type countingStores struct {
	store.Repository
	items map[string]*store.Store
	reads int
}

func (c *countingStores) FindByID(_ context.Context, id string) (*store.Store, error) {
	c.reads++
	return c.items[id], nil
}

func (c *countingStores) Update(_ context.Context, s *store.Store) error {
	c.items[s.ID().Value()] = s
	return nil
}

func TestStoreRepositoryFallsThroughWhenRedisIsDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s, err := store.New(store.NewInput{OwnerID: "user_1", Name: "Atelier"})
	require.NoError(t, err)
	inner := &countingStores{items: map[string]*store.Store{s.ID().Value(): s.ClearDomainEvents()}}
	repo := NewStoreRepository(inner, rdb, time.Minute, logger)
	ctx := context.Background()

	got, err := repo.FindByID(ctx, s.ID().Value())
	require.NoError(t, err)
	assert.True(t, s.Equals(got))
	assert.Equal(t, 1, inner.reads)

	missing, err := repo.FindByID(ctx, "store_missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Update(ctx, got))
}

func TestStoreKey(t *testing.T) {
	assert.Equal(t, "store:abc", storeKey("abc"))
}
