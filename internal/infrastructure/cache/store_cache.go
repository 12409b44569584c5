// Package cache wraps repositories with a redis read-through layer.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/internal/domain/store"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
)

const storeKeyPrefix = "store:"

// StoreRepository caches FindByID results and drops the entry on every write.
// Redis failures are logged and the call falls through to the wrapped
// repository.
type StoreRepository struct {
	store.Repository
	rdb    *redis.Client
	ttl    time.Duration
	logger logrus.FieldLogger
}

func NewStoreRepository(inner store.Repository, rdb *redis.Client, ttl time.Duration, logger logrus.FieldLogger) *StoreRepository {
	return &StoreRepository{Repository: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func storeKey(id string) string { return storeKeyPrefix + id }

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*store.Store, error) {
	var rec store.Record
	hit, err := helpers.RedisGetJSON(ctx, r.rdb, storeKey(id), &rec)
	if err != nil {
		r.logger.WithError(err).WithField("store_id", id).Warn("store cache read failed")
	}
	if hit {
		if s, err := store.ToDomain(rec); err == nil {
			return s, nil
		}
		r.invalidate(ctx, id)
	}

	s, err := r.Repository.FindByID(ctx, id)
	if err != nil || s == nil {
		return s, err
	}
	if err := helpers.RedisSetJSON(ctx, r.rdb, storeKey(id), store.ToPersistence(s), r.ttl); err != nil {
		r.logger.WithError(err).WithField("store_id", id).Warn("store cache write failed")
	}
	return s, nil
}

func (r *StoreRepository) Save(ctx context.Context, id string, s *store.Store) error {
	err := r.Repository.Save(ctx, id, s)
	r.invalidate(ctx, id)
	return err
}

func (r *StoreRepository) Update(ctx context.Context, s *store.Store) error {
	err := r.Repository.Update(ctx, s)
	r.invalidate(ctx, s.ID().Value())
	return err
}

func (r *StoreRepository) Remove(ctx context.Context, id string) error {
	err := r.Repository.Remove(ctx, id)
	r.invalidate(ctx, id)
	return err
}

func (r *StoreRepository) invalidate(ctx context.Context, id string) {
	if err := helpers.RedisDel(ctx, r.rdb, storeKey(id)); err != nil {
		r.logger.WithError(err).WithField("store_id", id).Warn("store cache invalidate failed")
	}
}

var _ store.Repository = (*StoreRepository)(nil)
