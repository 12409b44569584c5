package model

import (
	"context"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

type Filter struct {
	shared.QueryOptions
	StoreID string
	Status  Status
	Gender  Gender
}

// Repository persists models. FindByID and FindOne return nil, nil when
// nothing matches.
type Repository interface {
	Create(ctx context.Context, m *Model) (string, error)
	Save(ctx context.Context, id string, m *Model) error
	Update(ctx context.Context, m *Model) error
	Remove(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Model, error)
	FindMany(ctx context.Context, f Filter) ([]*Model, error)
	FindOne(ctx context.Context, f Filter) (*Model, error)
	Count(ctx context.Context, f Filter) (int, error)
	Exists(ctx context.Context, id string) (bool, error)

	FindByStoreID(ctx context.Context, storeID string, opts shared.QueryOptions) ([]*Model, error)
	FindByStatus(ctx context.Context, status Status, opts shared.QueryOptions) ([]*Model, error)
	FindActiveByStoreID(ctx context.Context, storeID string) ([]*Model, error)
}
