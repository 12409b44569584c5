package store

import (
	"context"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// Filter narrows store queries. Zero-valued fields are ignored.
type Filter struct {
	shared.QueryOptions
	OwnerID string
	Status  Status
}

// Repository persists stores. FindByID and FindOne return nil, nil when
// nothing matches.
type Repository interface {
	Create(ctx context.Context, s *Store) (string, error)
	Save(ctx context.Context, id string, s *Store) error
	Update(ctx context.Context, s *Store) error
	Remove(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Store, error)
	FindMany(ctx context.Context, f Filter) ([]*Store, error)
	FindOne(ctx context.Context, f Filter) (*Store, error)
	Count(ctx context.Context, f Filter) (int, error)
	Exists(ctx context.Context, id string) (bool, error)

	FindByOwnerID(ctx context.Context, ownerID string, opts shared.QueryOptions) ([]*Store, error)
}
