package asset

import (
	"context"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// Filter narrows asset queries. Zero-valued fields are ignored.
type Filter struct {
	shared.QueryOptions
	StoreID      string
	Status       Status
	Category     Category
	UploadedBy   string
	ModelID      string
	GenerationID string
}

// Repository persists assets. FindByID and FindOne return nil, nil when
// nothing matches.
type Repository interface {
	Create(ctx context.Context, a *Asset) (string, error)
	Save(ctx context.Context, id string, a *Asset) error
	Update(ctx context.Context, a *Asset) error
	Remove(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Asset, error)
	FindMany(ctx context.Context, f Filter) ([]*Asset, error)
	FindOne(ctx context.Context, f Filter) (*Asset, error)
	Count(ctx context.Context, f Filter) (int, error)
	Exists(ctx context.Context, id string) (bool, error)

	FindByStoreID(ctx context.Context, storeID string, opts shared.QueryOptions) ([]*Asset, error)
	FindByStatus(ctx context.Context, status Status, opts shared.QueryOptions) ([]*Asset, error)
	FindByCategory(ctx context.Context, storeID string, category Category, opts shared.QueryOptions) ([]*Asset, error)
	FindByModelID(ctx context.Context, modelID string, opts shared.QueryOptions) ([]*Asset, error)
	FindByGenerationID(ctx context.Context, generationID string, opts shared.QueryOptions) ([]*Asset, error)
}
