package user

import (
	"context"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

type Filter struct {
	shared.QueryOptions
	Status     Status
	Locale     string
	ExternalID string
}

// Repository persists users. FindByID, FindOne and FindByExternalID return
// nil, nil when nothing matches.
type Repository interface {
	Create(ctx context.Context, u *User) (string, error)
	Save(ctx context.Context, id string, u *User) error
	Update(ctx context.Context, u *User) error
	Remove(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindMany(ctx context.Context, f Filter) ([]*User, error)
	FindOne(ctx context.Context, f Filter) (*User, error)
	Count(ctx context.Context, f Filter) (int, error)
	Exists(ctx context.Context, id string) (bool, error)

	FindByExternalID(ctx context.Context, externalID string) (*User, error)
}
