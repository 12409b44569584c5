package application

import (
	"context"
	"fmt"

	"github.com/oksasatya/fashion-studio/internal/domain/store"
	"github.com/oksasatya/fashion-studio/internal/domain/user"
)

// Guard resolves the acting user and the store they work in. Every service
// that touches store-scoped data goes through it.
type Guard struct {
	Users  user.Repository
	Stores store.Repository
}

func NewGuard(users user.Repository, stores store.Repository) *Guard {
	return &Guard{Users: users, Stores: stores}
}

// Actor loads the acting user and checks they may perform operation.
func (g *Guard) Actor(ctx context.Context, actorID, operation string) (*user.User, error) {
	u, err := g.Users.FindByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, user.NewNotFoundError(actorID)
	}
	if err := u.EnsureCanAct(operation); err != nil {
		return nil, err
	}
	return u, nil
}

// OwnedStore loads storeID and checks actorID owns it. Deleted stores are
// returned so they can still be read and restored.
func (g *Guard) OwnedStore(ctx context.Context, actorID, storeID string) (*store.Store, error) {
	s, err := g.Stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("find store: %w", err)
	}
	if s == nil {
		return nil, store.NewNotFoundError(storeID)
	}
	if err := s.EnsureOwnedBy(actorID); err != nil {
		return nil, err
	}
	return s, nil
}

// OperationalStore is OwnedStore plus the checks for creating new work in
// the store: the actor must be able to act and the store must be ACTIVE.
func (g *Guard) OperationalStore(ctx context.Context, actorID, storeID, operation string) (*store.Store, error) {
	if _, err := g.Actor(ctx, actorID, operation); err != nil {
		return nil, err
	}
	s, err := g.OwnedStore(ctx, actorID, storeID)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureOperational(operation); err != nil {
		return nil, err
	}
	return s, nil
}
