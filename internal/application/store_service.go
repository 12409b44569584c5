package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/internal/domain/asset"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
)

type StoreService struct {
	Repo      store.Repository
	Assets    asset.Repository
	Guard     *Guard
	Publisher EventPublisher
	Logger    *logrus.Logger
}

func NewStoreService(repo store.Repository, assets asset.Repository, guard *Guard, pub EventPublisher, logger *logrus.Logger) *StoreService {
	return &StoreService{Repo: repo, Assets: assets, Guard: guard, Publisher: pub, Logger: logger}
}

type CreateStoreInput struct {
	Name         string
	Description  string
	DefaultStyle string
	Settings     *store.SettingsPatch
}

// Create opens a new store owned by actorID.
func (s *StoreService) Create(ctx context.Context, actorID string, in CreateStoreInput) (*store.Store, error) {
	if _, err := s.Guard.Actor(ctx, actorID, "create store"); err != nil {
		return nil, err
	}
	st, err := store.New(store.NewInput{
		OwnerID:      actorID,
		Name:         in.Name,
		Description:  in.Description,
		DefaultStyle: in.DefaultStyle,
		Settings:     in.Settings,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.Repo.Create(ctx, st); err != nil {
		s.Logger.WithError(err).WithField("owner_id", actorID).Error("create store failed")
		return nil, fmt.Errorf("create store: %w", err)
	}
	publishEvents(ctx, s.Publisher, s.Logger, st.DomainEvents())
	s.Logger.WithFields(logrus.Fields{"store_id": st.ID().Value(), "owner_id": actorID}).Info("store created")
	return st.ClearDomainEvents(), nil
}

func (s *StoreService) Get(ctx context.Context, actorID, storeID string) (*store.Store, error) {
	st, err := s.Guard.OwnedStore(ctx, actorID, storeID)
	if err != nil {
		return nil, err
	}
	if st.IsDeleted() {
		return nil, store.NewNotFoundError(storeID)
	}
	return st, nil
}

// List returns the stores owned by actorID and their total count.
func (s *StoreService) List(ctx context.Context, actorID string, opts shared.QueryOptions) ([]*store.Store, int, error) {
	items, err := s.Repo.FindByOwnerID(ctx, actorID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list stores: %w", err)
	}
	total, err := s.Repo.Count(ctx, store.Filter{
		QueryOptions: shared.QueryOptions{IncludeDeleted: opts.IncludeDeleted},
		OwnerID:      actorID,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("count stores: %w", err)
	}
	return items, total, nil
}

func (s *StoreService) Update(ctx context.Context, actorID, storeID string, in store.UpdateInput) (*store.Store, error) {
	return s.mutate(ctx, actorID, storeID, func(st *store.Store) (*store.Store, error) {
		return st.Update(in)
	})
}

func (s *StoreService) UpdateSettings(ctx context.Context, actorID, storeID string, patch store.SettingsPatch) (*store.Store, error) {
	return s.mutate(ctx, actorID, storeID, func(st *store.Store) (*store.Store, error) {
		return st.UpdateSettings(patch)
	})
}

// SetLogo points the store logo at an existing STORE_LOGO asset of the same store.
func (s *StoreService) SetLogo(ctx context.Context, actorID, storeID, assetID string) (*store.Store, error) {
	return s.mutate(ctx, actorID, storeID, func(st *store.Store) (*store.Store, error) {
		a, err := s.Assets.FindByID(ctx, assetID)
		if err != nil {
			return nil, fmt.Errorf("find asset: %w", err)
		}
		if a == nil || a.IsDeleted() {
			return nil, asset.NewNotFoundError(assetID)
		}
		if !a.StoreID().Equals(st.ID()) {
			return nil, store.NewBusinessRuleViolationError("logo asset must belong to the store")
		}
		if a.Category() != asset.CategoryStoreLogo {
			return nil, store.NewBusinessRuleViolationError("logo asset must be in category " + string(asset.CategoryStoreLogo))
		}
		return st.SetLogo(assetID)
	})
}

func (s *StoreService) RemoveLogo(ctx context.Context, actorID, storeID string) (*store.Store, error) {
	return s.mutate(ctx, actorID, storeID, func(st *store.Store) (*store.Store, error) {
		return st.RemoveLogo(), nil
	})
}

// ChangeStatus lets the owner switch a store between ACTIVE and INACTIVE.
// Suspension is an operator decision and cannot be set or lifted here.
func (s *StoreService) ChangeStatus(ctx context.Context, actorID, storeID, status, reason string) (*store.Store, error) {
	target, err := store.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, actorID, storeID, func(st *store.Store) (*store.Store, error) {
		if st.IsSuspended() {
			return nil, store.NewSuspendedError(storeID)
		}
		if target == store.StatusSuspended {
			return nil, store.NewOperationNotAllowedError("suspend store", "suspension is not self-service")
		}
		return st.UpdateStatus(target, reason)
	})
}

func (s *StoreService) Delete(ctx context.Context, actorID, storeID string) error {
	_, err := s.mutate(ctx, actorID, storeID, func(st *store.Store) (*store.Store, error) {
		return st.Delete(), nil
	})
	return err
}

func (s *StoreService) Restore(ctx context.Context, actorID, storeID string) (*store.Store, error) {
	if _, err := s.Guard.Actor(ctx, actorID, "restore store"); err != nil {
		return nil, err
	}
	st, err := s.Guard.OwnedStore(ctx, actorID, storeID)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, st.Restore())
}

// mutate checks actorID may act, loads a live store they own, applies fn and
// persists the result.
func (s *StoreService) mutate(ctx context.Context, actorID, storeID string, fn func(*store.Store) (*store.Store, error)) (*store.Store, error) {
	if _, err := s.Guard.Actor(ctx, actorID, "update store"); err != nil {
		return nil, err
	}
	st, err := s.Get(ctx, actorID, storeID)
	if err != nil {
		return nil, err
	}
	next, err := fn(st)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, next)
}

func (s *StoreService) save(ctx context.Context, st *store.Store) (*store.Store, error) {
	events := st.DomainEvents()
	if len(events) == 0 {
		return st, nil
	}
	if err := s.Repo.Update(ctx, st); err != nil {
		s.Logger.WithError(err).WithField("store_id", st.ID().Value()).Error("update store failed")
		return nil, fmt.Errorf("update store: %w", err)
	}
	publishEvents(ctx, s.Publisher, s.Logger, events)
	return st.ClearDomainEvents(), nil
}
