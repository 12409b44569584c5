package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/internal/domain/asset"
	"github.com/oksasatya/fashion-studio/internal/domain/model"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
)

const defaultSearchSize = 20

type ModelService struct {
	Repo      model.Repository
	Assets    asset.Repository
	Guard     *Guard
	Indexer   ModelIndexer
	Publisher EventPublisher
	Logger    *logrus.Logger
}

func NewModelService(repo model.Repository, assets asset.Repository, guard *Guard, indexer ModelIndexer, pub EventPublisher, logger *logrus.Logger) *ModelService {
	return &ModelService{Repo: repo, Assets: assets, Guard: guard, Indexer: indexer, Publisher: pub, Logger: logger}
}

// Create adds a DRAFT model to an operational store owned by actorID.
func (s *ModelService) Create(ctx context.Context, actorID, storeID string, in model.NewInput) (*model.Model, error) {
	st, err := s.Guard.OperationalStore(ctx, actorID, storeID, "create model")
	if err != nil {
		return nil, err
	}
	in.StoreID = storeID
	m, err := model.New(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkStoreAssets(ctx, st, in.ReferenceImageIDs); err != nil {
		return nil, err
	}
	if _, err := s.Repo.Create(ctx, m); err != nil {
		s.Logger.WithError(err).WithField("store_id", storeID).Error("create model failed")
		return nil, fmt.Errorf("create model: %w", err)
	}
	publishEvents(ctx, s.Publisher, s.Logger, m.DomainEvents())
	s.Logger.WithFields(logrus.Fields{"model_id": m.ID().Value(), "store_id": storeID}).Info("model created")
	return m.ClearDomainEvents(), nil
}

func (s *ModelService) Get(ctx context.Context, actorID, modelID string) (*model.Model, error) {
	m, _, err := s.load(ctx, actorID, modelID)
	return m, err
}

// List returns the models of a store matching f, plus the total match count.
func (s *ModelService) List(ctx context.Context, actorID, storeID string, f model.Filter) ([]*model.Model, int, error) {
	if _, err := s.Guard.OwnedStore(ctx, actorID, storeID); err != nil {
		return nil, 0, err
	}
	f.StoreID = storeID
	items, err := s.Repo.FindMany(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list models: %w", err)
	}
	countFilter := f
	countFilter.Limit, countFilter.Offset = 0, 0
	total, err := s.Repo.Count(ctx, countFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("count models: %w", err)
	}
	return items, total, nil
}

// Search runs a free-text query against the model index of one store.
func (s *ModelService) Search(ctx context.Context, actorID, storeID, query string, size int) ([]ModelHit, error) {
	if _, err := s.Guard.OwnedStore(ctx, actorID, storeID); err != nil {
		return nil, err
	}
	if s.Indexer == nil {
		return []ModelHit{}, nil
	}
	if size <= 0 || size > 100 {
		size = defaultSearchSize
	}
	hits, err := s.Indexer.Search(ctx, storeID, query, size)
	if err != nil {
		s.Logger.WithError(err).WithField("store_id", storeID).Error("model search failed")
		return nil, fmt.Errorf("search models: %w", err)
	}
	return hits, nil
}

func (s *ModelService) Update(ctx context.Context, actorID, modelID string, in model.UpdateInput) (*model.Model, error) {
	return s.mutate(ctx, actorID, modelID, "update model", func(st *store.Store, m *model.Model) (*model.Model, error) {
		if in.ReferenceImageIDs != nil {
			if err := s.checkStoreAssets(ctx, st, *in.ReferenceImageIDs); err != nil {
				return nil, err
			}
		}
		return m.Update(in)
	})
}

func (s *ModelService) StartCalibration(ctx context.Context, actorID, modelID string) (*model.Model, error) {
	return s.mutate(ctx, actorID, modelID, "start calibration", func(_ *store.Store, m *model.Model) (*model.Model, error) {
		return m.StartCalibration()
	})
}

func (s *ModelService) AddCalibrationImage(ctx context.Context, actorID, modelID, assetID string) (*model.Model, error) {
	return s.mutate(ctx, actorID, modelID, "add calibration image", func(st *store.Store, m *model.Model) (*model.Model, error) {
		if err := s.checkStoreAssets(ctx, st, []string{assetID}); err != nil {
			return nil, err
		}
		return m.AddCalibrationImage(assetID)
	})
}

func (s *ModelService) ApproveCalibration(ctx context.Context, actorID, modelID, lockedIdentityURL string) (*model.Model, error) {
	return s.mutate(ctx, actorID, modelID, "approve calibration", func(_ *store.Store, m *model.Model) (*model.Model, error) {
		return m.ApproveCalibration(lockedIdentityURL)
	})
}

func (s *ModelService) RejectCalibration(ctx context.Context, actorID, modelID, reason string) (*model.Model, error) {
	return s.mutate(ctx, actorID, modelID, "reject calibration", func(_ *store.Store, m *model.Model) (*model.Model, error) {
		return m.RejectCalibration(reason)
	})
}

func (s *ModelService) RetryCalibration(ctx context.Context, actorID, modelID string) (*model.Model, error) {
	return s.mutate(ctx, actorID, modelID, "retry calibration", func(_ *store.Store, m *model.Model) (*model.Model, error) {
		return m.RetryCalibration()
	})
}

// Archive and the soft-delete pair skip the operational check so models can
// be cleaned up in suspended stores.
func (s *ModelService) Archive(ctx context.Context, actorID, modelID string) (*model.Model, error) {
	m, _, err := s.load(ctx, actorID, modelID)
	if err != nil {
		return nil, err
	}
	next, err := m.Archive()
	if err != nil {
		return nil, err
	}
	return s.save(ctx, next)
}

func (s *ModelService) Delete(ctx context.Context, actorID, modelID string) error {
	if _, err := s.Guard.Actor(ctx, actorID, "delete model"); err != nil {
		return err
	}
	m, _, err := s.load(ctx, actorID, modelID)
	if err != nil {
		return err
	}
	_, err = s.save(ctx, m.Delete())
	return err
}

func (s *ModelService) Restore(ctx context.Context, actorID, modelID string) (*model.Model, error) {
	if _, err := s.Guard.Actor(ctx, actorID, "restore model"); err != nil {
		return nil, err
	}
	m, err := s.Repo.FindByID(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("find model: %w", err)
	}
	if m == nil {
		return nil, model.NewNotFoundError(modelID)
	}
	if _, err := s.Guard.OwnedStore(ctx, actorID, m.StoreID().Value()); err != nil {
		return nil, err
	}
	return s.save(ctx, m.Restore())
}

// load returns a live model together with its store, checking actorID owns it.
func (s *ModelService) load(ctx context.Context, actorID, modelID string) (*model.Model, *store.Store, error) {
	m, err := s.Repo.FindByID(ctx, modelID)
	if err != nil {
		return nil, nil, fmt.Errorf("find model: %w", err)
	}
	if m == nil || m.IsDeleted() {
		return nil, nil, model.NewNotFoundError(modelID)
	}
	st, err := s.Guard.OwnedStore(ctx, actorID, m.StoreID().Value())
	if err != nil {
		return nil, nil, err
	}
	return m, st, nil
}

func (s *ModelService) mutate(ctx context.Context, actorID, modelID, operation string, fn func(*store.Store, *model.Model) (*model.Model, error)) (*model.Model, error) {
	m, st, err := s.load(ctx, actorID, modelID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Guard.Actor(ctx, actorID, operation); err != nil {
		return nil, err
	}
	if err := st.EnsureOperational(operation); err != nil {
		return nil, err
	}
	next, err := fn(st, m)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, next)
}

func (s *ModelService) save(ctx context.Context, m *model.Model) (*model.Model, error) {
	events := m.DomainEvents()
	if len(events) == 0 {
		return m, nil
	}
	if err := s.Repo.Update(ctx, m); err != nil {
		s.Logger.WithError(err).WithField("model_id", m.ID().Value()).Error("update model failed")
		return nil, fmt.Errorf("update model: %w", err)
	}
	publishEvents(ctx, s.Publisher, s.Logger, events)
	return m.ClearDomainEvents(), nil
}

// checkStoreAssets fails unless every id names a live asset of st.
func (s *ModelService) checkStoreAssets(ctx context.Context, st *store.Store, ids []string) error {
	for _, id := range ids {
		a, err := s.Assets.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find asset: %w", err)
		}
		if a == nil || a.IsDeleted() {
			return model.NewBusinessRuleViolationError("asset " + id + " does not exist")
		}
		if !a.StoreID().Equals(st.ID()) {
			return model.NewBusinessRuleViolationError("asset " + id + " belongs to another store")
		}
	}
	return nil
}
