package postgres

import (
	"context"
	"fmt"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
)

var stores = table[store.Record, *store.Store]{
	name: "stores",
	columns: []string{
		"id", "owner_id", "name", "description", "default_style", "logo_asset_id",
		"status", "settings", "created_at", "updated_at", "deleted_at",
	},
	args: func(r store.Record) []any {
		return []any{
			r.ID, r.OwnerID, r.Name, r.Description, r.DefaultStyle, r.LogoAssetID,
			r.Status, r.Settings, r.CreatedAt, r.UpdatedAt, r.DeletedAt,
		}
	},
	toDomain: store.ToDomain,
	sortable: map[string]string{"createdAt": "created_at", "updatedAt": "updated_at", "name": "name"},
}

type StoreRepository struct {
	db DB
}

func NewStoreRepository(db DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Create(ctx context.Context, s *store.Store) (string, error) {
	rec := store.ToPersistence(s)
	if err := stores.insert(ctx, r.db, rec); err != nil {
		if isUniqueViolation(err) {
			return "", store.NewAlreadyExistsError(rec.ID)
		}
		return "", fmt.Errorf("insert store: %w", err)
	}
	return rec.ID, nil
}

func (r *StoreRepository) Save(ctx context.Context, id string, s *store.Store) error {
	rec := store.ToPersistence(s)
	rec.ID = id
	return stores.upsert(ctx, r.db, rec)
}

func (r *StoreRepository) Update(ctx context.Context, s *store.Store) error {
	return stores.update(ctx, r.db, store.ToPersistence(s))
}

func (r *StoreRepository) Remove(ctx context.Context, id string) error {
	return stores.remove(ctx, r.db, id)
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*store.Store, error) {
	return stores.byID(ctx, r.db, id)
}

func (r *StoreRepository) FindMany(ctx context.Context, f store.Filter) ([]*store.Store, error) {
	return stores.find(ctx, r.db, storeWhere(f), f.QueryOptions)
}

func (r *StoreRepository) FindOne(ctx context.Context, f store.Filter) (*store.Store, error) {
	return stores.findOne(ctx, r.db, storeWhere(f), f.QueryOptions)
}

func (r *StoreRepository) Count(ctx context.Context, f store.Filter) (int, error) {
	return stores.count(ctx, r.db, storeWhere(f))
}

func (r *StoreRepository) Exists(ctx context.Context, id string) (bool, error) {
	return stores.exists(ctx, r.db, id)
}

func (r *StoreRepository) FindByOwnerID(ctx context.Context, ownerID string, opts shared.QueryOptions) ([]*store.Store, error) {
	return r.FindMany(ctx, store.Filter{QueryOptions: opts, OwnerID: ownerID})
}

func storeWhere(f store.Filter) *where {
	w := &where{}
	w.live(f.QueryOptions)
	w.eqIf("owner_id", f.OwnerID)
	w.eqIf("status", string(f.Status))
	return w
}

var _ store.Repository = (*StoreRepository)(nil)
