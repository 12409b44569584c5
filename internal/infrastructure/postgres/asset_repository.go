package postgres

import (
	"context"
	"fmt"

	"github.com/oksasatya/fashion-studio/internal/domain/asset"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

var assets = table[asset.Record, *asset.Asset]{
	name: "assets",
	columns: []string{
		"id", "store_id", "type", "category", "filename", "mime_type", "size_bytes", "storage_path",
		"cdn_url", "thumbnail_url", "metadata", "uploaded_by", "status", "failure_reason",
		"created_at", "updated_at", "deleted_at",
	},
	args: func(r asset.Record) []any {
		return []any{
			r.ID, r.StoreID, r.Type, r.Category, r.Filename, r.MimeType, r.SizeBytes, r.StoragePath,
			r.CdnURL, r.ThumbnailURL, r.Metadata, r.UploadedBy, r.Status, r.FailureReason,
			r.CreatedAt, r.UpdatedAt, r.DeletedAt,
		}
	},
	toDomain: asset.ToDomain,
	sortable: map[string]string{"createdAt": "created_at", "updatedAt": "updated_at", "filename": "filename", "sizeBytes": "size_bytes"},
}

type AssetRepository struct {
	db DB
}

func NewAssetRepository(db DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(ctx context.Context, a *asset.Asset) (string, error) {
	rec := asset.ToPersistence(a)
	if err := assets.insert(ctx, r.db, rec); err != nil {
		if isUniqueViolation(err) {
			return "", asset.NewAlreadyExistsError(rec.ID)
		}
		return "", fmt.Errorf("insert asset: %w", err)
	}
	return rec.ID, nil
}

func (r *AssetRepository) Save(ctx context.Context, id string, a *asset.Asset) error {
	rec := asset.ToPersistence(a)
	rec.ID = id
	return assets.upsert(ctx, r.db, rec)
}

func (r *AssetRepository) Update(ctx context.Context, a *asset.Asset) error {
	return assets.update(ctx, r.db, asset.ToPersistence(a))
}

func (r *AssetRepository) Remove(ctx context.Context, id string) error {
	return assets.remove(ctx, r.db, id)
}

func (r *AssetRepository) FindByID(ctx context.Context, id string) (*asset.Asset, error) {
	return assets.byID(ctx, r.db, id)
}

func (r *AssetRepository) FindMany(ctx context.Context, f asset.Filter) ([]*asset.Asset, error) {
	return assets.find(ctx, r.db, assetWhere(f), f.QueryOptions)
}

func (r *AssetRepository) FindOne(ctx context.Context, f asset.Filter) (*asset.Asset, error) {
	return assets.findOne(ctx, r.db, assetWhere(f), f.QueryOptions)
}

func (r *AssetRepository) Count(ctx context.Context, f asset.Filter) (int, error) {
	return assets.count(ctx, r.db, assetWhere(f))
}

func (r *AssetRepository) Exists(ctx context.Context, id string) (bool, error) {
	return assets.exists(ctx, r.db, id)
}

func (r *AssetRepository) FindByStoreID(ctx context.Context, storeID string, opts shared.QueryOptions) ([]*asset.Asset, error) {
	return r.FindMany(ctx, asset.Filter{QueryOptions: opts, StoreID: storeID})
}

func (r *AssetRepository) FindByStatus(ctx context.Context, status asset.Status, opts shared.QueryOptions) ([]*asset.Asset, error) {
	return r.FindMany(ctx, asset.Filter{QueryOptions: opts, Status: status})
}

func (r *AssetRepository) FindByCategory(ctx context.Context, storeID string, category asset.Category, opts shared.QueryOptions) ([]*asset.Asset, error) {
	return r.FindMany(ctx, asset.Filter{QueryOptions: opts, StoreID: storeID, Category: category})
}

func (r *AssetRepository) FindByModelID(ctx context.Context, modelID string, opts shared.QueryOptions) ([]*asset.Asset, error) {
	return r.FindMany(ctx, asset.Filter{QueryOptions: opts, ModelID: modelID})
}

func (r *AssetRepository) FindByGenerationID(ctx context.Context, generationID string, opts shared.QueryOptions) ([]*asset.Asset, error) {
	return r.FindMany(ctx, asset.Filter{QueryOptions: opts, GenerationID: generationID})
}

// assetWhere filters model and generation links through the metadata JSON.
func assetWhere(f asset.Filter) *where {
	w := &where{}
	w.live(f.QueryOptions)
	w.eqIf("store_id", f.StoreID)
	w.eqIf("status", string(f.Status))
	w.eqIf("category", string(f.Category))
	w.eqIf("uploaded_by", f.UploadedBy)
	w.eqIf("metadata->>'"+asset.MetadataModelID+"'", f.ModelID)
	w.eqIf("metadata->>'"+asset.MetadataGenerationID+"'", f.GenerationID)
	return w
}

var _ asset.Repository = (*AssetRepository)(nil)
