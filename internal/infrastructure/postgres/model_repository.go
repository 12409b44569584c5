package postgres

import (
	"context"
	"fmt"

	"github.com/oksasatya/fashion-studio/internal/domain/model"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

var models = table[model.Record, *model.Model]{
	name: "models",
	columns: []string{
		"id", "store_id", "name", "description", "status", "gender", "age_range", "ethnicity", "body_type",
		"prompt", "reference_image_ids", "calibration_image_ids", "locked_identity_url", "failure_reason",
		"lighting_config", "camera_config", "texture_preferences", "product_categories", "support_outfit_swapping",
		"created_at", "updated_at", "deleted_at",
	},
	args: func(r model.Record) []any {
		return []any{
			r.ID, r.StoreID, r.Name, r.Description, r.Status, r.Gender, r.AgeRange, r.Ethnicity, r.BodyType,
			r.Prompt, r.ReferenceImageIDs, r.CalibrationImageIDs, r.LockedIdentityURL, r.FailureReason,
			r.LightingConfig, r.CameraConfig, r.TexturePreferences, r.ProductCategories, r.SupportOutfitSwapping,
			r.CreatedAt, r.UpdatedAt, r.DeletedAt,
		}
	},
	toDomain: model.ToDomain,
	sortable: map[string]string{"createdAt": "created_at", "updatedAt": "updated_at", "name": "name", "status": "status"},
}

type ModelRepository struct {
	db DB
}

func NewModelRepository(db DB) *ModelRepository {
	return &ModelRepository{db: db}
}

func (r *ModelRepository) Create(ctx context.Context, m *model.Model) (string, error) {
	rec := model.ToPersistence(m)
	if err := models.insert(ctx, r.db, rec); err != nil {
		if isUniqueViolation(err) {
			return "", model.NewAlreadyExistsError(rec.ID)
		}
		return "", fmt.Errorf("insert model: %w", err)
	}
	return rec.ID, nil
}

func (r *ModelRepository) Save(ctx context.Context, id string, m *model.Model) error {
	rec := model.ToPersistence(m)
	rec.ID = id
	return models.upsert(ctx, r.db, rec)
}

func (r *ModelRepository) Update(ctx context.Context, m *model.Model) error {
	return models.update(ctx, r.db, model.ToPersistence(m))
}

func (r *ModelRepository) Remove(ctx context.Context, id string) error {
	return models.remove(ctx, r.db, id)
}

func (r *ModelRepository) FindByID(ctx context.Context, id string) (*model.Model, error) {
	return models.byID(ctx, r.db, id)
}

func (r *ModelRepository) FindMany(ctx context.Context, f model.Filter) ([]*model.Model, error) {
	return models.find(ctx, r.db, modelWhere(f), f.QueryOptions)
}

func (r *ModelRepository) FindOne(ctx context.Context, f model.Filter) (*model.Model, error) {
	return models.findOne(ctx, r.db, modelWhere(f), f.QueryOptions)
}

func (r *ModelRepository) Count(ctx context.Context, f model.Filter) (int, error) {
	return models.count(ctx, r.db, modelWhere(f))
}

func (r *ModelRepository) Exists(ctx context.Context, id string) (bool, error) {
	return models.exists(ctx, r.db, id)
}

func (r *ModelRepository) FindByStoreID(ctx context.Context, storeID string, opts shared.QueryOptions) ([]*model.Model, error) {
	return r.FindMany(ctx, model.Filter{QueryOptions: opts, StoreID: storeID})
}

func (r *ModelRepository) FindByStatus(ctx context.Context, status model.Status, opts shared.QueryOptions) ([]*model.Model, error) {
	return r.FindMany(ctx, model.Filter{QueryOptions: opts, Status: status})
}

// FindActiveByStoreID returns every live ACTIVE model of the store, newest first.
func (r *ModelRepository) FindActiveByStoreID(ctx context.Context, storeID string) ([]*model.Model, error) {
	return r.FindMany(ctx, model.Filter{
		QueryOptions: shared.QueryOptions{Limit: maxLimit},
		StoreID:      storeID,
		Status:       model.StatusActive,
	})
}

func modelWhere(f model.Filter) *where {
	w := &where{}
	w.live(f.QueryOptions)
	w.eqIf("store_id", f.StoreID)
	w.eqIf("status", string(f.Status))
	w.eqIf("gender", string(f.Gender))
	return w
}

var _ model.Repository = (*ModelRepository)(nil)
