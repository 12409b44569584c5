package postgres

import (
	"context"
	"fmt"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/domain/user"
)

var users = table[user.Record, *user.User]{
	name:    "users",
	columns: []string{"id", "full_name", "locale", "status", "external_id", "created_at", "updated_at", "deleted_at"},
	args: func(r user.Record) []any {
		return []any{r.ID, r.FullName, r.Locale, r.Status, r.ExternalID, r.CreatedAt, r.UpdatedAt, r.DeletedAt}
	},
	toDomain: user.ToDomain,
	sortable: map[string]string{"createdAt": "created_at", "updatedAt": "updated_at", "fullName": "full_name"},
}

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (string, error) {
	rec := user.ToPersistence(u)
	if err := users.insert(ctx, r.db, rec); err != nil {
		if isUniqueViolation(err) {
			return "", user.NewAlreadyExistsError(rec.ID)
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return rec.ID, nil
}

func (r *UserRepository) Save(ctx context.Context, id string, u *user.User) error {
	rec := user.ToPersistence(u)
	rec.ID = id
	return users.upsert(ctx, r.db, rec)
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	return users.update(ctx, r.db, user.ToPersistence(u))
}

func (r *UserRepository) Remove(ctx context.Context, id string) error {
	return users.remove(ctx, r.db, id)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return users.byID(ctx, r.db, id)
}

func (r *UserRepository) FindMany(ctx context.Context, f user.Filter) ([]*user.User, error) {
	return users.find(ctx, r.db, userWhere(f), f.QueryOptions)
}

func (r *UserRepository) FindOne(ctx context.Context, f user.Filter) (*user.User, error) {
	return users.findOne(ctx, r.db, userWhere(f), f.QueryOptions)
}

func (r *UserRepository) Count(ctx context.Context, f user.Filter) (int, error) {
	return users.count(ctx, r.db, userWhere(f))
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	return users.exists(ctx, r.db, id)
}

func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	f := user.Filter{QueryOptions: shared.QueryOptions{IncludeDeleted: true}, ExternalID: externalID}
	return users.findOne(ctx, r.db, userWhere(f), f.QueryOptions)
}

func userWhere(f user.Filter) *where {
	w := &where{}
	w.live(f.QueryOptions)
	w.eqIf("status", string(f.Status))
	w.eqIf("locale", f.Locale)
	w.eqIf("external_id", f.ExternalID)
	return w
}

var _ user.Repository = (*UserRepository)(nil)
