package postgres

import (
	"context"
	"strings"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

// table describes how one aggregate's Record maps onto its SQL table. The
// first column must be id.
type table[R any, T any] struct {
	name     string
	columns  []string
	args     func(R) []any
	toDomain func(R) (T, error)
	sortable map[string]string
}

func (t table[R, T]) selectSQL() string {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.name
}

func (t table[R, T]) insert(ctx context.Context, db DB, r R) error {
	cols, ph := columns(t.columns...)
	_, err := db.Exec(ctx, "INSERT INTO "+t.name+" ("+cols+") VALUES ("+ph+")", t.args(r)...)
	return err
}

func (t table[R, T]) upsert(ctx context.Context, db DB, r R) error {
	cols, ph := columns(t.columns...)
	sql := "INSERT INTO " + t.name + " (" + cols + ") VALUES (" + ph + ") ON CONFLICT (id) DO UPDATE SET " + upsertSet(t.columns...)
	_, err := db.Exec(ctx, sql, t.args(r)...)
	return err
}

func (t table[R, T]) update(ctx context.Context, db DB, r R) error {
	return affected(db.Exec(ctx, "UPDATE "+t.name+" SET "+updateSet(t.columns...)+" WHERE id = $1", t.args(r)...))
}

func (t table[R, T]) byID(ctx context.Context, db DB, id string) (T, error) {
	return first(ctx, db, t.toDomain, t.selectSQL()+" WHERE id = $1", id)
}

func (t table[R, T]) find(ctx context.Context, db DB, w *where, opts shared.QueryOptions) ([]T, error) {
	return many(ctx, db, t.toDomain, t.selectSQL()+w.String()+page(opts, t.sortable), w.args...)
}

func (t table[R, T]) findOne(ctx context.Context, db DB, w *where, opts shared.QueryOptions) (T, error) {
	opts.Limit, opts.Offset = 1, 0
	return first(ctx, db, t.toDomain, t.selectSQL()+w.String()+page(opts, t.sortable), w.args...)
}

func (t table[R, T]) count(ctx context.Context, db DB, w *where) (int, error) {
	return count(ctx, db, t.name, w)
}

func (t table[R, T]) exists(ctx context.Context, db DB, id string) (bool, error) {
	return exists(ctx, db, t.name, id)
}

func (t table[R, T]) remove(ctx context.Context, db DB, id string) error {
	return remove(ctx, db, t.name, id)
}
