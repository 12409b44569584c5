package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/fashion-studio/internal/domain/shared"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// ErrNotFound is returned by Update when no row has the aggregate's id.
var ErrNotFound = errors.New("postgres: row not found")

// DB is the subset of pgxpool.Pool the repositories use, so they also run
// inside a pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// where accumulates AND-ed conditions with positional arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) eq(column string, v any) {
	w.conds = append(w.conds, column+" = "+w.arg(v))
}

// eqIf adds column = v unless v is empty.
func (w *where) eqIf(column, v string) {
	if v != "" {
		w.eq(column, v)
	}
}

func (w *where) raw(cond string) { w.conds = append(w.conds, cond) }

func (w *where) live(opts shared.QueryOptions) {
	if !opts.IncludeDeleted {
		w.raw("deleted_at IS NULL")
	}
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page renders ORDER BY / LIMIT / OFFSET. SortBy must name a key of sortable;
// anything else falls back to created_at. Zero Limit means defaultLimit.
func page(opts shared.QueryOptions, sortable map[string]string) string {
	column := "created_at"
	if c, ok := sortable[opts.SortBy]; ok {
		column = c
	}
	dir := "DESC"
	if opts.SortOrder == shared.SortAsc {
		dir = "ASC"
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := max(opts.Offset, 0)
	return fmt.Sprintf(" ORDER BY %s %s, id %s LIMIT %d OFFSET %d", column, dir, dir, limit, offset)
}

// collect scans rows by db tag into R and converts each with toDomain.
func collect[R any, T any](rows pgx.Rows, toDomain func(R) (T, error)) ([]T, error) {
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[R])
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		v, err := toDomain(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// first returns the zero T when the query matches nothing.
func first[R any, T any](ctx context.Context, q DB, toDomain func(R) (T, error), sql string, args ...any) (T, error) {
	var zero T
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return zero, err
	}
	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[R])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, nil
	}
	if err != nil {
		return zero, err
	}
	return toDomain(r)
}

func many[R any, T any](ctx context.Context, q DB, toDomain func(R) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, toDomain)
}

func count(ctx context.Context, q DB, table string, w *where) (int, error) {
	var n int
	err := q.QueryRow(ctx, "SELECT COUNT(*) FROM "+table+w.String(), w.args...).Scan(&n)
	return n, err
}

func exists(ctx context.Context, q DB, table, id string) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM "+table+" WHERE id = $1)", id).Scan(&ok)
	return ok, err
}

func remove(ctx context.Context, q DB, table, id string) error {
	_, err := q.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	return err
}

func affected(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// columns renders the insert column list and its placeholders.
func columns(names ...string) (string, string) {
	ph := make([]string, len(names))
	for i := range names {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(names, ", "), strings.Join(ph, ", ")
}

// upsertSet renders "col = EXCLUDED.col" for every column except id.
func upsertSet(names ...string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n == "id" {
			continue
		}
		parts = append(parts, n+" = EXCLUDED."+n)
	}
	return strings.Join(parts, ", ")
}

// updateSet renders "col = $n" for every column except id, which is bound
// to the first placeholder.
func updateSet(names ...string) string {
	parts := make([]string, 0, len(names))
	for i, n := range names {
		if n == "id" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s = $%d", n, i+1))
	}
	return strings.Join(parts, ", ")
}
