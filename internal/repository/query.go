package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seniorcare-lead-api/internal/database"
)

const (
	defaultPerPage = 20
	maxPerPage     = 200
)

// GridQuery is the paging/search part of every grid request
type GridQuery struct {
	Page    int
	PerPage int
	Search  string
}

// Normalize clamps paging values to sane bounds.
func (q GridQuery) Normalize() GridQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Offset returns the row offset of the requested page.
func (q GridQuery) Offset() int {
	q = q.Normalize()
	return (q.Page - 1) * q.PerPage
}

func paginate(q GridQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q = q.Normalize()
		return db.Offset(q.Offset()).Limit(q.PerPage)
	}
}

// inSpace filters by tenant. table qualifies the column when queries join.
func inSpace(table string, spaceID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if table == "" {
			return db.Where("space_id = ?", spaceID)
		}
		return db.Where(table+".space_id = ?", spaceID)
	}
}

// likeAny matches the search term against any of columns, case-insensitive.
func likeAny(search string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(search) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, c := range columns {
			clauses[i] = "LOWER(" + c + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// conn returns the transaction carried by ctx or db.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	return database.Conn(ctx, db)
}

// uniqueIDs drops duplicates while keeping order.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// findInSpace loads the rows of T with the given ids inside spaceID.
func findInSpace[T any](ctx context.Context, db *gorm.DB, spaceID uuid.UUID, ids []uuid.UUID, preloads ...string) ([]T, error) {
	items := []T{}
	if len(ids) == 0 {
		return items, nil
	}
	q := conn(ctx, db).Scopes(inSpace("", spaceID)).Where("id IN ?", uniqueIDs(ids))
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// deleteInSpace removes the rows of T with the given ids inside spaceID.
func deleteInSpace[T any](ctx context.Context, db *gorm.DB, spaceID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := conn(ctx, db).
		Scopes(inSpace("", spaceID)).
		Where("id IN ?", uniqueIDs(ids)).
		Delete(new(T))
	return result.RowsAffected, result.Error
}

// countAndFind runs the count and the paged select of one grid query.
// Preloads only apply to the select.
func countAndFind[T any](base func() *gorm.DB, q GridQuery, order string, out *[]T, preloads ...string) (int64, error) {
	var total int64
	if err := base().Model(new(T)).Count(&total).Error; err != nil {
		return 0, err
	}
	find := base().Scopes(paginate(q)).Order(order)
	for _, p := range preloads {
		find = find.Preload(p)
	}
	if err := find.Find(out).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// idsInSpace returns the subset of ids that exist in spaceID.
func idsInSpace[T any](ctx context.Context, db *gorm.DB, spaceID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	found := []uuid.UUID{}
	if len(ids) == 0 {
		return found, nil
	}
	if err := conn(ctx, db).
		Model(new(T)).
		Scopes(inSpace("", spaceID)).
		Where("id IN ?", uniqueIDs(ids)).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return found, nil
}
