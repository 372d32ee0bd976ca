package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dependent names a table column that references another entity.
type Dependent struct {
	Table  string
	Column string
}

// RelatedRepository counts rows of dependent tables that reference a set of ids.
type RelatedRepository interface {
	Count(ctx context.Context, dep Dependent, ids []uuid.UUID) (map[uuid.UUID]int64, error)
}

type relatedRepositoryImpl struct {
	db *gorm.DB
}

// NewRelatedRepository creates a new instance of RelatedRepository
func NewRelatedRepository(db *gorm.DB) RelatedRepository {
	return &relatedRepositoryImpl{db: db}
}

type relatedCount struct {
	RefID uuid.UUID
	Total int64
}

// Count returns, per id, how many rows of dep reference it. Ids without
// references are absent from the map.
func (r *relatedRepositoryImpl) Count(ctx context.Context, dep Dependent, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []relatedCount
	if err := conn(ctx, r.db).
		Table(dep.Table).
		Select(dep.Column+" AS ref_id, COUNT(*) AS total").
		Where(dep.Column+" IN ?", uniqueIDs(ids)).
		Group(dep.Column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.RefID] = row.Total
	}
	return counts, nil
}
