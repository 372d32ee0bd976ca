package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seniorcare-lead-api/internal/domain"
)

// ChangeLogFilter narrows a change log grid
type ChangeLogFilter struct {
	LeadID *uuid.UUID
	Type   *domain.ChangeLogType
}

// ChangeLogRepository defines the interface for change log data access
type ChangeLogRepository interface {
	Create(ctx context.Context, entry *domain.ChangeLog) error
	Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f ChangeLogFilter) ([]domain.ChangeLog, int64, error)
}

type changeLogRepositoryImpl struct {
	db *gorm.DB
}

// NewChangeLogRepository creates a new instance of ChangeLogRepository
func NewChangeLogRepository(db *gorm.DB) ChangeLogRepository {
	return &changeLogRepositoryImpl{db: db}
}

func (r *changeLogRepositoryImpl) Create(ctx context.Context, entry *domain.ChangeLog) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(entry).Error
}

func (r *changeLogRepositoryImpl) Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f ChangeLogFilter) ([]domain.ChangeLog, int64, error) {
	base := func() *gorm.DB {
		db := conn(ctx, r.db).Scopes(inSpace("", spaceID))
		if f.LeadID != nil {
			db = db.Where("lead_id = ?", *f.LeadID)
		}
		if f.Type != nil {
			db = db.Where("type = ?", *f.Type)
		}
		return db
	}
	entries := []domain.ChangeLog{}
	total, err := countAndFind(base, q, "created_at DESC", &entries, "Owner")
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
