package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seniorcare-lead-api/internal/domain"
)

// HistoryRepository is the data access of a dated per-lead history table
// (funnel stages, temperatures).
type HistoryRepository[T any] interface {
	ListByLead(ctx context.Context, spaceID, leadID uuid.UUID) ([]T, error)
	FindByID(ctx context.Context, spaceID, id uuid.UUID) (*T, error)
	FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]T, error)
	// FindPreceding returns the entry right before (date, createdAt) on the
	// lead, ignoring excludeID.
	FindPreceding(ctx context.Context, spaceID, leadID, excludeID uuid.UUID, date, createdAt time.Time) (*T, error)
	Create(ctx context.Context, entry *T) error
	Update(ctx context.Context, entry *T) error
	DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type historyRepositoryImpl[T any] struct {
	db       *gorm.DB
	preloads []string
}

// NewLeadFunnelStageRepository creates the funnel stage history repository
func NewLeadFunnelStageRepository(db *gorm.DB) HistoryRepository[domain.LeadFunnelStage] {
	return &historyRepositoryImpl[domain.LeadFunnelStage]{db: db, preloads: []string{"Stage", "Reason"}}
}

// NewLeadTemperatureRepository creates the temperature history repository
func NewLeadTemperatureRepository(db *gorm.DB) HistoryRepository[domain.LeadTemperature] {
	return &historyRepositoryImpl[domain.LeadTemperature]{db: db, preloads: []string{"Temperature"}}
}

func (r *historyRepositoryImpl[T]) withPreloads(db *gorm.DB) *gorm.DB {
	for _, p := range r.preloads {
		db = db.Preload(p)
	}
	return db
}

func (r *historyRepositoryImpl[T]) ListByLead(ctx context.Context, spaceID, leadID uuid.UUID) ([]T, error) {
	entries := []T{}
	if err := r.withPreloads(conn(ctx, r.db)).
		Scopes(inSpace("", spaceID)).
		Where("lead_id = ?", leadID).
		Order("date DESC, created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *historyRepositoryImpl[T]) FindByID(ctx context.Context, spaceID, id uuid.UUID) (*T, error) {
	var entry T
	if err := r.withPreloads(conn(ctx, r.db)).
		Scopes(inSpace("", spaceID)).
		Where("id = ?", id).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *historyRepositoryImpl[T]) FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]T, error) {
	return findInSpace[T](ctx, r.db, spaceID, ids)
}

func (r *historyRepositoryImpl[T]) FindPreceding(ctx context.Context, spaceID, leadID, excludeID uuid.UUID, date, createdAt time.Time) (*T, error) {
	var entry T
	if err := r.withPreloads(conn(ctx, r.db)).
		Scopes(inSpace("", spaceID)).
		Where("lead_id = ? AND id <> ?", leadID, excludeID).
		Where("(date < ? OR (date = ? AND created_at <= ?))", date, date, createdAt).
		Order("date DESC, created_at DESC").
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *historyRepositoryImpl[T]) Create(ctx context.Context, entry *T) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(entry).Error
}

func (r *historyRepositoryImpl[T]) Update(ctx context.Context, entry *T) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(entry).Error
}

func (r *historyRepositoryImpl[T]) DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error) {
	return deleteInSpace[T](ctx, r.db, spaceID, ids)
}
