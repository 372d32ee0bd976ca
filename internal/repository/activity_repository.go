package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seniorcare-lead-api/internal/domain"
)

// ActivityFilter narrows an activity grid to one owner and/or assignee
type ActivityFilter struct {
	OwnerType  domain.OwnerType
	OwnerID    *uuid.UUID
	AssignToID *uuid.UUID
	StatusID   *uuid.UUID
}

// ActivityRepository defines the interface for activity data access
type ActivityRepository interface {
	Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f ActivityFilter) ([]domain.Activity, int64, error)
	FindAll(ctx context.Context, spaceID uuid.UUID, search string, f ActivityFilter) ([]domain.Activity, error)
	FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Activity, error)
	FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Activity, error)
	Create(ctx context.Context, activity *domain.Activity) error
	Update(ctx context.Context, activity *domain.Activity) error
	DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error)
	// FindDueReminders returns assigned activities whose reminder date has
	// passed and that were not reminded yet, across all spaces.
	FindDueReminders(ctx context.Context, q ReminderQuery) ([]domain.Activity, error)
	MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error
	// MarkReminderFailed counts a failed send and returns the attempts so far.
	MarkReminderFailed(ctx context.Context, id uuid.UUID, at time.Time) (int, error)
}

// ReminderQuery selects due reminders. A row that failed is skipped until
// its last failure is older than RetryBefore, and for good once it reached
// MaxAttempts. Rows with fewer failures come first.
type ReminderQuery struct {
	Now         time.Time
	RetryBefore time.Time
	MaxAttempts int
	ExcludeIDs  []uuid.UUID
	Limit       int
}

type activityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository creates a new instance of ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

func (r *activityRepositoryImpl) filtered(ctx context.Context, spaceID uuid.UUID, search string, f ActivityFilter) *gorm.DB {
	db := conn(ctx, r.db).Scopes(inSpace("", spaceID), likeAny(search, "title", "notes"))
	if f.OwnerType != "" {
		db = db.Where("owner_type = ?", f.OwnerType)
		if f.OwnerID != nil {
			if col := ownerColumn(f.OwnerType); col != "" {
				db = db.Where(col+" = ?", *f.OwnerID)
			}
		}
	}
	if f.AssignToID != nil {
		db = db.Where("assign_to_id = ?", *f.AssignToID)
	}
	if f.StatusID != nil {
		db = db.Where("status_id = ?", *f.StatusID)
	}
	return db
}

func ownerColumn(t domain.OwnerType) string {
	switch t {
	case domain.OwnerTypeLead:
		return "lead_id"
	case domain.OwnerTypeReferral:
		return "referral_id"
	case domain.OwnerTypeOrganization:
		return "organization_id"
	}
	return ""
}

var activityPreloads = []string{"Type", "Status", "AssignTo", "Facility"}

func (r *activityRepositoryImpl) Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f ActivityFilter) ([]domain.Activity, int64, error) {
	base := func() *gorm.DB { return r.filtered(ctx, spaceID, q.Search, f) }

	activities := []domain.Activity{}
	total, err := countAndFind(base, q, "date DESC, created_at DESC", &activities, activityPreloads...)
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

func (r *activityRepositoryImpl) FindAll(ctx context.Context, spaceID uuid.UUID, search string, f ActivityFilter) ([]domain.Activity, error) {
	activities := []domain.Activity{}
	q := r.filtered(ctx, spaceID, search, f).Order("date DESC, created_at DESC").Limit(maxExportRows)
	for _, p := range activityPreloads {
		q = q.Preload(p)
	}
	if err := q.Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepositoryImpl) FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Activity, error) {
	var activity domain.Activity
	q := conn(ctx, r.db).Scopes(inSpace("", spaceID)).Where("id = ?", id)
	for _, p := range activityPreloads {
		q = q.Preload(p)
	}
	if err := q.First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepositoryImpl) FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Activity, error) {
	return findInSpace[domain.Activity](ctx, r.db, spaceID, ids)
}

func (r *activityRepositoryImpl) Create(ctx context.Context, activity *domain.Activity) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(activity).Error
}

func (r *activityRepositoryImpl) Update(ctx context.Context, activity *domain.Activity) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(activity).Error
}

func (r *activityRepositoryImpl) DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error) {
	return deleteInSpace[domain.Activity](ctx, r.db, spaceID, ids)
}

func (r *activityRepositoryImpl) FindDueReminders(ctx context.Context, rq ReminderQuery) ([]domain.Activity, error) {
	var activities []domain.Activity
	q := conn(ctx, r.db).
		Where("reminder_date IS NOT NULL AND reminder_date <= ?", rq.Now).
		Where("reminded_at IS NULL").
		Where("assign_to_id IS NOT NULL").
		Where("(reminder_failed_at IS NULL OR reminder_failed_at <= ?)", rq.RetryBefore)
	if rq.MaxAttempts > 0 {
		q = q.Where("reminder_attempts < ?", rq.MaxAttempts)
	}
	if len(rq.ExcludeIDs) > 0 {
		q = q.Where("id NOT IN ?", rq.ExcludeIDs)
	}
	q = q.Order("reminder_attempts ASC").Order("reminder_date ASC")
	if rq.Limit > 0 {
		q = q.Limit(rq.Limit)
	}
	if err := q.Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepositoryImpl) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	return conn(ctx, r.db).
		Model(&domain.Activity{}).
		Where("id = ?", id).
		Update("reminded_at", at).Error
}

func (r *activityRepositoryImpl) MarkReminderFailed(ctx context.Context, id uuid.UUID, at time.Time) (int, error) {
	db := conn(ctx, r.db)
	err := db.Model(&domain.Activity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reminder_attempts":  gorm.Expr("reminder_attempts + 1"),
			"reminder_failed_at": at,
		}).Error
	if err != nil {
		return 0, err
	}
	var attempts []int
	if err := db.Model(&domain.Activity{}).Where("id = ?", id).Pluck("reminder_attempts", &attempts).Error; err != nil {
		return 0, err
	}
	if len(attempts) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return attempts[0], nil
}
