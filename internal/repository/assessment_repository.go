package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seniorcare-lead-api/internal/domain"
)

// AssessmentFormRepository defines the interface for assessment form data access
type AssessmentFormRepository interface {
	Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery) ([]domain.AssessmentForm, int64, error)
	List(ctx context.Context, spaceID uuid.UUID, search string) ([]domain.AssessmentForm, error)
	FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.AssessmentForm, error)
	FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.AssessmentForm, error)
	TitleExists(ctx context.Context, spaceID uuid.UUID, title string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, form *domain.AssessmentForm) error
	Update(ctx context.Context, form *domain.AssessmentForm) error
	CreateCategory(ctx context.Context, category *domain.AssessmentCategory) error
	UpdateCategory(ctx context.Context, category *domain.AssessmentCategory) error
	CreateRow(ctx context.Context, row *domain.AssessmentCategoryRow) error
	UpdateRow(ctx context.Context, row *domain.AssessmentCategoryRow) error
	// PruneCategories deletes the categories of formID not listed in keep.
	PruneCategories(ctx context.Context, formID uuid.UUID, keep []uuid.UUID) error
	// PruneRows deletes the rows of categoryID not listed in keep.
	PruneRows(ctx context.Context, categoryID uuid.UUID, keep []uuid.UUID) error
	DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type assessmentFormRepositoryImpl struct {
	db *gorm.DB
}

// NewAssessmentFormRepository creates a new instance of AssessmentFormRepository
func NewAssessmentFormRepository(db *gorm.DB) AssessmentFormRepository {
	return &assessmentFormRepositoryImpl{db: db}
}

func (r *assessmentFormRepositoryImpl) Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery) ([]domain.AssessmentForm, int64, error) {
	base := func() *gorm.DB {
		return conn(ctx, r.db).Scopes(inSpace("", spaceID), likeAny(q.Search, "title"))
	}
	forms := []domain.AssessmentForm{}
	total, err := countAndFind(base, q, "title ASC", &forms)
	if err != nil {
		return nil, 0, err
	}
	return forms, total, nil
}

func (r *assessmentFormRepositoryImpl) List(ctx context.Context, spaceID uuid.UUID, search string) ([]domain.AssessmentForm, error) {
	forms := []domain.AssessmentForm{}
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID), likeAny(search, "title")).
		Order("title ASC").
		Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *assessmentFormRepositoryImpl) FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.AssessmentForm, error) {
	var form domain.AssessmentForm
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC, created_at ASC") }).
		Preload("Categories.Rows", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC, created_at ASC") }).
		Where("id = ?", id).
		First(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *assessmentFormRepositoryImpl) FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.AssessmentForm, error) {
	return findInSpace[domain.AssessmentForm](ctx, r.db, spaceID, ids)
}

func (r *assessmentFormRepositoryImpl) TitleExists(ctx context.Context, spaceID uuid.UUID, title string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := conn(ctx, r.db).Model(&domain.AssessmentForm{}).Scopes(inSpace("", spaceID)).Where("title = ?", title)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *assessmentFormRepositoryImpl) Create(ctx context.Context, form *domain.AssessmentForm) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(form).Error
}

func (r *assessmentFormRepositoryImpl) Update(ctx context.Context, form *domain.AssessmentForm) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(form).Error
}

func (r *assessmentFormRepositoryImpl) CreateCategory(ctx context.Context, category *domain.AssessmentCategory) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(category).Error
}

func (r *assessmentFormRepositoryImpl) UpdateCategory(ctx context.Context, category *domain.AssessmentCategory) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(category).Error
}

func (r *assessmentFormRepositoryImpl) CreateRow(ctx context.Context, row *domain.AssessmentCategoryRow) error {
	return conn(ctx, r.db).Create(row).Error
}

func (r *assessmentFormRepositoryImpl) UpdateRow(ctx context.Context, row *domain.AssessmentCategoryRow) error {
	return conn(ctx, r.db).Save(row).Error
}

func (r *assessmentFormRepositoryImpl) PruneCategories(ctx context.Context, formID uuid.UUID, keep []uuid.UUID) error {
	db := conn(ctx, r.db)
	var stale []uuid.UUID
	q := db.Model(&domain.AssessmentCategory{}).Where("form_id = ?", formID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	if err := q.Pluck("id", &stale).Error; err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}
	if err := db.Where("category_id IN ?", stale).Delete(&domain.AssessmentCategoryRow{}).Error; err != nil {
		return err
	}
	return db.Where("id IN ?", stale).Delete(&domain.AssessmentCategory{}).Error
}

func (r *assessmentFormRepositoryImpl) PruneRows(ctx context.Context, categoryID uuid.UUID, keep []uuid.UUID) error {
	q := conn(ctx, r.db).Where("category_id = ?", categoryID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	return q.Delete(&domain.AssessmentCategoryRow{}).Error
}

// DeleteByIDs removes forms with their categories, rows and every
// assessment taken on them.
func (r *assessmentFormRepositoryImpl) DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error) {
	owned, err := idsInSpace[domain.AssessmentForm](ctx, r.db, spaceID, ids)
	if err != nil || len(owned) == 0 {
		return 0, err
	}

	db := conn(ctx, r.db)
	if err := db.Where("assessment_id IN (?)",
		db.Model(&domain.Assessment{}).Select("id").Where("form_id IN ?", owned),
	).Delete(&domain.AssessmentRow{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("form_id IN ?", owned).Delete(&domain.Assessment{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("category_id IN (?)",
		db.Model(&domain.AssessmentCategory{}).Select("id").Where("form_id IN ?", owned),
	).Delete(&domain.AssessmentCategoryRow{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("form_id IN ?", owned).Delete(&domain.AssessmentCategory{}).Error; err != nil {
		return 0, err
	}
	return deleteInSpace[domain.AssessmentForm](ctx, r.db, spaceID, owned)
}

// AssessmentFilter narrows an assessment grid
type AssessmentFilter struct {
	LeadID *uuid.UUID
	FormID *uuid.UUID
}

// AssessmentRepository defines the interface for assessment data access
type AssessmentRepository interface {
	Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f AssessmentFilter) ([]domain.Assessment, int64, error)
	FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Assessment, error)
	FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Assessment, error)
	Create(ctx context.Context, assessment *domain.Assessment) error
	Update(ctx context.Context, assessment *domain.Assessment) error
	DeleteRows(ctx context.Context, assessmentID uuid.UUID) error
	CreateRow(ctx context.Context, row *domain.AssessmentRow) error
	SumScore(ctx context.Context, assessmentID uuid.UUID) (int, error)
	UpdateScore(ctx context.Context, assessmentID uuid.UUID, score int) error
	DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type assessmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAssessmentRepository creates a new instance of AssessmentRepository
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepositoryImpl{db: db}
}

func (r *assessmentRepositoryImpl) Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f AssessmentFilter) ([]domain.Assessment, int64, error) {
	base := func() *gorm.DB {
		db := conn(ctx, r.db).Scopes(inSpace("", spaceID), likeAny(q.Search, "notes"))
		if f.LeadID != nil {
			db = db.Where("lead_id = ?", *f.LeadID)
		}
		if f.FormID != nil {
			db = db.Where("form_id = ?", *f.FormID)
		}
		return db
	}
	assessments := []domain.Assessment{}
	total, err := countAndFind(base, q, "date DESC, created_at DESC", &assessments, "Form", "PerformedBy")
	if err != nil {
		return nil, 0, err
	}
	return assessments, total, nil
}

func (r *assessmentRepositoryImpl) FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Assessment, error) {
	var assessment domain.Assessment
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Preload("Form").
		Preload("PerformedBy").
		Preload("Rows").
		Preload("Rows.Row").
		Where("id = ?", id).
		First(&assessment).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepositoryImpl) FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Assessment, error) {
	return findInSpace[domain.Assessment](ctx, r.db, spaceID, ids)
}

func (r *assessmentRepositoryImpl) Create(ctx context.Context, assessment *domain.Assessment) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(assessment).Error
}

func (r *assessmentRepositoryImpl) Update(ctx context.Context, assessment *domain.Assessment) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(assessment).Error
}

func (r *assessmentRepositoryImpl) DeleteRows(ctx context.Context, assessmentID uuid.UUID) error {
	return conn(ctx, r.db).Where("assessment_id = ?", assessmentID).Delete(&domain.AssessmentRow{}).Error
}

func (r *assessmentRepositoryImpl) CreateRow(ctx context.Context, row *domain.AssessmentRow) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(row).Error
}

// SumScore adds up the stored scores of the assessment's rows.
func (r *assessmentRepositoryImpl) SumScore(ctx context.Context, assessmentID uuid.UUID) (int, error) {
	var total int64
	if err := conn(ctx, r.db).
		Model(&domain.AssessmentRow{}).
		Select("COALESCE(SUM(score), 0)").
		Where("assessment_id = ?", assessmentID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *assessmentRepositoryImpl) UpdateScore(ctx context.Context, assessmentID uuid.UUID, score int) error {
	return conn(ctx, r.db).
		Model(&domain.Assessment{}).
		Where("id = ?", assessmentID).
		Update("score", score).Error
}

func (r *assessmentRepositoryImpl) DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error) {
	owned, err := idsInSpace[domain.Assessment](ctx, r.db, spaceID, ids)
	if err != nil || len(owned) == 0 {
		return 0, err
	}
	if err := conn(ctx, r.db).Where("assessment_id IN ?", owned).Delete(&domain.AssessmentRow{}).Error; err != nil {
		return 0, err
	}
	return deleteInSpace[domain.Assessment](ctx, r.db, spaceID, owned)
}
