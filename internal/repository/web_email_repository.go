package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seniorcare-lead-api/internal/domain"
)

// WebEmailFilter narrows a web email grid. A nil Spam hides spam.
type WebEmailFilter struct {
	FacilityID        *uuid.UUID
	EmailReviewTypeID *uuid.UUID
	Spam              *bool
}

// WebEmailRepository defines the interface for web email data access
type WebEmailRepository interface {
	Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f WebEmailFilter) ([]domain.WebEmail, int64, error)
	FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.WebEmail, error)
	FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.WebEmail, error)
	Create(ctx context.Context, email *domain.WebEmail) error
	Update(ctx context.Context, email *domain.WebEmail) error
	DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type webEmailRepositoryImpl struct {
	db *gorm.DB
}

// NewWebEmailRepository creates a new instance of WebEmailRepository
func NewWebEmailRepository(db *gorm.DB) WebEmailRepository {
	return &webEmailRepositoryImpl{db: db}
}

func (r *webEmailRepositoryImpl) Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f WebEmailFilter) ([]domain.WebEmail, int64, error) {
	base := func() *gorm.DB {
		db := conn(ctx, r.db).Scopes(inSpace("", spaceID), likeAny(q.Search, "subject", "name", "email", "message"))
		spam := false
		if f.Spam != nil {
			spam = *f.Spam
		}
		db = db.Where("spam = ?", spam)
		if f.FacilityID != nil {
			db = db.Where("facility_id = ?", *f.FacilityID)
		}
		if f.EmailReviewTypeID != nil {
			db = db.Where("email_review_type_id = ?", *f.EmailReviewTypeID)
		}
		return db
	}
	emails := []domain.WebEmail{}
	total, err := countAndFind(base, q, "date DESC, created_at DESC", &emails, "Facility", "EmailReviewType")
	if err != nil {
		return nil, 0, err
	}
	return emails, total, nil
}

func (r *webEmailRepositoryImpl) FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.WebEmail, error) {
	var email domain.WebEmail
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Preload("Facility").
		Preload("EmailReviewType").
		Where("id = ?", id).
		First(&email).Error; err != nil {
		return nil, err
	}
	return &email, nil
}

func (r *webEmailRepositoryImpl) FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.WebEmail, error) {
	return findInSpace[domain.WebEmail](ctx, r.db, spaceID, ids)
}

func (r *webEmailRepositoryImpl) Create(ctx context.Context, email *domain.WebEmail) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(email).Error
}

func (r *webEmailRepositoryImpl) Update(ctx context.Context, email *domain.WebEmail) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(email).Error
}

func (r *webEmailRepositoryImpl) DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error) {
	return deleteInSpace[domain.WebEmail](ctx, r.db, spaceID, ids)
}
