package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seniorcare-lead-api/internal/domain"
)

// ReferralFilter narrows a referral grid
type ReferralFilter struct {
	TypeID         *uuid.UUID
	OrganizationID *uuid.UUID
}

// ReferralRepository defines the interface for referral data access
type ReferralRepository interface {
	Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f ReferralFilter) ([]domain.Referral, int64, error)
	FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Referral, error)
	FindByLeadID(ctx context.Context, spaceID, leadID uuid.UUID) (*domain.Referral, error)
	FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Referral, error)
	Create(ctx context.Context, referral *domain.Referral) error
	Update(ctx context.Context, referral *domain.Referral) error
	ReplacePhones(ctx context.Context, referralID uuid.UUID, phones []domain.ReferralPhone) error
	DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type referralRepositoryImpl struct {
	db *gorm.DB
}

// NewReferralRepository creates a new instance of ReferralRepository
func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &referralRepositoryImpl{db: db}
}

func (r *referralRepositoryImpl) Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f ReferralFilter) ([]domain.Referral, int64, error) {
	base := func() *gorm.DB {
		db := conn(ctx, r.db).Scopes(inSpace("", spaceID), likeAny(q.Search, "notes"))
		if f.TypeID != nil {
			db = db.Where("type_id = ?", *f.TypeID)
		}
		if f.OrganizationID != nil {
			db = db.Where("organization_id = ?", *f.OrganizationID)
		}
		return db
	}

	referrals := []domain.Referral{}
	total, err := countAndFind(base, q, "created_at DESC", &referrals, "Type", "Organization", "Representative", "Phones")
	if err != nil {
		return nil, 0, err
	}
	return referrals, total, nil
}

func (r *referralRepositoryImpl) preloaded(ctx context.Context, spaceID uuid.UUID) *gorm.DB {
	return conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Preload("Type").
		Preload("Organization").
		Preload("Representative").
		Preload("Phones", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") })
}

func (r *referralRepositoryImpl) FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Referral, error) {
	var referral domain.Referral
	if err := r.preloaded(ctx, spaceID).Where("id = ?", id).First(&referral).Error; err != nil {
		return nil, err
	}
	return &referral, nil
}

func (r *referralRepositoryImpl) FindByLeadID(ctx context.Context, spaceID, leadID uuid.UUID) (*domain.Referral, error) {
	var referral domain.Referral
	if err := r.preloaded(ctx, spaceID).Where("lead_id = ?", leadID).First(&referral).Error; err != nil {
		return nil, err
	}
	return &referral, nil
}

func (r *referralRepositoryImpl) FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Referral, error) {
	return findInSpace[domain.Referral](ctx, r.db, spaceID, ids)
}

func (r *referralRepositoryImpl) Create(ctx context.Context, referral *domain.Referral) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(referral).Error
}

func (r *referralRepositoryImpl) Update(ctx context.Context, referral *domain.Referral) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(referral).Error
}

// ReplacePhones deletes every stored phone of the referral and creates phones.
func (r *referralRepositoryImpl) ReplacePhones(ctx context.Context, referralID uuid.UUID, phones []domain.ReferralPhone) error {
	db := conn(ctx, r.db)
	if err := db.Where("referral_id = ?", referralID).Delete(&domain.ReferralPhone{}).Error; err != nil {
		return err
	}
	if len(phones) == 0 {
		return nil
	}
	for i := range phones {
		phones[i].ReferralID = referralID
	}
	return db.Create(&phones).Error
}

// DeleteByIDs removes referrals with their phones and referral activities.
func (r *referralRepositoryImpl) DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error) {
	owned, err := idsInSpace[domain.Referral](ctx, r.db, spaceID, ids)
	if err != nil || len(owned) == 0 {
		return 0, err
	}
	if err := deleteReferralChildren(conn(ctx, r.db), owned); err != nil {
		return 0, err
	}
	return deleteInSpace[domain.Referral](ctx, r.db, spaceID, owned)
}

func deleteReferralChildren(db *gorm.DB, referralIDs []uuid.UUID) error {
	if len(referralIDs) == 0 {
		return nil
	}
	if err := db.Where("referral_id IN ?", referralIDs).Delete(&domain.ReferralPhone{}).Error; err != nil {
		return err
	}
	return db.Where("referral_id IN ? AND owner_type = ?", referralIDs, domain.OwnerTypeReferral).Delete(&domain.Activity{}).Error
}
