package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seniorcare-lead-api/internal/domain"
)

// OrganizationFilter narrows an organization grid
type OrganizationFilter struct {
	CategoryID *uuid.UUID
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f OrganizationFilter) ([]domain.Organization, int64, error)
	List(ctx context.Context, spaceID uuid.UUID, search string) ([]domain.Organization, error)
	FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Organization, error)
	FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Organization, error)
	Create(ctx context.Context, org *domain.Organization) error
	Update(ctx context.Context, org *domain.Organization) error
	ReplacePhones(ctx context.Context, orgID uuid.UUID, phones []domain.OrganizationPhone) error
	DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type organizationRepositoryImpl struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new instance of OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepositoryImpl{db: db}
}

func (r *organizationRepositoryImpl) Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f OrganizationFilter) ([]domain.Organization, int64, error) {
	base := func() *gorm.DB {
		db := conn(ctx, r.db).Scopes(inSpace("", spaceID), likeAny(q.Search, "name", "address", "website"))
		if f.CategoryID != nil {
			db = db.Where("category_id = ?", *f.CategoryID)
		}
		return db
	}

	orgs := []domain.Organization{}
	total, err := countAndFind(base, q, "name ASC", &orgs, "Category", "Phones")
	if err != nil {
		return nil, 0, err
	}
	return orgs, total, nil
}

func (r *organizationRepositoryImpl) List(ctx context.Context, spaceID uuid.UUID, search string) ([]domain.Organization, error) {
	orgs := []domain.Organization{}
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID), likeAny(search, "name")).
		Order("name ASC").
		Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepositoryImpl) FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Organization, error) {
	var org domain.Organization
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Preload("Category").
		Preload("Phones", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") }).
		Where("id = ?", id).
		First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepositoryImpl) FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Organization, error) {
	return findInSpace[domain.Organization](ctx, r.db, spaceID, ids)
}

func (r *organizationRepositoryImpl) Create(ctx context.Context, org *domain.Organization) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(org).Error
}

func (r *organizationRepositoryImpl) Update(ctx context.Context, org *domain.Organization) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(org).Error
}

// ReplacePhones deletes every stored phone of the organization and creates phones.
func (r *organizationRepositoryImpl) ReplacePhones(ctx context.Context, orgID uuid.UUID, phones []domain.OrganizationPhone) error {
	db := conn(ctx, r.db)
	if err := db.Where("organization_id = ?", orgID).Delete(&domain.OrganizationPhone{}).Error; err != nil {
		return err
	}
	if len(phones) == 0 {
		return nil
	}
	for i := range phones {
		phones[i].OrganizationID = orgID
	}
	return db.Create(&phones).Error
}

// DeleteByIDs removes organizations with their phones and organization
// activities. Contacts, referrals and outreaches stay and lose the link.
func (r *organizationRepositoryImpl) DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error) {
	owned, err := idsInSpace[domain.Organization](ctx, r.db, spaceID, ids)
	if err != nil || len(owned) == 0 {
		return 0, err
	}

	db := conn(ctx, r.db)

	if err := db.Where("organization_id IN ?", owned).Delete(&domain.OrganizationPhone{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("organization_id IN ? AND owner_type = ?", owned, domain.OwnerTypeOrganization).Delete(&domain.Activity{}).Error; err != nil {
		return 0, err
	}
	for _, model := range []interface{}{&domain.Contact{}, &domain.Referral{}, &domain.Outreach{}} {
		if err := db.Model(model).Where("organization_id IN ?", owned).Update("organization_id", nil).Error; err != nil {
			return 0, err
		}
	}
	return deleteInSpace[domain.Organization](ctx, r.db, spaceID, owned)
}
