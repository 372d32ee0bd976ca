package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seniorcare-lead-api/internal/domain"
)

// ContactFilter narrows a contact grid
type ContactFilter struct {
	OrganizationID *uuid.UUID
}

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f ContactFilter) ([]domain.Contact, int64, error)
	List(ctx context.Context, spaceID uuid.UUID, search string) ([]domain.Contact, error)
	FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Contact, error)
	FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Contact, error)
	Create(ctx context.Context, contact *domain.Contact) error
	Update(ctx context.Context, contact *domain.Contact) error
	ReplacePhones(ctx context.Context, contactID uuid.UUID, phones []domain.ContactPhone) error
	DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type contactRepositoryImpl struct {
	db *gorm.DB
}

// NewContactRepository creates a new instance of ContactRepository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepositoryImpl{db: db}
}

func (r *contactRepositoryImpl) Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f ContactFilter) ([]domain.Contact, int64, error) {
	base := func() *gorm.DB {
		db := conn(ctx, r.db).Scopes(inSpace("", spaceID), likeAny(q.Search, "first_name", "last_name", "role"))
		if f.OrganizationID != nil {
			db = db.Where("organization_id = ?", *f.OrganizationID)
		}
		return db
	}

	contacts := []domain.Contact{}
	total, err := countAndFind(base, q, "last_name ASC, first_name ASC", &contacts, "Organization", "Phones")
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *contactRepositoryImpl) List(ctx context.Context, spaceID uuid.UUID, search string) ([]domain.Contact, error) {
	contacts := []domain.Contact{}
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID), likeAny(search, "first_name", "last_name")).
		Order("last_name ASC, first_name ASC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepositoryImpl) FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Contact, error) {
	var contact domain.Contact
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Preload("Organization").
		Preload("Phones", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") }).
		Where("id = ?", id).
		First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepositoryImpl) FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Contact, error) {
	return findInSpace[domain.Contact](ctx, r.db, spaceID, ids)
}

func (r *contactRepositoryImpl) Create(ctx context.Context, contact *domain.Contact) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(contact).Error
}

func (r *contactRepositoryImpl) Update(ctx context.Context, contact *domain.Contact) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(contact).Error
}

// ReplacePhones deletes every stored phone of the contact and creates phones.
func (r *contactRepositoryImpl) ReplacePhones(ctx context.Context, contactID uuid.UUID, phones []domain.ContactPhone) error {
	db := conn(ctx, r.db)
	if err := db.Where("contact_id = ?", contactID).Delete(&domain.ContactPhone{}).Error; err != nil {
		return err
	}
	if len(phones) == 0 {
		return nil
	}
	for i := range phones {
		phones[i].ContactID = contactID
	}
	return db.Create(&phones).Error
}

// DeleteByIDs removes contacts with their phones and outreach links.
// Referrals keep existing without a representative.
func (r *contactRepositoryImpl) DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error) {
	owned, err := idsInSpace[domain.Contact](ctx, r.db, spaceID, ids)
	if err != nil || len(owned) == 0 {
		return 0, err
	}

	db := conn(ctx, r.db)
	if err := db.Where("contact_id IN ?", owned).Delete(&domain.ContactPhone{}).Error; err != nil {
		return 0, err
	}
	if err := db.Exec("DELETE FROM outreach_contacts WHERE contact_id IN ?", owned).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&domain.Referral{}).Where("representative_id IN ?", owned).Update("representative_id", nil).Error; err != nil {
		return 0, err
	}
	return deleteInSpace[domain.Contact](ctx, r.db, spaceID, owned)
}
