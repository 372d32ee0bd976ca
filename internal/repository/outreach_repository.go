package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seniorcare-lead-api/internal/domain"
)

// OutreachFilter narrows an outreach grid
type OutreachFilter struct {
	TypeID         *uuid.UUID
	OrganizationID *uuid.UUID
}

// OutreachRepository defines the interface for outreach data access
type OutreachRepository interface {
	Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f OutreachFilter) ([]domain.Outreach, int64, error)
	FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Outreach, error)
	FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Outreach, error)
	Create(ctx context.Context, outreach *domain.Outreach) error
	Update(ctx context.Context, outreach *domain.Outreach) error
	// ReplaceMembers stores the contact and participant sets of outreach.
	ReplaceMembers(ctx context.Context, outreach *domain.Outreach) error
	DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type outreachRepositoryImpl struct {
	db *gorm.DB
}

// NewOutreachRepository creates a new instance of OutreachRepository
func NewOutreachRepository(db *gorm.DB) OutreachRepository {
	return &outreachRepositoryImpl{db: db}
}

func (r *outreachRepositoryImpl) Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f OutreachFilter) ([]domain.Outreach, int64, error) {
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
	outreaches := []domain.Outreach{}
	total, err := countAndFind(base, q, "date DESC, created_at DESC", &outreaches, "Type", "Organization")
	if err != nil {
		return nil, 0, err
	}
	return outreaches, total, nil
}

func (r *outreachRepositoryImpl) FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Outreach, error) {
	var outreach domain.Outreach
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Preload("Type").
		Preload("Organization").
		Preload("Contacts").
		Preload("Participants").
		Where("id = ?", id).
		First(&outreach).Error; err != nil {
		return nil, err
	}
	return &outreach, nil
}

func (r *outreachRepositoryImpl) FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Outreach, error) {
	return findInSpace[domain.Outreach](ctx, r.db, spaceID, ids)
}

func (r *outreachRepositoryImpl) Create(ctx context.Context, outreach *domain.Outreach) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(outreach).Error
}

func (r *outreachRepositoryImpl) Update(ctx context.Context, outreach *domain.Outreach) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(outreach).Error
}

func (r *outreachRepositoryImpl) ReplaceMembers(ctx context.Context, outreach *domain.Outreach) error {
	db := conn(ctx, r.db)
	if err := replaceMany(db.Model(outreach).Association("Contacts"), outreach.Contacts); err != nil {
		return err
	}
	return replaceMany(db.Model(outreach).Association("Participants"), outreach.Participants)
}

func (r *outreachRepositoryImpl) DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error) {
	owned, err := idsInSpace[domain.Outreach](ctx, r.db, spaceID, ids)
	if err != nil || len(owned) == 0 {
		return 0, err
	}
	db := conn(ctx, r.db)
	for _, join := range []string{"outreach_contacts", "outreach_participants"} {
		if err := db.Exec("DELETE FROM "+join+" WHERE outreach_id IN ?", owned).Error; err != nil {
			return 0, err
		}
	}
	return deleteInSpace[domain.Outreach](ctx, r.db, spaceID, owned)
}
