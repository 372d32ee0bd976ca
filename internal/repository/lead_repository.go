package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seniorcare-lead-api/internal/domain"
)

// maxExportRows caps the rows read for a single export.
const maxExportRows = 10000

// LeadFilter narrows a lead grid. A nil Spam hides spam leads.
type LeadFilter struct {
	State      *domain.LeadState
	OwnerID    *uuid.UUID
	FacilityID *uuid.UUID
	Spam       *bool
}

// LeadRepository defines the interface for lead data access
type LeadRepository interface {
	Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f LeadFilter) ([]domain.Lead, int64, error)
	List(ctx context.Context, spaceID uuid.UUID, search string) ([]domain.Lead, error)
	FindAll(ctx context.Context, spaceID uuid.UUID, search string, f LeadFilter) ([]domain.Lead, error)
	FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Lead, error)
	FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Lead, error)
	Create(ctx context.Context, lead *domain.Lead) error
	Update(ctx context.Context, lead *domain.Lead) error
	ReplaceAssociations(ctx context.Context, lead *domain.Lead) error
	SetSpam(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID, spam bool) (int64, error)
	DeleteCascade(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type leadRepositoryImpl struct {
	db *gorm.DB
}

// NewLeadRepository creates a new instance of LeadRepository
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepositoryImpl{db: db}
}

func (r *leadRepositoryImpl) filtered(ctx context.Context, spaceID uuid.UUID, search string, f LeadFilter) *gorm.DB {
	db := conn(ctx, r.db).Scopes(
		inSpace("leads", spaceID),
		likeAny(search, "leads.first_name", "leads.last_name", "leads.rp_email", "leads.rp_phone"),
	)
	spam := false
	if f.Spam != nil {
		spam = *f.Spam
	}
	db = db.Where("leads.spam = ?", spam)
	if f.State != nil {
		db = db.Where("leads.state = ?", *f.State)
	}
	if f.OwnerID != nil {
		db = db.Where("leads.owner_id = ?", *f.OwnerID)
	}
	if f.FacilityID != nil {
		db = db.Where(
			"(leads.primary_facility_id = ? OR leads.id IN (SELECT lead_id FROM lead_facilities WHERE facility_id = ?))",
			*f.FacilityID, *f.FacilityID,
		)
	}
	return db
}

var leadGridPreloads = []string{"Owner", "CareType", "PrimaryFacility", "StateChangeReason"}

func (r *leadRepositoryImpl) Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery, f LeadFilter) ([]domain.Lead, int64, error) {
	base := func() *gorm.DB { return r.filtered(ctx, spaceID, q.Search, f) }

	leads := []domain.Lead{}
	total, err := countAndFind(base, q, "leads.initial_contact_date DESC, leads.created_at DESC", &leads, leadGridPreloads...)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

func (r *leadRepositoryImpl) List(ctx context.Context, spaceID uuid.UUID, search string) ([]domain.Lead, error) {
	leads := []domain.Lead{}
	if err := r.filtered(ctx, spaceID, search, LeadFilter{}).
		Order("leads.last_name ASC, leads.first_name ASC").
		Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// FindAll returns every matching lead for an export, up to maxExportRows.
func (r *leadRepositoryImpl) FindAll(ctx context.Context, spaceID uuid.UUID, search string, f LeadFilter) ([]domain.Lead, error) {
	leads := []domain.Lead{}
	q := r.filtered(ctx, spaceID, search, f).
		Order("leads.initial_contact_date DESC, leads.created_at DESC").
		Limit(maxExportRows)
	for _, p := range append(leadGridPreloads, "PaymentSource") {
		q = q.Preload(p)
	}
	if err := q.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *leadRepositoryImpl) FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Preload("Owner").
		Preload("StateChangeReason").
		Preload("CareType").
		Preload("PaymentSource").
		Preload("CurrentResidence").
		Preload("PrimaryFacility").
		Preload("Facilities").
		Preload("Hobbies").
		Preload("Qualifications").
		Preload("Referral").
		Preload("Referral.Type").
		Preload("Referral.Organization").
		Preload("Referral.Representative").
		Preload("Referral.Phones").
		Where("id = ?", id).
		First(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepositoryImpl) FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Lead, error) {
	return findInSpace[domain.Lead](ctx, r.db, spaceID, ids)
}

func (r *leadRepositoryImpl) Create(ctx context.Context, lead *domain.Lead) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(lead).Error
}

func (r *leadRepositoryImpl) Update(ctx context.Context, lead *domain.Lead) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(lead).Error
}

// ReplaceAssociations stores the facility, hobby and qualification sets of lead.
func (r *leadRepositoryImpl) ReplaceAssociations(ctx context.Context, lead *domain.Lead) error {
	db := conn(ctx, r.db)
	if err := replaceMany(db.Model(lead).Association("Facilities"), lead.Facilities); err != nil {
		return err
	}
	if err := replaceMany(db.Model(lead).Association("Hobbies"), lead.Hobbies); err != nil {
		return err
	}
	return replaceMany(db.Model(lead).Association("Qualifications"), lead.Qualifications)
}

func replaceMany[T any](assoc *gorm.Association, values []T) error {
	if len(values) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}

func (r *leadRepositoryImpl) SetSpam(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID, spam bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := conn(ctx, r.db).
		Model(&domain.Lead{}).
		Scopes(inSpace("", spaceID)).
		Where("id IN ?", uniqueIDs(ids)).
		Update("spam", spam)
	return result.RowsAffected, result.Error
}

// DeleteCascade removes leads together with everything hanging off them:
// activities, funnel stage and temperature history, assessments, change
// logs, the attached referral and the many-to-many links.
func (r *leadRepositoryImpl) DeleteCascade(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error) {
	owned, err := idsInSpace[domain.Lead](ctx, r.db, spaceID, ids)
	if err != nil || len(owned) == 0 {
		return 0, err
	}

	db := conn(ctx, r.db)
	for _, model := range []interface{}{
		&domain.Activity{},
		&domain.LeadFunnelStage{},
		&domain.LeadTemperature{},
		&domain.ChangeLog{},
	} {
		if err := db.Where("lead_id IN ?", owned).Delete(model).Error; err != nil {
			return 0, err
		}
	}

	if err := db.Where("assessment_id IN (?)",
		db.Model(&domain.Assessment{}).Select("id").Where("lead_id IN ?", owned),
	).Delete(&domain.AssessmentRow{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("lead_id IN ?", owned).Delete(&domain.Assessment{}).Error; err != nil {
		return 0, err
	}

	var referralIDs []uuid.UUID
	if err := db.Model(&domain.Referral{}).Where("lead_id IN ?", owned).Pluck("id", &referralIDs).Error; err != nil {
		return 0, err
	}
	if len(referralIDs) > 0 {
		if err := deleteReferralChildren(db, referralIDs); err != nil {
			return 0, err
		}
		if err := db.Where("id IN ?", referralIDs).Delete(&domain.Referral{}).Error; err != nil {
			return 0, err
		}
	}

	for _, join := range []string{"lead_facilities", "lead_hobbies", "lead_qualifications"} {
		if err := db.Exec("DELETE FROM "+join+" WHERE lead_id IN ?", owned).Error; err != nil {
			return 0, err
		}
	}
	return deleteInSpace[domain.Lead](ctx, r.db, spaceID, owned)
}
