package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seniorcare-lead-api/internal/domain"
)

// ReferenceRepository is the data access of one per-space lookup table.
// T is the lookup entity (CareType, Facility, ...).
type ReferenceRepository[T any] interface {
	Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery) ([]T, int64, error)
	List(ctx context.Context, spaceID uuid.UUID, search string) ([]T, error)
	FindByID(ctx context.Context, spaceID, id uuid.UUID) (*T, error)
	FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]T, error)
	TitleExists(ctx context.Context, spaceID uuid.UUID, title string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type referenceRepositoryImpl[T any, PT interface {
	*T
	domain.Reference
}] struct {
	db *gorm.DB
}

// NewReferenceRepository creates the repository of lookup T.
func NewReferenceRepository[T any, PT interface {
	*T
	domain.Reference
}](db *gorm.DB) ReferenceRepository[T] {
	return &referenceRepositoryImpl[T, PT]{db: db}
}

func (r *referenceRepositoryImpl[T, PT]) Grid(ctx context.Context, spaceID uuid.UUID, q GridQuery) ([]T, int64, error) {
	var total int64
	base := conn(ctx, r.db).Model(new(T)).Scopes(inSpace("", spaceID), likeAny(q.Search, "title"))
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []T{}
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID), likeAny(q.Search, "title"), paginate(q)).
		Order("title ASC").
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *referenceRepositoryImpl[T, PT]) List(ctx context.Context, spaceID uuid.UUID, search string) ([]T, error) {
	items := []T{}
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID), likeAny(search, "title")).
		Order("title ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *referenceRepositoryImpl[T, PT]) FindByID(ctx context.Context, spaceID, id uuid.UUID) (*T, error) {
	var item T
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *referenceRepositoryImpl[T, PT]) FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]T, error) {
	items := []T{}
	if len(ids) == 0 {
		return items, nil
	}
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Where("id IN ?", uniqueIDs(ids)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *referenceRepositoryImpl[T, PT]) TitleExists(ctx context.Context, spaceID uuid.UUID, title string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := conn(ctx, r.db).Model(new(T)).Scopes(inSpace("", spaceID)).Where("title = ?", title)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *referenceRepositoryImpl[T, PT]) Create(ctx context.Context, item *T) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(item).Error
}

func (r *referenceRepositoryImpl[T, PT]) Update(ctx context.Context, item *T) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(item).Error
}

func (r *referenceRepositoryImpl[T, PT]) DeleteByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Where("id IN ?", uniqueIDs(ids)).
		Delete(new(T))
	return result.RowsAffected, result.Error
}

// ReferenceRepositories bundles the repository of every lookup table.
type ReferenceRepositories struct {
	CareTypes                 ReferenceRepository[domain.CareType]
	PaymentSources            ReferenceRepository[domain.PaymentSource]
	Facilities                ReferenceRepository[domain.Facility]
	Temperatures              ReferenceRepository[domain.Temperature]
	FunnelStages              ReferenceRepository[domain.FunnelStage]
	ActivityStatuses          ReferenceRepository[domain.ActivityStatus]
	ActivityTypes             ReferenceRepository[domain.ActivityType]
	ReferrerTypes             ReferenceRepository[domain.ReferrerType]
	OutreachTypes             ReferenceRepository[domain.OutreachType]
	Hobbies                   ReferenceRepository[domain.Hobby]
	QualificationRequirements ReferenceRepository[domain.QualificationRequirement]
	StageChangeReasons        ReferenceRepository[domain.StageChangeReason]
	StateChangeReasons        ReferenceRepository[domain.StateChangeReason]
	CurrentResidences         ReferenceRepository[domain.CurrentResidence]
	EmailReviewTypes          ReferenceRepository[domain.EmailReviewType]
}

// NewReferenceRepositories creates every lookup repository on db.
func NewReferenceRepositories(db *gorm.DB) ReferenceRepositories {
	return ReferenceRepositories{
		CareTypes:                 NewReferenceRepository[domain.CareType](db),
		PaymentSources:            NewReferenceRepository[domain.PaymentSource](db),
		Facilities:                NewReferenceRepository[domain.Facility](db),
		Temperatures:              NewReferenceRepository[domain.Temperature](db),
		FunnelStages:              NewReferenceRepository[domain.FunnelStage](db),
		ActivityStatuses:          NewReferenceRepository[domain.ActivityStatus](db),
		ActivityTypes:             NewReferenceRepository[domain.ActivityType](db),
		ReferrerTypes:             NewReferenceRepository[domain.ReferrerType](db),
		OutreachTypes:             NewReferenceRepository[domain.OutreachType](db),
		Hobbies:                   NewReferenceRepository[domain.Hobby](db),
		QualificationRequirements: NewReferenceRepository[domain.QualificationRequirement](db),
		StageChangeReasons:        NewReferenceRepository[domain.StageChangeReason](db),
		StateChangeReasons:        NewReferenceRepository[domain.StateChangeReason](db),
		CurrentResidences:         NewReferenceRepository[domain.CurrentResidence](db),
		EmailReviewTypes:          NewReferenceRepository[domain.EmailReviewType](db),
	}
}
