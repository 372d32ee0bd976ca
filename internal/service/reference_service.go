package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

// ReferenceService is the uniform CRUD of one lookup table.
type ReferenceService[T any, R any] interface {
	Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest) (*dto.GridResponse[T], error)
	List(ctx context.Context, tc tenant.Context, search string) ([]T, error)
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*T, error)
	Add(ctx context.Context, tc tenant.Context, req R) (*T, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req R) (*T, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
	GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error)
}

// ReferenceConfig describes what differs between lookups.
type ReferenceConfig[T any] struct {
	NotFound   response.Code
	Dependents []repository.Dependent
	// Validate runs after the request is applied and before the row is saved.
	Validate func(ctx context.Context, tc tenant.Context, item *T) error
}

type referenceServiceImpl[T any, R dto.ReferenceRequest[T], PT interface {
	*T
	domain.Reference
}] struct {
	repo    repository.ReferenceRepository[T]
	related repository.RelatedRepository
	tx      Transactor
	cfg     ReferenceConfig[T]
	logger  *zap.Logger
}

// NewReferenceService creates the service of lookup T edited through R.
func NewReferenceService[T any, R dto.ReferenceRequest[T], PT interface {
	*T
	domain.Reference
}](
	repo repository.ReferenceRepository[T],
	related repository.RelatedRepository,
	tx Transactor,
	cfg ReferenceConfig[T],
	logger *zap.Logger,
) ReferenceService[T, R] {
	return &referenceServiceImpl[T, R, PT]{repo: repo, related: related, tx: tx, cfg: cfg, logger: logger}
}

func (s *referenceServiceImpl[T, R, PT]) Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest) (*dto.GridResponse[T], error) {
	q := gridQuery(req)
	items, total, err := s.repo.Grid(ctx, tc.SpaceID, q)
	if err != nil {
		return nil, response.Wrap("Failed to load grid", err)
	}
	return toGrid(items, total, q), nil
}

func (s *referenceServiceImpl[T, R, PT]) List(ctx context.Context, tc tenant.Context, search string) ([]T, error) {
	items, err := s.repo.List(ctx, tc.SpaceID, search)
	if err != nil {
		return nil, response.Wrap("Failed to load list", err)
	}
	return items, nil
}

func (s *referenceServiceImpl[T, R, PT]) GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*T, error) {
	item, err := s.repo.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(s.cfg.NotFound, err)
	}
	return item, nil
}

func (s *referenceServiceImpl[T, R, PT]) Add(ctx context.Context, tc tenant.Context, req R) (*T, error) {
	item := new(T)
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.checkTitle(ctx, tc, req.GetTitle(), uuid.Nil); err != nil {
			return err
		}
		req.ApplyTo(item)
		PT(item).SetSpaceID(tc.SpaceID)
		if s.cfg.Validate != nil {
			if err := s.cfg.Validate(ctx, tc, item); err != nil {
				return err
			}
		}
		if err := s.repo.Create(ctx, item); err != nil {
			return response.Wrap("Failed to create "+entityName(s.cfg.NotFound), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Reference created",
		zap.String("table", PT(item).TableName()),
		zap.String("id", PT(item).GetID().String()),
		zap.String("space_id", tc.SpaceID.String()))
	return item, nil
}

func (s *referenceServiceImpl[T, R, PT]) Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req R) (*T, error) {
	var item *T
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.repo.FindByID(ctx, tc.SpaceID, id)
		if err != nil {
			return lookupErr(s.cfg.NotFound, err)
		}
		if err := s.checkTitle(ctx, tc, req.GetTitle(), id); err != nil {
			return err
		}
		req.ApplyTo(item)
		if s.cfg.Validate != nil {
			if err := s.cfg.Validate(ctx, tc, item); err != nil {
				return err
			}
		}
		if err := s.repo.Update(ctx, item); err != nil {
			return response.Wrap("Failed to update "+entityName(s.cfg.NotFound), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *referenceServiceImpl[T, R, PT]) Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	return s.RemoveBulk(ctx, tc, []uuid.UUID{id})
}

// RemoveBulk deletes every id or none. Lookups still referenced elsewhere
// are refused with a validation error.
func (s *referenceServiceImpl[T, R, PT]) RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error {
	return removeAll(ctx, s.tx, ids, s.cfg.NotFound, func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		items, err := s.repo.FindByIDs(ctx, tc.SpaceID, ids)
		if err != nil {
			return 0, err
		}
		if len(items) != len(ids) {
			return int64(len(items)), nil
		}
		infos, err := relatedInfo(ctx, s.related, s.cfg.Dependents, ids)
		if err != nil {
			return 0, err
		}
		for _, info := range infos {
			if info.Total > 0 {
				return 0, response.NewValidationError(entityName(s.cfg.NotFound)+" is still in use", info.ID.String())
			}
		}
		return s.repo.DeleteByIDs(ctx, tc.SpaceID, ids)
	})
}

func (s *referenceServiceImpl[T, R, PT]) GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error) {
	ids = dedupe(ids)
	if _, err := requireIDs(ctx, ids, s.cfg.NotFound, s.repo.FindByIDs, tc.SpaceID); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, response.New(s.cfg.NotFound)
	}
	return relatedInfo(ctx, s.related, s.cfg.Dependents, ids)
}

func (s *referenceServiceImpl[T, R, PT]) checkTitle(ctx context.Context, tc tenant.Context, title string, excludeID uuid.UUID) error {
	if title == "" {
		return response.NewValidationError("Title is required", "title")
	}
	exists, err := s.repo.TitleExists(ctx, tc.SpaceID, title, excludeID)
	if err != nil {
		return response.Wrap("Failed to check title", err)
	}
	if exists {
		return response.NewAppError(response.CodeDuplicateTitle, response.Lookup(response.CodeDuplicateTitle).Message, title)
	}
	return nil
}
