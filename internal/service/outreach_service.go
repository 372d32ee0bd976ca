package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

// OutreachService defines the interface for outreach business logic
type OutreachService interface {
	Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.OutreachFilter) (*dto.GridResponse[domain.Outreach], error)
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Outreach, error)
	Add(ctx context.Context, tc tenant.Context, req dto.OutreachRequest) (*domain.Outreach, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.OutreachRequest) (*domain.Outreach, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
}

type outreachServiceImpl struct {
	repo          repository.OutreachRepository
	outreachTypes repository.ReferenceRepository[domain.OutreachType]
	orgs          repository.OrganizationRepository
	contacts      repository.ContactRepository
	users         repository.UserRepository
	tx            Transactor
	logger        *zap.Logger
}

// NewOutreachService creates a new instance of OutreachService
func NewOutreachService(
	repo repository.OutreachRepository,
	outreachTypes repository.ReferenceRepository[domain.OutreachType],
	orgs repository.OrganizationRepository,
	contacts repository.ContactRepository,
	users repository.UserRepository,
	tx Transactor,
	logger *zap.Logger,
) OutreachService {
	return &outreachServiceImpl{
		repo:          repo,
		outreachTypes: outreachTypes,
		orgs:          orgs,
		contacts:      contacts,
		users:         users,
		tx:            tx,
		logger:        logger,
	}
}

func (s *outreachServiceImpl) Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.OutreachFilter) (*dto.GridResponse[domain.Outreach], error) {
	q := gridQuery(req)
	items, total, err := s.repo.Grid(ctx, tc.SpaceID, q, f)
	if err != nil {
		return nil, response.Wrap("Failed to load outreaches", err)
	}
	return toGrid(items, total, q), nil
}

func (s *outreachServiceImpl) GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Outreach, error) {
	outreach, err := s.repo.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeOutreachNotFound, err)
	}
	return outreach, nil
}

func (s *outreachServiceImpl) Add(ctx context.Context, tc tenant.Context, req dto.OutreachRequest) (*domain.Outreach, error) {
	outreach := &domain.Outreach{SpaceID: tc.SpaceID}
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		return s.save(ctx, tc, outreach, req, true)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, outreach.ID)
}

func (s *outreachServiceImpl) Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.OutreachRequest) (*domain.Outreach, error) {
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		outreach, err := s.repo.FindByID(ctx, tc.SpaceID, id)
		if err != nil {
			return lookupErr(response.CodeOutreachNotFound, err)
		}
		return s.save(ctx, tc, outreach, req, false)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, id)
}

func (s *outreachServiceImpl) save(ctx context.Context, tc tenant.Context, outreach *domain.Outreach, req dto.OutreachRequest, create bool) error {
	if _, err := s.outreachTypes.FindByID(ctx, tc.SpaceID, req.TypeID); err != nil {
		return lookupErr(response.CodeOutreachTypeNotFound, err)
	}
	if req.OrganizationID != nil {
		if _, err := s.orgs.FindByID(ctx, tc.SpaceID, *req.OrganizationID); err != nil {
			return lookupErr(response.CodeOrganizationNotFound, err)
		}
	}
	contacts, err := requireIDs(ctx, req.ContactIDs, response.CodeContactNotFound, s.contacts.FindByIDs, tc.SpaceID)
	if err != nil {
		return err
	}
	participants, err := requireIDs(ctx, req.ParticipantIDs, response.CodeUserNotFound, s.users.FindByIDs, tc.SpaceID)
	if err != nil {
		return err
	}

	outreach.TypeID = req.TypeID
	outreach.Type = nil
	outreach.OrganizationID = req.OrganizationID
	outreach.Organization = nil
	outreach.Date = req.Date
	outreach.Notes = req.Notes

	if create {
		err = s.repo.Create(ctx, outreach)
	} else {
		err = s.repo.Update(ctx, outreach)
	}
	if err != nil {
		return response.Wrap("Failed to save outreach", err)
	}

	outreach.Contacts = contacts
	outreach.Participants = participants
	if err := s.repo.ReplaceMembers(ctx, outreach); err != nil {
		return response.Wrap("Failed to save outreach members", err)
	}
	return nil
}

func (s *outreachServiceImpl) Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	return s.RemoveBulk(ctx, tc, []uuid.UUID{id})
}

func (s *outreachServiceImpl) RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error {
	return removeAll(ctx, s.tx, ids, response.CodeOutreachNotFound, func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		return s.repo.DeleteByIDs(ctx, tc.SpaceID, ids)
	})
}

// WebEmailService defines the interface for inbound website emails
type WebEmailService interface {
	Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.WebEmailFilter) (*dto.GridResponse[domain.WebEmail], error)
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.WebEmail, error)
	Add(ctx context.Context, tc tenant.Context, req dto.WebEmailRequest) (*domain.WebEmail, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.WebEmailReviewRequest) (*domain.WebEmail, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
}

type webEmailServiceImpl struct {
	repo        repository.WebEmailRepository
	facilities  repository.ReferenceRepository[domain.Facility]
	reviewTypes repository.ReferenceRepository[domain.EmailReviewType]
	tx          Transactor
	logger      *zap.Logger
	now         func() time.Time
}

// NewWebEmailService creates a new instance of WebEmailService
func NewWebEmailService(
	repo repository.WebEmailRepository,
	facilities repository.ReferenceRepository[domain.Facility],
	reviewTypes repository.ReferenceRepository[domain.EmailReviewType],
	tx Transactor,
	logger *zap.Logger,
) WebEmailService {
	return &webEmailServiceImpl{
		repo:        repo,
		facilities:  facilities,
		reviewTypes: reviewTypes,
		tx:          tx,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *webEmailServiceImpl) Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.WebEmailFilter) (*dto.GridResponse[domain.WebEmail], error) {
	q := gridQuery(req)
	items, total, err := s.repo.Grid(ctx, tc.SpaceID, q, f)
	if err != nil {
		return nil, response.Wrap("Failed to load web emails", err)
	}
	return toGrid(items, total, q), nil
}

func (s *webEmailServiceImpl) GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.WebEmail, error) {
	email, err := s.repo.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeWebEmailNotFound, err)
	}
	return email, nil
}

// Add ingests a website message. Date defaults to the time of receipt.
func (s *webEmailServiceImpl) Add(ctx context.Context, tc tenant.Context, req dto.WebEmailRequest) (*domain.WebEmail, error) {
	email := &domain.WebEmail{
		SpaceID: tc.SpaceID,
		Date:    s.now().UTC(),
		Subject: strings.TrimSpace(req.Subject),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Message: req.Message,
	}
	if req.Date != nil {
		email.Date = *req.Date
	}
	if len(req.Meta) > 0 {
		raw, err := json.Marshal(req.Meta)
		if err != nil {
			return nil, response.NewValidationError("Invalid metadata", err.Error())
		}
		email.Meta = datatypes.JSON(raw)
	}

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := resolveOptional(ctx, tc, req.FacilityID, s.facilities, response.CodeFacilityNotFound); err != nil {
			return err
		}
		email.FacilityID = req.FacilityID
		if err := s.repo.Create(ctx, email); err != nil {
			return response.Wrap("Failed to create web email", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Web email received", zap.String("web_email_id", email.ID.String()), zap.String("space_id", tc.SpaceID.String()))
	return s.GetByID(ctx, tc, email.ID)
}

// Edit records the review of a web email.
func (s *webEmailServiceImpl) Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.WebEmailReviewRequest) (*domain.WebEmail, error) {
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		email, err := s.repo.FindByID(ctx, tc.SpaceID, id)
		if err != nil {
			return lookupErr(response.CodeWebEmailNotFound, err)
		}
		if err := resolveOptional(ctx, tc, req.FacilityID, s.facilities, response.CodeFacilityNotFound); err != nil {
			return err
		}
		if err := resolveOptional(ctx, tc, req.EmailReviewTypeID, s.reviewTypes, response.CodeEmailReviewTypeNotFound); err != nil {
			return err
		}
		email.FacilityID = req.FacilityID
		email.Facility = nil
		email.EmailReviewTypeID = req.EmailReviewTypeID
		email.EmailReviewType = nil
		email.Spam = req.Spam
		if err := s.repo.Update(ctx, email); err != nil {
			return response.Wrap("Failed to update web email", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, id)
}

func (s *webEmailServiceImpl) Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	return s.RemoveBulk(ctx, tc, []uuid.UUID{id})
}

func (s *webEmailServiceImpl) RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error {
	return removeAll(ctx, s.tx, ids, response.CodeWebEmailNotFound, func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		return s.repo.DeleteByIDs(ctx, tc.SpaceID, ids)
	})
}
