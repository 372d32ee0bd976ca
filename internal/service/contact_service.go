package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

var organizationDependents = deps(
	"contacts", "organization_id",
	"referrals", "organization_id",
	"activities", "organization_id",
	"outreaches", "organization_id",
)

var contactDependents = deps(
	"referrals", "representative_id",
	"outreach_contacts", "contact_id",
)

// OrganizationService defines the interface for organization business logic
type OrganizationService interface {
	Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.OrganizationFilter) (*dto.GridResponse[domain.Organization], error)
	List(ctx context.Context, tc tenant.Context, search string) ([]domain.Organization, error)
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Organization, error)
	Add(ctx context.Context, tc tenant.Context, req dto.OrganizationRequest) (*domain.Organization, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.OrganizationRequest) (*domain.Organization, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
	GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error)
}

type organizationServiceImpl struct {
	repo          repository.OrganizationRepository
	referrerTypes repository.ReferenceRepository[domain.ReferrerType]
	related       repository.RelatedRepository
	tx            Transactor
	logger        *zap.Logger
}

// NewOrganizationService creates a new instance of OrganizationService
func NewOrganizationService(
	repo repository.OrganizationRepository,
	referrerTypes repository.ReferenceRepository[domain.ReferrerType],
	related repository.RelatedRepository,
	tx Transactor,
	logger *zap.Logger,
) OrganizationService {
	return &organizationServiceImpl{repo: repo, referrerTypes: referrerTypes, related: related, tx: tx, logger: logger}
}

func (s *organizationServiceImpl) Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.OrganizationFilter) (*dto.GridResponse[domain.Organization], error) {
	q := gridQuery(req)
	items, total, err := s.repo.Grid(ctx, tc.SpaceID, q, f)
	if err != nil {
		return nil, response.Wrap("Failed to load organizations", err)
	}
	return toGrid(items, total, q), nil
}

func (s *organizationServiceImpl) List(ctx context.Context, tc tenant.Context, search string) ([]domain.Organization, error) {
	items, err := s.repo.List(ctx, tc.SpaceID, search)
	if err != nil {
		return nil, response.Wrap("Failed to load organizations", err)
	}
	return items, nil
}

func (s *organizationServiceImpl) GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Organization, error) {
	org, err := s.repo.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeOrganizationNotFound, err)
	}
	return org, nil
}

func (s *organizationServiceImpl) Add(ctx context.Context, tc tenant.Context, req dto.OrganizationRequest) (*domain.Organization, error) {
	org := &domain.Organization{SpaceID: tc.SpaceID}
	if err := s.save(ctx, tc, org, req, true); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, org.ID)
}

func (s *organizationServiceImpl) Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.OrganizationRequest) (*domain.Organization, error) {
	org, err := s.repo.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeOrganizationNotFound, err)
	}
	if err := s.save(ctx, tc, org, req, false); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, org.ID)
}

func (s *organizationServiceImpl) save(ctx context.Context, tc tenant.Context, org *domain.Organization, req dto.OrganizationRequest, create bool) error {
	if err := checkPhones(req.Phones); err != nil {
		return err
	}
	return s.tx.Do(ctx, func(ctx context.Context) error {
		org.CategoryID = nil
		org.Category = nil
		if req.CategoryID != nil {
			if _, err := s.referrerTypes.FindByID(ctx, tc.SpaceID, *req.CategoryID); err != nil {
				return lookupErr(response.CodeReferrerTypeNotFound, err)
			}
			org.CategoryID = req.CategoryID
		}
		org.Name = strings.TrimSpace(req.Name)
		org.Address = strings.TrimSpace(req.Address)
		org.Website = strings.TrimSpace(req.Website)
		org.Emails = datatypes.JSONSlice[string](cleanEmails(req.Emails))
		org.Phones = nil

		var err error
		if create {
			err = s.repo.Create(ctx, org)
		} else {
			err = s.repo.Update(ctx, org)
		}
		if err != nil {
			return response.Wrap("Failed to save organization", err)
		}

		phones := make([]domain.OrganizationPhone, len(req.Phones))
		for i, p := range req.Phones {
			phones[i] = domain.OrganizationPhone{PhoneFields: p.Fields()}
		}
		if err := s.repo.ReplacePhones(ctx, org.ID, phones); err != nil {
			return response.Wrap("Failed to save organization phones", err)
		}
		return nil
	})
}

func (s *organizationServiceImpl) Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	return s.RemoveBulk(ctx, tc, []uuid.UUID{id})
}

func (s *organizationServiceImpl) RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error {
	return removeAll(ctx, s.tx, ids, response.CodeOrganizationNotFound, func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		return s.repo.DeleteByIDs(ctx, tc.SpaceID, ids)
	})
}

func (s *organizationServiceImpl) GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, response.New(response.CodeOrganizationNotFound)
	}
	if _, err := requireIDs(ctx, ids, response.CodeOrganizationNotFound, s.repo.FindByIDs, tc.SpaceID); err != nil {
		return nil, err
	}
	return relatedInfo(ctx, s.related, organizationDependents, ids)
}

// ContactService defines the interface for contact business logic
type ContactService interface {
	Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.ContactFilter) (*dto.GridResponse[domain.Contact], error)
	List(ctx context.Context, tc tenant.Context, search string) ([]domain.Contact, error)
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Contact, error)
	Add(ctx context.Context, tc tenant.Context, req dto.ContactRequest) (*domain.Contact, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.ContactRequest) (*domain.Contact, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
	GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error)
}

type contactServiceImpl struct {
	repo    repository.ContactRepository
	orgs    repository.OrganizationRepository
	related repository.RelatedRepository
	tx      Transactor
	logger  *zap.Logger
}

// NewContactService creates a new instance of ContactService
func NewContactService(
	repo repository.ContactRepository,
	orgs repository.OrganizationRepository,
	related repository.RelatedRepository,
	tx Transactor,
	logger *zap.Logger,
) ContactService {
	return &contactServiceImpl{repo: repo, orgs: orgs, related: related, tx: tx, logger: logger}
}

func (s *contactServiceImpl) Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.ContactFilter) (*dto.GridResponse[domain.Contact], error) {
	q := gridQuery(req)
	items, total, err := s.repo.Grid(ctx, tc.SpaceID, q, f)
	if err != nil {
		return nil, response.Wrap("Failed to load contacts", err)
	}
	return toGrid(items, total, q), nil
}

func (s *contactServiceImpl) List(ctx context.Context, tc tenant.Context, search string) ([]domain.Contact, error) {
	items, err := s.repo.List(ctx, tc.SpaceID, search)
	if err != nil {
		return nil, response.Wrap("Failed to load contacts", err)
	}
	return items, nil
}

func (s *contactServiceImpl) GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Contact, error) {
	contact, err := s.repo.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeContactNotFound, err)
	}
	return contact, nil
}

func (s *contactServiceImpl) Add(ctx context.Context, tc tenant.Context, req dto.ContactRequest) (*domain.Contact, error) {
	contact := &domain.Contact{SpaceID: tc.SpaceID}
	if err := s.save(ctx, tc, contact, req, true); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, contact.ID)
}

func (s *contactServiceImpl) Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.ContactRequest) (*domain.Contact, error) {
	contact, err := s.repo.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeContactNotFound, err)
	}
	if err := s.save(ctx, tc, contact, req, false); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, contact.ID)
}

func (s *contactServiceImpl) save(ctx context.Context, tc tenant.Context, contact *domain.Contact, req dto.ContactRequest, create bool) error {
	if err := checkPhones(req.Phones); err != nil {
		return err
	}
	return s.tx.Do(ctx, func(ctx context.Context) error {
		contact.OrganizationID = nil
		contact.Organization = nil
		if req.OrganizationID != nil {
			if _, err := s.orgs.FindByID(ctx, tc.SpaceID, *req.OrganizationID); err != nil {
				return lookupErr(response.CodeOrganizationNotFound, err)
			}
			contact.OrganizationID = req.OrganizationID
		}
		contact.FirstName = strings.TrimSpace(req.FirstName)
		contact.LastName = strings.TrimSpace(req.LastName)
		contact.Role = strings.TrimSpace(req.Role)
		contact.Notes = req.Notes
		contact.Emails = datatypes.JSONSlice[string](cleanEmails(req.Emails))
		contact.Phones = nil

		var err error
		if create {
			err = s.repo.Create(ctx, contact)
		} else {
			err = s.repo.Update(ctx, contact)
		}
		if err != nil {
			return response.Wrap("Failed to save contact", err)
		}

		phones := make([]domain.ContactPhone, len(req.Phones))
		for i, p := range req.Phones {
			phones[i] = domain.ContactPhone{PhoneFields: p.Fields()}
		}
		if err := s.repo.ReplacePhones(ctx, contact.ID, phones); err != nil {
			return response.Wrap("Failed to save contact phones", err)
		}
		return nil
	})
}

func (s *contactServiceImpl) Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	return s.RemoveBulk(ctx, tc, []uuid.UUID{id})
}

func (s *contactServiceImpl) RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error {
	return removeAll(ctx, s.tx, ids, response.CodeContactNotFound, func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		return s.repo.DeleteByIDs(ctx, tc.SpaceID, ids)
	})
}

func (s *contactServiceImpl) GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, response.New(response.CodeContactNotFound)
	}
	if _, err := requireIDs(ctx, ids, response.CodeContactNotFound, s.repo.FindByIDs, tc.SpaceID); err != nil {
		return nil, err
	}
	return relatedInfo(ctx, s.related, contactDependents, ids)
}

// cleanEmails trims, lower-cases and de-duplicates an email list.
func cleanEmails(emails []string) []string {
	out := make([]string, 0, len(emails))
	seen := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
