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

var referralDependents = deps("activities", "referral_id")

// ReferralService defines the interface for referral business logic
type ReferralService interface {
	Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.ReferralFilter) (*dto.GridResponse[domain.Referral], error)
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Referral, error)
	Add(ctx context.Context, tc tenant.Context, req dto.ReferralRequest) (*domain.Referral, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.ReferralRequest) (*domain.Referral, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
	GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error)
	// SaveForLead creates, edits or detaches the referral of a lead. A nil
	// req removes the current referral. Must run inside a transaction.
	SaveForLead(ctx context.Context, tc tenant.Context, leadID uuid.UUID, req *dto.ReferralRequest) error
}

type referralServiceImpl struct {
	repo          repository.ReferralRepository
	referrerTypes repository.ReferenceRepository[domain.ReferrerType]
	orgs          repository.OrganizationRepository
	contacts      repository.ContactRepository
	related       repository.RelatedRepository
	tx            Transactor
	logger        *zap.Logger
}

// NewReferralService creates a new instance of ReferralService
func NewReferralService(
	repo repository.ReferralRepository,
	referrerTypes repository.ReferenceRepository[domain.ReferrerType],
	orgs repository.OrganizationRepository,
	contacts repository.ContactRepository,
	related repository.RelatedRepository,
	tx Transactor,
	logger *zap.Logger,
) ReferralService {
	return &referralServiceImpl{
		repo:          repo,
		referrerTypes: referrerTypes,
		orgs:          orgs,
		contacts:      contacts,
		related:       related,
		tx:            tx,
		logger:        logger,
	}
}

func (s *referralServiceImpl) Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.ReferralFilter) (*dto.GridResponse[domain.Referral], error) {
	q := gridQuery(req)
	items, total, err := s.repo.Grid(ctx, tc.SpaceID, q, f)
	if err != nil {
		return nil, response.Wrap("Failed to load referrals", err)
	}
	return toGrid(items, total, q), nil
}

func (s *referralServiceImpl) GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Referral, error) {
	referral, err := s.repo.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeReferralNotFound, err)
	}
	return referral, nil
}

func (s *referralServiceImpl) Add(ctx context.Context, tc tenant.Context, req dto.ReferralRequest) (*domain.Referral, error) {
	referral := &domain.Referral{SpaceID: tc.SpaceID}
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		return s.save(ctx, tc, referral, req, true)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, referral.ID)
}

func (s *referralServiceImpl) Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.ReferralRequest) (*domain.Referral, error) {
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		referral, err := s.repo.FindByID(ctx, tc.SpaceID, id)
		if err != nil {
			return lookupErr(response.CodeReferralNotFound, err)
		}
		return s.save(ctx, tc, referral, req, false)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, id)
}

func (s *referralServiceImpl) SaveForLead(ctx context.Context, tc tenant.Context, leadID uuid.UUID, req *dto.ReferralRequest) error {
	current, err := s.repo.FindByLeadID(ctx, tc.SpaceID, leadID)
	if err != nil && !isNotFound(err) {
		return response.Wrap("Failed to load referral", err)
	}

	if req == nil {
		if current == nil {
			return nil
		}
		if _, err := s.repo.DeleteByIDs(ctx, tc.SpaceID, []uuid.UUID{current.ID}); err != nil {
			return response.Wrap("Failed to remove referral", err)
		}
		return nil
	}

	if current == nil {
		return s.save(ctx, tc, &domain.Referral{SpaceID: tc.SpaceID, LeadID: &leadID}, *req, true)
	}
	return s.save(ctx, tc, current, *req, false)
}

// save applies the referrer type's ruleset: the organization is kept only
// when the type requires it, the representative and phone list likewise.
func (s *referralServiceImpl) save(ctx context.Context, tc tenant.Context, referral *domain.Referral, req dto.ReferralRequest, create bool) error {
	if req.TypeID == uuid.Nil {
		return response.New(response.CodeReferrerTypeNotFound)
	}
	referrerType, err := s.referrerTypes.FindByID(ctx, tc.SpaceID, req.TypeID)
	if err != nil {
		return lookupErr(response.CodeReferrerTypeNotFound, err)
	}

	referral.TypeID = referrerType.ID
	referral.Type = nil
	referral.Notes = req.Notes
	referral.OrganizationID = nil
	referral.Organization = nil
	referral.RepresentativeID = nil
	referral.Representative = nil
	referral.Phones = nil

	if referrerType.OrganizationRequired {
		if req.OrganizationID == nil {
			return response.New(response.CodeReferralOrganizationRequired)
		}
		if _, err := s.orgs.FindByID(ctx, tc.SpaceID, *req.OrganizationID); err != nil {
			return lookupErr(response.CodeOrganizationNotFound, err)
		}
		referral.OrganizationID = req.OrganizationID
	}

	var phones []domain.ReferralPhone
	if referrerType.RepresentativeRequired {
		if req.RepresentativeID == nil {
			return response.New(response.CodeReferralRepresentativeRequired)
		}
		if err := checkPhones(req.Phones); err != nil {
			return err
		}
		if _, err := s.contacts.FindByID(ctx, tc.SpaceID, *req.RepresentativeID); err != nil {
			return lookupErr(response.CodeContactNotFound, err)
		}
		referral.RepresentativeID = req.RepresentativeID
		phones = make([]domain.ReferralPhone, len(req.Phones))
		for i, p := range req.Phones {
			phones[i] = domain.ReferralPhone{PhoneFields: p.Fields()}
		}
	}

	if create {
		err = s.repo.Create(ctx, referral)
	} else {
		err = s.repo.Update(ctx, referral)
	}
	if err != nil {
		return response.Wrap("Failed to save referral", err)
	}
	if err := s.repo.ReplacePhones(ctx, referral.ID, phones); err != nil {
		return response.Wrap("Failed to save referral phones", err)
	}
	return nil
}

func (s *referralServiceImpl) Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	return s.RemoveBulk(ctx, tc, []uuid.UUID{id})
}

func (s *referralServiceImpl) RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error {
	return removeAll(ctx, s.tx, ids, response.CodeReferralNotFound, func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		return s.repo.DeleteByIDs(ctx, tc.SpaceID, ids)
	})
}

func (s *referralServiceImpl) GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, response.New(response.CodeReferralNotFound)
	}
	if _, err := requireIDs(ctx, ids, response.CodeReferralNotFound, s.repo.FindByIDs, tc.SpaceID); err != nil {
		return nil, err
	}
	return relatedInfo(ctx, s.related, referralDependents, ids)
}
