package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/export"
	"seniorcare-lead-api/internal/metrics"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

var leadDependents = deps(
	"activities", "lead_id",
	"lead_funnel_stages", "lead_id",
	"lead_temperatures", "lead_id",
	"assessments", "lead_id",
	"referrals", "lead_id",
	"change_logs", "lead_id",
)

const (
	initialContactTitle = "Initial contact"
	reopenedTitle       = "Lead reopened"
	closedTitle         = "Lead closed"
)

// LeadService defines the interface for the lead workflow
type LeadService interface {
	Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.LeadFilter) (*dto.GridResponse[domain.Lead], error)
	List(ctx context.Context, tc tenant.Context, search string) ([]domain.Lead, error)
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Lead, error)
	Add(ctx context.Context, tc tenant.Context, req dto.LeadRequest) (*domain.Lead, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.LeadRequest) (*domain.Lead, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
	GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error)
	Spam(ctx context.Context, tc tenant.Context, req dto.SpamRequest) error
	Export(ctx context.Context, tc tenant.Context, req dto.ExportRequest, f repository.LeadFilter) (*dto.ExportResult, error)
}

// LeadServiceDeps are the collaborators of the lead workflow
type LeadServiceDeps struct {
	Leads        repository.LeadRepository
	Users        repository.UserRepository
	References   repository.ReferenceRepositories
	Referrals    ReferralService
	FunnelStages repository.HistoryRepository[domain.LeadFunnelStage]
	Temperatures repository.HistoryRepository[domain.LeadTemperature]
	Activities   repository.ActivityRepository
	ChangeLogs   repository.ChangeLogRepository
	Related      repository.RelatedRepository
	Exporter     *export.GridExporter
	Tx           Transactor
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
}

type leadServiceImpl struct {
	LeadServiceDeps
	workflow *workflow
	now      func() time.Time
}

// NewLeadService creates a new instance of LeadService
func NewLeadService(d LeadServiceDeps) LeadService {
	return &leadServiceImpl{
		LeadServiceDeps: d,
		workflow:        newWorkflow(d.Activities, d.ChangeLogs, d.Metrics, d.Logger),
		now:             time.Now,
	}
}

func (s *leadServiceImpl) Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.LeadFilter) (*dto.GridResponse[domain.Lead], error) {
	q := gridQuery(req)
	leads, total, err := s.Leads.Grid(ctx, tc.SpaceID, q, f)
	if err != nil {
		return nil, response.Wrap("Failed to load leads", err)
	}
	return toGrid(leads, total, q), nil
}

func (s *leadServiceImpl) List(ctx context.Context, tc tenant.Context, search string) ([]domain.Lead, error) {
	leads, err := s.Leads.List(ctx, tc.SpaceID, search)
	if err != nil {
		return nil, response.Wrap("Failed to load leads", err)
	}
	return leads, nil
}

func (s *leadServiceImpl) GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Lead, error) {
	lead, err := s.Leads.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeLeadNotFound, err)
	}
	return lead, nil
}

// Add runs the intake: the lead, its optional referral, the initial
// contact activity, a NEW_LEAD change log and the optional first funnel
// stage and temperature, all in one transaction.
func (s *leadServiceImpl) Add(ctx context.Context, tc tenant.Context, req dto.LeadRequest) (*domain.Lead, error) {
	lead := &domain.Lead{SpaceID: tc.SpaceID, State: domain.LeadStateOpen}
	var initial *domain.Activity

	err := s.Tx.Do(ctx, func(ctx context.Context) error {
		if err := s.apply(ctx, tc, lead, req); err != nil {
			return err
		}

		// intake starts OPEN whatever the reason says
		lead.State = domain.LeadStateOpen

		if err := s.Leads.Create(ctx, lead); err != nil {
			return response.Wrap("Failed to create lead", err)
		}
		if err := s.Leads.ReplaceAssociations(ctx, lead); err != nil {
			return response.Wrap("Failed to save lead associations", err)
		}
		if req.Referral.Value != nil {
			if err := s.Referrals.SaveForLead(ctx, tc, lead.ID, req.Referral.Value); err != nil {
				return err
			}
		}

		activity, err := s.workflow.activity(ctx, tc, lead.ID, domain.ActivityKindInitialContact, initialContactTitle, lead.InitialContactDate)
		if err != nil {
			return err
		}
		initial = activity
		if err := s.workflow.changeLog(ctx, tc, domain.ChangeLogNewLead, &lead.ID, map[string]interface{}{
			"lead":  lead.ID,
			"name":  lead.FullName(),
			"owner": lead.OwnerID,
			"state": lead.State,
		}); err != nil {
			return err
		}
		return s.intakeHistory(ctx, tc, lead, req)
	})
	if err != nil {
		s.Logger.Warn("Lead intake rolled back", zap.Error(err))
		return nil, err
	}

	s.Metrics.IncrementLeadCreated()
	s.workflow.counted(initial)
	s.Logger.Info("Lead created",
		zap.String("lead_id", lead.ID.String()),
		zap.String("space_id", tc.SpaceID.String()),
	)
	return s.GetByID(ctx, tc, lead.ID)
}

func (s *leadServiceImpl) intakeHistory(ctx context.Context, tc tenant.Context, lead *domain.Lead, req dto.LeadRequest) error {
	if req.FunnelStageID != nil {
		if _, err := s.References.FunnelStages.FindByID(ctx, tc.SpaceID, *req.FunnelStageID); err != nil {
			return lookupErr(response.CodeFunnelStageNotFound, err)
		}
		entry := &domain.LeadFunnelStage{
			SpaceID:     tc.SpaceID,
			LeadID:      lead.ID,
			StageID:     *req.FunnelStageID,
			Date:        lead.InitialContactDate,
			CreatedByID: tc.UserID,
		}
		if err := s.FunnelStages.Create(ctx, entry); err != nil {
			return response.Wrap("Failed to create lead funnel stage", err)
		}
	}
	if req.TemperatureID != nil {
		if _, err := s.References.Temperatures.FindByID(ctx, tc.SpaceID, *req.TemperatureID); err != nil {
			return lookupErr(response.CodeTemperatureNotFound, err)
		}
		entry := &domain.LeadTemperature{
			SpaceID:       tc.SpaceID,
			LeadID:        lead.ID,
			TemperatureID: *req.TemperatureID,
			Date:          lead.InitialContactDate,
			CreatedByID:   tc.UserID,
		}
		if err := s.Temperatures.Create(ctx, entry); err != nil {
			return response.Wrap("Failed to create lead temperature", err)
		}
	}
	return nil
}

// Edit replaces the lead with req. The state follows the reason (OPEN when
// cleared); a transition writes one activity and a LEAD_UPDATED_STATE entry.
func (s *leadServiceImpl) Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.LeadRequest) (*domain.Lead, error) {
	var before, after domain.LeadState
	var transition *domain.Activity

	err := s.Tx.Do(ctx, func(ctx context.Context) error {
		lead, err := s.Leads.FindByID(ctx, tc.SpaceID, id)
		if err != nil {
			return lookupErr(response.CodeLeadNotFound, err)
		}
		before = lead.State

		if err := s.apply(ctx, tc, lead, req); err != nil {
			return err
		}
		lead.State = domain.LeadStateOpen
		if lead.StateChangeReason != nil {
			lead.State = lead.StateChangeReason.State
		}
		after = lead.State

		if err := s.Leads.Update(ctx, lead); err != nil {
			return response.Wrap("Failed to update lead", err)
		}
		if err := s.Leads.ReplaceAssociations(ctx, lead); err != nil {
			return response.Wrap("Failed to save lead associations", err)
		}
		if req.Referral.Set {
			if err := s.Referrals.SaveForLead(ctx, tc, lead.ID, req.Referral.Value); err != nil {
				return err
			}
		}

		if before == after {
			return nil
		}
		transition, err = s.recordTransition(ctx, tc, lead, before, after)
		return err
	})
	if err != nil {
		s.Logger.Warn("Lead edit rolled back", zap.String("lead_id", id.String()), zap.Error(err))
		return nil, err
	}

	if before != after {
		s.Metrics.RecordLeadStateTransition(string(before), string(after))
	}
	s.workflow.counted(transition)
	return s.GetByID(ctx, tc, id)
}

func (s *leadServiceImpl) recordTransition(ctx context.Context, tc tenant.Context, lead *domain.Lead, before, after domain.LeadState) (*domain.Activity, error) {
	date := s.now()
	if lead.StateEffectiveDate != nil {
		date = *lead.StateEffectiveDate
	}

	var (
		activity *domain.Activity
		err      error
	)
	switch {
	case before == domain.LeadStateClosed && after == domain.LeadStateOpen:
		activity, err = s.workflow.activity(ctx, tc, lead.ID, domain.ActivityKindInitialContact, reopenedTitle, date)
	case before == domain.LeadStateOpen && after == domain.LeadStateClosed:
		title := closedTitle
		if lead.StateChangeReason != nil {
			title = fmt.Sprintf("%s: %s", closedTitle, lead.StateChangeReason.Title)
		}
		activity, err = s.workflow.activity(ctx, tc, lead.ID, domain.ActivityKindStateChange, title, date)
	}
	if err != nil {
		return nil, err
	}

	err = s.workflow.changeLog(ctx, tc, domain.ChangeLogLeadUpdatedState, &lead.ID, stateChange{
		Lead:   lead.ID,
		Before: before,
		After:  after,
	})
	if err != nil {
		return nil, err
	}
	return activity, nil
}

// apply resolves every reference of req inside the space and copies the
// payload onto lead.
func (s *leadServiceImpl) apply(ctx context.Context, tc tenant.Context, lead *domain.Lead, req dto.LeadRequest) error {
	owner, err := s.Users.FindByID(ctx, tc.SpaceID, req.OwnerID)
	if err != nil {
		return lookupErr(response.CodeUserNotFound, err)
	}

	rp := req.ResponsiblePerson
	if strings.TrimSpace(rp.Phone) == "" && strings.TrimSpace(rp.Email) == "" {
		return response.New(response.CodePhoneOrEmailRequired)
	}

	refs := s.References
	lead.StateChangeReason = nil
	if req.StateChangeReasonID != nil {
		if lead.StateChangeReason, err = refs.StateChangeReasons.FindByID(ctx, tc.SpaceID, *req.StateChangeReasonID); err != nil {
			return lookupErr(response.CodeStateChangeReasonNotFound, err)
		}
	}
	if err := resolveOptional(ctx, tc, req.CareTypeID, refs.CareTypes, response.CodeCareTypeNotFound); err != nil {
		return err
	}
	if err := resolveOptional(ctx, tc, req.PaymentSourceID, refs.PaymentSources, response.CodePaymentSourceNotFound); err != nil {
		return err
	}
	if err := resolveOptional(ctx, tc, req.CurrentResidenceID, refs.CurrentResidences, response.CodeCurrentResidenceNotFound); err != nil {
		return err
	}
	if err := resolveOptional(ctx, tc, req.PrimaryFacilityID, refs.Facilities, response.CodeFacilityNotFound); err != nil {
		return err
	}

	facilities, err := requireIDs(ctx, req.FacilityIDs, response.CodeFacilityNotFound, refs.Facilities.FindByIDs, tc.SpaceID)
	if err != nil {
		return err
	}
	hobbies, err := requireIDs(ctx, req.HobbyIDs, response.CodeHobbyNotFound, refs.Hobbies.FindByIDs, tc.SpaceID)
	if err != nil {
		return err
	}
	qualifications, err := requireIDs(ctx, req.QualificationIDs, response.CodeQualificationNotFound, refs.QualificationRequirements.FindByIDs, tc.SpaceID)
	if err != nil {
		return err
	}

	lead.FirstName = strings.TrimSpace(req.FirstName)
	lead.LastName = strings.TrimSpace(req.LastName)
	lead.Birthday = req.Birthday
	lead.OwnerID = owner.ID
	lead.StateChangeReasonID = req.StateChangeReasonID
	lead.StateEffectiveDate = req.StateEffectiveDate
	lead.CareTypeID = req.CareTypeID
	lead.PaymentSourceID = req.PaymentSourceID
	lead.CurrentResidenceID = req.CurrentResidenceID
	lead.PrimaryFacilityID = req.PrimaryFacilityID
	lead.ResponsibleFirstName = strings.TrimSpace(rp.FirstName)
	lead.ResponsibleLastName = strings.TrimSpace(rp.LastName)
	lead.ResponsibleAddress = strings.TrimSpace(rp.Address)
	lead.ResponsibleCity = strings.TrimSpace(rp.City)
	lead.ResponsibleZip = strings.TrimSpace(rp.Zip)
	lead.ResponsiblePhone = strings.TrimSpace(rp.Phone)
	lead.ResponsibleEmail = strings.TrimSpace(rp.Email)
	lead.InitialContactDate = req.InitialContactDate
	lead.InTakeSource = strings.TrimSpace(req.InTakeSource)
	lead.Notes = req.Notes
	lead.Facilities = facilities
	lead.Hobbies = hobbies
	lead.Qualifications = qualifications

	// belongs-to pointers are stale after the id swap
	lead.Owner = nil
	lead.CareType = nil
	lead.PaymentSource = nil
	lead.CurrentResidence = nil
	lead.PrimaryFacility = nil
	lead.Referral = nil
	return nil
}

func resolveOptional[T any](ctx context.Context, tc tenant.Context, id *uuid.UUID, repo repository.ReferenceRepository[T], code response.Code) error {
	if id == nil {
		return nil
	}
	if _, err := repo.FindByID(ctx, tc.SpaceID, *id); err != nil {
		return lookupErr(code, err)
	}
	return nil
}

func (s *leadServiceImpl) Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	return s.RemoveBulk(ctx, tc, []uuid.UUID{id})
}

// RemoveBulk deletes the leads with every dependent row.
func (s *leadServiceImpl) RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error {
	err := removeAll(ctx, s.Tx, ids, response.CodeLeadNotFound, func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		return s.Leads.DeleteCascade(ctx, tc.SpaceID, ids)
	})
	if err != nil {
		return err
	}
	s.Logger.Info("Leads deleted", zap.Int("count", len(dedupe(ids))), zap.String("space_id", tc.SpaceID.String()))
	return nil
}

func (s *leadServiceImpl) GetRelatedInfo(ctx context.Context, tc tenant.Context, ids []uuid.UUID) ([]dto.RelatedInfo, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, response.New(response.CodeLeadNotFound)
	}
	if _, err := requireIDs(ctx, ids, response.CodeLeadNotFound, s.Leads.FindByIDs, tc.SpaceID); err != nil {
		return nil, err
	}
	return relatedInfo(ctx, s.Related, leadDependents, ids)
}

// Spam flags or unflags every lead of req. Unknown ids fail the whole call.
func (s *leadServiceImpl) Spam(ctx context.Context, tc tenant.Context, req dto.SpamRequest) error {
	ids := dedupe(req.IDs)
	if len(ids) == 0 {
		return response.New(response.CodeLeadNotFound)
	}
	return s.Tx.Do(ctx, func(ctx context.Context) error {
		if _, err := requireIDs(ctx, ids, response.CodeLeadNotFound, s.Leads.FindByIDs, tc.SpaceID); err != nil {
			return err
		}
		if _, err := s.Leads.SetSpam(ctx, tc.SpaceID, ids, req.Spam); err != nil {
			return response.Wrap("Failed to update leads", err)
		}
		return nil
	})
}

var leadExportColumns = []export.Column{
	{Header: "First Name"},
	{Header: "Last Name"},
	{Header: "State", Width: 10},
	{Header: "Owner", Width: 24},
	{Header: "Care Type"},
	{Header: "Payment Source"},
	{Header: "Primary Facility", Width: 24},
	{Header: "Initial Contact", Width: 14},
	{Header: "Responsible Person", Width: 24},
	{Header: "Phone"},
	{Header: "Email", Width: 28},
	{Header: "In-take Source"},
}

// Export renders the filtered lead grid to xlsx.
func (s *leadServiceImpl) Export(ctx context.Context, tc tenant.Context, req dto.ExportRequest, f repository.LeadFilter) (*dto.ExportResult, error) {
	leads, err := s.Leads.FindAll(ctx, tc.SpaceID, req.Search, f)
	if err != nil {
		return nil, response.Wrap("Failed to load leads", err)
	}

	rows := make([][]interface{}, len(leads))
	for i, l := range leads {
		owner := ""
		if l.Owner != nil {
			owner = l.Owner.FullName()
		}
		rows[i] = []interface{}{
			l.FirstName,
			l.LastName,
			string(l.State),
			owner,
			titleOf(l.CareType),
			titleOf(l.PaymentSource),
			titleOf(l.PrimaryFacility),
			export.Date(&l.InitialContactDate),
			strings.TrimSpace(l.ResponsibleFirstName + " " + l.ResponsibleLastName),
			l.ResponsiblePhone,
			l.ResponsibleEmail,
			l.InTakeSource,
		}
	}

	return runExport(ctx, s.Exporter, tc, "leads", export.Sheet{Name: "Leads", Columns: leadExportColumns, Rows: rows}, req.Destination)
}

func titleOf[T interface{ GetTitle() string }](ref *T) string {
	if ref == nil {
		return ""
	}
	return (*ref).GetTitle()
}

func runExport(ctx context.Context, exporter *export.GridExporter, tc tenant.Context, grid string, sheet export.Sheet, destination string) (*dto.ExportResult, error) {
	result, err := exporter.Export(ctx, tc.SpaceID, grid, sheet, destination)
	if errors.Is(err, export.ErrStorageUnavailable) {
		return nil, response.New(response.CodeExportUnavailable)
	}
	if err != nil {
		return nil, response.Wrap("Failed to export "+grid, err)
	}
	return result, nil
}
