package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/metrics"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

// LeadTemperatureService defines the interface for the temperature history of a lead
type LeadTemperatureService interface {
	ListByLead(ctx context.Context, tc tenant.Context, leadID uuid.UUID) ([]domain.LeadTemperature, error)
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.LeadTemperature, error)
	Add(ctx context.Context, tc tenant.Context, req dto.LeadTemperatureRequest) (*domain.LeadTemperature, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.LeadTemperatureRequest) (*domain.LeadTemperature, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
}

// LeadFunnelStageService defines the interface for the funnel stage history of a lead
type LeadFunnelStageService interface {
	ListByLead(ctx context.Context, tc tenant.Context, leadID uuid.UUID) ([]domain.LeadFunnelStage, error)
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.LeadFunnelStage, error)
	Add(ctx context.Context, tc tenant.Context, req dto.LeadFunnelStageRequest) (*domain.LeadFunnelStage, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.LeadFunnelStageRequest) (*domain.LeadFunnelStage, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
}

// LeadHistoryDeps are the collaborators of both history services
type LeadHistoryDeps struct {
	Leads        repository.LeadRepository
	References   repository.ReferenceRepositories
	FunnelStages repository.HistoryRepository[domain.LeadFunnelStage]
	Temperatures repository.HistoryRepository[domain.LeadTemperature]
	Activities   repository.ActivityRepository
	ChangeLogs   repository.ChangeLogRepository
	Tx           Transactor
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
}

type leadHistory struct {
	LeadHistoryDeps
	workflow *workflow
}

func newLeadHistory(d LeadHistoryDeps) *leadHistory {
	return &leadHistory{LeadHistoryDeps: d, workflow: newWorkflow(d.Activities, d.ChangeLogs, d.Metrics, d.Logger)}
}

func (h *leadHistory) requireLead(ctx context.Context, tc tenant.Context, leadID uuid.UUID) error {
	_, err := requireIDs(ctx, []uuid.UUID{leadID}, response.CodeLeadNotFound, h.Leads.FindByIDs, tc.SpaceID)
	return err
}

type leadTemperatureServiceImpl struct {
	*leadHistory
}

// NewLeadTemperatureService creates a new instance of LeadTemperatureService
func NewLeadTemperatureService(d LeadHistoryDeps) LeadTemperatureService {
	return &leadTemperatureServiceImpl{newLeadHistory(d)}
}

func (s *leadTemperatureServiceImpl) ListByLead(ctx context.Context, tc tenant.Context, leadID uuid.UUID) ([]domain.LeadTemperature, error) {
	if err := s.requireLead(ctx, tc, leadID); err != nil {
		return nil, err
	}
	entries, err := s.Temperatures.ListByLead(ctx, tc.SpaceID, leadID)
	if err != nil {
		return nil, response.Wrap("Failed to load lead temperatures", err)
	}
	return entries, nil
}

func (s *leadTemperatureServiceImpl) GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.LeadTemperature, error) {
	entry, err := s.Temperatures.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeLeadTemperatureNotFound, err)
	}
	return entry, nil
}

// Add appends a temperature. The entry must follow an earlier one on the
// same lead; the change is logged as an activity.
func (s *leadTemperatureServiceImpl) Add(ctx context.Context, tc tenant.Context, req dto.LeadTemperatureRequest) (*domain.LeadTemperature, error) {
	entry := &domain.LeadTemperature{SpaceID: tc.SpaceID, CreatedByID: tc.UserID}
	var change *domain.Activity

	err := s.Tx.Do(ctx, func(ctx context.Context) error {
		temperature, err := s.apply(ctx, tc, entry, req)
		if err != nil {
			return err
		}
		if err := s.Temperatures.Create(ctx, entry); err != nil {
			return response.Wrap("Failed to create lead temperature", err)
		}

		previous, err := s.Temperatures.FindPreceding(ctx, tc.SpaceID, entry.LeadID, entry.ID, entry.Date, entry.CreatedAt)
		if err != nil {
			return lookupErr(response.CodeLeadTemperatureNotFound, err)
		}
		before := titleOf(previous.Temperature)

		title := fmt.Sprintf("Changed temperature from %s to %s", before, temperature.Title)
		change, err = s.workflow.activity(ctx, tc, entry.LeadID, domain.ActivityKindTemperatureChange, title, entry.Date)
		if err != nil {
			return err
		}
		return s.workflow.changeLog(ctx, tc, domain.ChangeLogLeadUpdatedTemperature, &entry.LeadID, valueChange{
			Lead:   entry.LeadID,
			Entry:  entry.ID,
			Before: before,
			After:  temperature.Title,
		})
	})
	if err != nil {
		s.Logger.Warn("Lead temperature rolled back", zap.String("lead_id", req.LeadID.String()), zap.Error(err))
		return nil, err
	}
	s.workflow.counted(change)
	return s.GetByID(ctx, tc, entry.ID)
}

func (s *leadTemperatureServiceImpl) Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.LeadTemperatureRequest) (*domain.LeadTemperature, error) {
	err := s.Tx.Do(ctx, func(ctx context.Context) error {
		entry, err := s.Temperatures.FindByID(ctx, tc.SpaceID, id)
		if err != nil {
			return lookupErr(response.CodeLeadTemperatureNotFound, err)
		}
		if _, err := s.apply(ctx, tc, entry, req); err != nil {
			return err
		}
		if err := s.Temperatures.Update(ctx, entry); err != nil {
			return response.Wrap("Failed to update lead temperature", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, id)
}

func (s *leadTemperatureServiceImpl) apply(ctx context.Context, tc tenant.Context, entry *domain.LeadTemperature, req dto.LeadTemperatureRequest) (*domain.Temperature, error) {
	if err := s.requireLead(ctx, tc, req.LeadID); err != nil {
		return nil, err
	}
	temperature, err := s.References.Temperatures.FindByID(ctx, tc.SpaceID, req.TemperatureID)
	if err != nil {
		return nil, lookupErr(response.CodeTemperatureNotFound, err)
	}
	entry.LeadID = req.LeadID
	entry.TemperatureID = temperature.ID
	entry.Temperature = nil
	entry.Date = req.Date
	entry.Notes = req.Notes
	return temperature, nil
}

func (s *leadTemperatureServiceImpl) Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	return s.RemoveBulk(ctx, tc, []uuid.UUID{id})
}

func (s *leadTemperatureServiceImpl) RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error {
	return removeAll(ctx, s.Tx, ids, response.CodeLeadTemperatureNotFound, func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		return s.Temperatures.DeleteByIDs(ctx, tc.SpaceID, ids)
	})
}

type leadFunnelStageServiceImpl struct {
	*leadHistory
}

// NewLeadFunnelStageService creates a new instance of LeadFunnelStageService
func NewLeadFunnelStageService(d LeadHistoryDeps) LeadFunnelStageService {
	return &leadFunnelStageServiceImpl{newLeadHistory(d)}
}

func (s *leadFunnelStageServiceImpl) ListByLead(ctx context.Context, tc tenant.Context, leadID uuid.UUID) ([]domain.LeadFunnelStage, error) {
	if err := s.requireLead(ctx, tc, leadID); err != nil {
		return nil, err
	}
	entries, err := s.FunnelStages.ListByLead(ctx, tc.SpaceID, leadID)
	if err != nil {
		return nil, response.Wrap("Failed to load lead funnel stages", err)
	}
	return entries, nil
}

func (s *leadFunnelStageServiceImpl) GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.LeadFunnelStage, error) {
	entry, err := s.FunnelStages.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeLeadFunnelStageNotFound, err)
	}
	return entry, nil
}

// Add appends a funnel stage. When an earlier stage exists the move is
// logged as an activity; the first stage of a lead is not.
func (s *leadFunnelStageServiceImpl) Add(ctx context.Context, tc tenant.Context, req dto.LeadFunnelStageRequest) (*domain.LeadFunnelStage, error) {
	entry := &domain.LeadFunnelStage{SpaceID: tc.SpaceID, CreatedByID: tc.UserID}
	var change *domain.Activity

	err := s.Tx.Do(ctx, func(ctx context.Context) error {
		stage, err := s.apply(ctx, tc, entry, req)
		if err != nil {
			return err
		}
		if err := s.FunnelStages.Create(ctx, entry); err != nil {
			return response.Wrap("Failed to create lead funnel stage", err)
		}

		previous, err := s.FunnelStages.FindPreceding(ctx, tc.SpaceID, entry.LeadID, entry.ID, entry.Date, entry.CreatedAt)
		if err != nil && !isNotFound(err) {
			return response.Wrap("Failed to load LeadFunnelStage", err)
		}

		before := ""
		if previous != nil {
			before = titleOf(previous.Stage)
			title := fmt.Sprintf("Changed funnel stage from %s to %s", before, stage.Title)
			change, err = s.workflow.activity(ctx, tc, entry.LeadID, domain.ActivityKindFunnelStageChange, title, entry.Date)
			if err != nil {
				return err
			}
		}
		return s.workflow.changeLog(ctx, tc, domain.ChangeLogLeadUpdatedFunnelStage, &entry.LeadID, valueChange{
			Lead:   entry.LeadID,
			Entry:  entry.ID,
			Before: before,
			After:  stage.Title,
		})
	})
	if err != nil {
		s.Logger.Warn("Lead funnel stage rolled back", zap.String("lead_id", req.LeadID.String()), zap.Error(err))
		return nil, err
	}
	s.workflow.counted(change)
	return s.GetByID(ctx, tc, entry.ID)
}

func (s *leadFunnelStageServiceImpl) Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.LeadFunnelStageRequest) (*domain.LeadFunnelStage, error) {
	err := s.Tx.Do(ctx, func(ctx context.Context) error {
		entry, err := s.FunnelStages.FindByID(ctx, tc.SpaceID, id)
		if err != nil {
			return lookupErr(response.CodeLeadFunnelStageNotFound, err)
		}
		if _, err := s.apply(ctx, tc, entry, req); err != nil {
			return err
		}
		if err := s.FunnelStages.Update(ctx, entry); err != nil {
			return response.Wrap("Failed to update lead funnel stage", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tc, id)
}

func (s *leadFunnelStageServiceImpl) apply(ctx context.Context, tc tenant.Context, entry *domain.LeadFunnelStage, req dto.LeadFunnelStageRequest) (*domain.FunnelStage, error) {
	if err := s.requireLead(ctx, tc, req.LeadID); err != nil {
		return nil, err
	}
	stage, err := s.References.FunnelStages.FindByID(ctx, tc.SpaceID, req.StageID)
	if err != nil {
		return nil, lookupErr(response.CodeFunnelStageNotFound, err)
	}
	if err := resolveOptional(ctx, tc, req.ReasonID, s.References.StageChangeReasons, response.CodeStageChangeReasonNotFound); err != nil {
		return nil, err
	}
	entry.LeadID = req.LeadID
	entry.StageID = stage.ID
	entry.Stage = nil
	entry.ReasonID = req.ReasonID
	entry.Reason = nil
	entry.Date = req.Date
	entry.Notes = req.Notes
	return stage, nil
}

func (s *leadFunnelStageServiceImpl) Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	return s.RemoveBulk(ctx, tc, []uuid.UUID{id})
}

func (s *leadFunnelStageServiceImpl) RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error {
	return removeAll(ctx, s.Tx, ids, response.CodeLeadFunnelStageNotFound, func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		return s.FunnelStages.DeleteByIDs(ctx, tc.SpaceID, ids)
	})
}
