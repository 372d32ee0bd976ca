package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/metrics"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

// ChangeLogService defines the interface for reading the audit trail
type ChangeLogService interface {
	Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.ChangeLogFilter) (*dto.GridResponse[domain.ChangeLog], error)
}

type changeLogServiceImpl struct {
	repo repository.ChangeLogRepository
}

// NewChangeLogService creates a new instance of ChangeLogService
func NewChangeLogService(repo repository.ChangeLogRepository) ChangeLogService {
	return &changeLogServiceImpl{repo: repo}
}

func (s *changeLogServiceImpl) Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.ChangeLogFilter) (*dto.GridResponse[domain.ChangeLog], error) {
	q := gridQuery(req)
	items, total, err := s.repo.Grid(ctx, tc.SpaceID, q, f)
	if err != nil {
		return nil, response.Wrap("Failed to load change logs", err)
	}
	return toGrid(items, total, q), nil
}

// workflow writes the records the lead workflow derives on its own:
// system activities and change log entries. Callers run it inside their
// transaction and call counted once it commits.
type workflow struct {
	activities repository.ActivityRepository
	changeLogs repository.ChangeLogRepository
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func newWorkflow(activities repository.ActivityRepository, changeLogs repository.ChangeLogRepository, m *metrics.Metrics, logger *zap.Logger) *workflow {
	return &workflow{activities: activities, changeLogs: changeLogs, metrics: m, logger: logger}
}

// activity creates a system activity owned by the lead.
func (w *workflow) activity(ctx context.Context, tc tenant.Context, leadID uuid.UUID, kind domain.ActivityKind, title string, date time.Time) (*domain.Activity, error) {
	activity := &domain.Activity{
		SpaceID:   tc.SpaceID,
		OwnerType: domain.OwnerTypeLead,
		LeadID:    &leadID,
		Kind:      kind,
		Title:     title,
		Date:      date,
	}
	if err := w.activities.Create(ctx, activity); err != nil {
		return nil, response.Wrap("Failed to create activity", err)
	}
	w.logger.Debug("System activity created",
		zap.String("kind", string(kind)),
		zap.String("lead_id", leadID.String()),
		zap.String("activity_id", activity.ID.String()),
	)
	return activity, nil
}

// counted reports the system activities of a committed transaction.
func (w *workflow) counted(activities ...*domain.Activity) {
	for _, a := range activities {
		if a != nil {
			w.metrics.IncrementActivityCreated(string(a.Kind))
		}
	}
}

// changeLog records an audit entry. content is stored as JSON.
func (w *workflow) changeLog(ctx context.Context, tc tenant.Context, typ domain.ChangeLogType, leadID *uuid.UUID, content interface{}) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return response.Wrap("Failed to encode change log", err)
	}
	entry := &domain.ChangeLog{
		SpaceID: tc.SpaceID,
		Type:    typ,
		LeadID:  leadID,
		OwnerID: tc.UserID,
		Content: datatypes.JSON(raw),
	}
	if err := w.changeLogs.Create(ctx, entry); err != nil {
		return response.Wrap("Failed to write change log", err)
	}
	w.logger.Info("Change log written",
		zap.String("type", string(typ)),
		zap.String("space_id", tc.SpaceID.String()),
		zap.String("user_id", tc.UserID.String()),
	)
	return nil
}

// stateChange is the LEAD_UPDATED_STATE content
type stateChange struct {
	Lead   uuid.UUID        `json:"lead"`
	Before domain.LeadState `json:"before"`
	After  domain.LeadState `json:"after"`
}

// valueChange is the content of funnel stage and temperature updates
type valueChange struct {
	Lead   uuid.UUID `json:"lead"`
	Entry  uuid.UUID `json:"entry"`
	Before string    `json:"before,omitempty"`
	After  string    `json:"after"`
}
