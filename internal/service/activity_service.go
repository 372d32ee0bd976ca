package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seniorcare-lead-api/internal/client"
	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/export"
	"seniorcare-lead-api/internal/metrics"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

// ActivityService defines the interface for activity business logic
type ActivityService interface {
	Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.ActivityFilter) (*dto.GridResponse[domain.Activity], error)
	ListByOwner(ctx context.Context, tc tenant.Context, ownerType domain.OwnerType, ownerID uuid.UUID) ([]domain.Activity, error)
	GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Activity, error)
	Add(ctx context.Context, tc tenant.Context, req dto.ActivityRequest) (*domain.Activity, error)
	Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.ActivityRequest) (*domain.Activity, error)
	Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error
	RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error
	Export(ctx context.Context, tc tenant.Context, req dto.ExportRequest, f repository.ActivityFilter) (*dto.ExportResult, error)
}

// ActivityServiceDeps are the collaborators of ActivityService
type ActivityServiceDeps struct {
	Activities    repository.ActivityRepository
	Leads         repository.LeadRepository
	Referrals     repository.ReferralRepository
	Organizations repository.OrganizationRepository
	Users         repository.UserRepository
	References    repository.ReferenceRepositories
	ChangeLogs    repository.ChangeLogRepository
	Notifications client.NotificationClient
	Exporter      *export.GridExporter
	Tx            Transactor
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

type activityServiceImpl struct {
	ActivityServiceDeps
	workflow *workflow
}

// NewActivityService creates a new instance of ActivityService
func NewActivityService(d ActivityServiceDeps) ActivityService {
	if d.Notifications == nil {
		d.Notifications = client.NewNoOpNotificationClient()
	}
	return &activityServiceImpl{
		ActivityServiceDeps: d,
		workflow:            newWorkflow(d.Activities, d.ChangeLogs, d.Metrics, d.Logger),
	}
}

func (s *activityServiceImpl) Grid(ctx context.Context, tc tenant.Context, req dto.GridRequest, f repository.ActivityFilter) (*dto.GridResponse[domain.Activity], error) {
	q := gridQuery(req)
	items, total, err := s.Activities.Grid(ctx, tc.SpaceID, q, f)
	if err != nil {
		return nil, response.Wrap("Failed to load activities", err)
	}
	return toGrid(items, total, q), nil
}

func (s *activityServiceImpl) ListByOwner(ctx context.Context, tc tenant.Context, ownerType domain.OwnerType, ownerID uuid.UUID) ([]domain.Activity, error) {
	if !ownerType.Valid() {
		return nil, response.New(response.CodeActivityOwnerTypeInvalid)
	}
	items, err := s.Activities.FindAll(ctx, tc.SpaceID, "", repository.ActivityFilter{OwnerType: ownerType, OwnerID: &ownerID})
	if err != nil {
		return nil, response.Wrap("Failed to load activities", err)
	}
	return items, nil
}

func (s *activityServiceImpl) GetByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*domain.Activity, error) {
	activity, err := s.Activities.FindByID(ctx, tc.SpaceID, id)
	if err != nil {
		return nil, lookupErr(response.CodeActivityNotFound, err)
	}
	return activity, nil
}

func (s *activityServiceImpl) Add(ctx context.Context, tc tenant.Context, req dto.ActivityRequest) (*domain.Activity, error) {
	activity := &domain.Activity{SpaceID: tc.SpaceID, Kind: domain.ActivityKindUser}

	err := s.Tx.Do(ctx, func(ctx context.Context) error {
		if err := s.apply(ctx, tc, activity, req); err != nil {
			return err
		}
		if err := s.Activities.Create(ctx, activity); err != nil {
			return response.Wrap("Failed to create activity", err)
		}
		if activity.LeadID == nil {
			return nil
		}
		return s.workflow.changeLog(ctx, tc, domain.ChangeLogNewActivity, activity.LeadID, map[string]interface{}{
			"lead":     *activity.LeadID,
			"activity": activity.ID,
			"title":    activity.Title,
		})
	})
	if err != nil {
		return nil, err
	}

	s.Metrics.IncrementActivityCreated(string(activity.Kind))
	s.notifyAssignee(ctx, tc, activity, nil)
	return s.GetByID(ctx, tc, activity.ID)
}

func (s *activityServiceImpl) Edit(ctx context.Context, tc tenant.Context, id uuid.UUID, req dto.ActivityRequest) (*domain.Activity, error) {
	var activity *domain.Activity
	var previousAssignee *uuid.UUID

	err := s.Tx.Do(ctx, func(ctx context.Context) error {
		var err error
		activity, err = s.Activities.FindByID(ctx, tc.SpaceID, id)
		if err != nil {
			return lookupErr(response.CodeActivityNotFound, err)
		}
		previousAssignee = activity.AssignToID
		previousReminder := activity.ReminderDate

		if err := s.apply(ctx, tc, activity, req); err != nil {
			return err
		}
		if !sameTime(previousReminder, activity.ReminderDate) {
			activity.RemindedAt = nil
			activity.ReminderAttempts = 0
			activity.ReminderFailedAt = nil
		}
		if err := s.Activities.Update(ctx, activity); err != nil {
			return response.Wrap("Failed to update activity", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAssignee(ctx, tc, activity, previousAssignee)
	return s.GetByID(ctx, tc, id)
}

// apply validates req against its owner type and activity type and copies it
// onto activity. Fields the type does not enable are cleared.
func (s *activityServiceImpl) apply(ctx context.Context, tc tenant.Context, activity *domain.Activity, req dto.ActivityRequest) error {
	if err := s.resolveOwner(ctx, tc, req); err != nil {
		return err
	}

	activityType, err := s.References.ActivityTypes.FindByID(ctx, tc.SpaceID, req.TypeID)
	if err != nil {
		return lookupErr(response.CodeActivityTypeNotFound, err)
	}

	statusID := req.StatusID
	if statusID == nil {
		statusID = activityType.DefaultStatusID
	}
	if statusID == nil {
		return response.New(response.CodeActivityStatusRequired)
	}
	if _, err := s.References.ActivityStatuses.FindByID(ctx, tc.SpaceID, *statusID); err != nil {
		return lookupErr(response.CodeActivityStatusNotFound, err)
	}

	activity.OwnerType = req.OwnerType
	activity.LeadID = req.LeadID
	activity.ReferralID = req.ReferralID
	activity.OrganizationID = req.OrganizationID
	activity.TypeID = &activityType.ID
	activity.StatusID = statusID
	activity.Title = strings.TrimSpace(req.Title)
	activity.Date = req.Date
	activity.Notes = req.Notes
	activity.AssignToID = nil
	activity.DueDate = nil
	activity.ReminderDate = nil
	activity.FacilityID = nil

	if activityType.AssignTo && req.AssignToID != nil {
		if _, err := s.Users.FindByID(ctx, tc.SpaceID, *req.AssignToID); err != nil {
			return lookupErr(response.CodeUserNotFound, err)
		}
		activity.AssignToID = req.AssignToID
	}
	if activityType.DueDate {
		activity.DueDate = req.DueDate
	}
	if activityType.ReminderDate {
		activity.ReminderDate = req.ReminderDate
	}
	if activityType.Facility && req.FacilityID != nil {
		if _, err := s.References.Facilities.FindByID(ctx, tc.SpaceID, *req.FacilityID); err != nil {
			return lookupErr(response.CodeFacilityNotFound, err)
		}
		activity.FacilityID = req.FacilityID
	}

	activity.Type = nil
	activity.Status = nil
	activity.AssignTo = nil
	activity.Facility = nil
	return nil
}

// resolveOwner checks that exactly the id matching the owner type is set
// and that it exists in the space.
func (s *activityServiceImpl) resolveOwner(ctx context.Context, tc tenant.Context, req dto.ActivityRequest) error {
	invalid := response.New(response.CodeActivityOwnerTypeInvalid)

	switch req.OwnerType {
	case domain.OwnerTypeLead:
		if req.LeadID == nil || req.ReferralID != nil || req.OrganizationID != nil {
			return invalid
		}
		_, err := requireIDs(ctx, []uuid.UUID{*req.LeadID}, response.CodeLeadNotFound, s.Leads.FindByIDs, tc.SpaceID)
		return err
	case domain.OwnerTypeReferral:
		if req.ReferralID == nil || req.LeadID != nil || req.OrganizationID != nil {
			return invalid
		}
		_, err := requireIDs(ctx, []uuid.UUID{*req.ReferralID}, response.CodeReferralNotFound, s.Referrals.FindByIDs, tc.SpaceID)
		return err
	case domain.OwnerTypeOrganization:
		if req.OrganizationID == nil || req.LeadID != nil || req.ReferralID != nil {
			return invalid
		}
		_, err := requireIDs(ctx, []uuid.UUID{*req.OrganizationID}, response.CodeOrganizationNotFound, s.Organizations.FindByIDs, tc.SpaceID)
		return err
	}
	return invalid
}

// notifyAssignee tells a newly assigned user about the activity. Failures
// are logged only.
func (s *activityServiceImpl) notifyAssignee(ctx context.Context, tc tenant.Context, activity *domain.Activity, previous *uuid.UUID) {
	if activity.AssignToID == nil || *activity.AssignToID == tc.UserID {
		return
	}
	if previous != nil && *previous == *activity.AssignToID {
		return
	}

	event := client.NotificationEvent{
		Type:         client.NotificationActivityAssigned,
		ActorID:      tc.UserID,
		TargetUserID: *activity.AssignToID,
		SpaceID:      tc.SpaceID,
		ResourceType: "activity",
		ResourceID:   activity.ID,
		ResourceName: activity.Title,
		Metadata: map[string]interface{}{
			"ownerType": activity.OwnerType,
		},
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if activity.DueDate != nil {
		event.Metadata["dueDate"] = activity.DueDate.UTC().Format(time.RFC3339)
	}
	if err := s.Notifications.SendNotification(ctx, event); err != nil {
		s.Logger.Warn("Failed to send assignment notification",
			zap.String("activity_id", activity.ID.String()),
			zap.Error(err),
		)
	}
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func (s *activityServiceImpl) Remove(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	return s.RemoveBulk(ctx, tc, []uuid.UUID{id})
}

func (s *activityServiceImpl) RemoveBulk(ctx context.Context, tc tenant.Context, ids []uuid.UUID) error {
	return removeAll(ctx, s.Tx, ids, response.CodeActivityNotFound, func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		return s.Activities.DeleteByIDs(ctx, tc.SpaceID, ids)
	})
}

var activityExportColumns = []export.Column{
	{Header: "Date", Width: 14},
	{Header: "Title", Width: 32},
	{Header: "Owner Type", Width: 14},
	{Header: "Type"},
	{Header: "Status"},
	{Header: "Assigned To", Width: 24},
	{Header: "Due Date", Width: 14},
	{Header: "Reminder Date", Width: 14},
	{Header: "Facility", Width: 24},
	{Header: "Notes", Width: 40},
}

// Export renders the filtered activity grid to xlsx.
func (s *activityServiceImpl) Export(ctx context.Context, tc tenant.Context, req dto.ExportRequest, f repository.ActivityFilter) (*dto.ExportResult, error) {
	items, err := s.Activities.FindAll(ctx, tc.SpaceID, req.Search, f)
	if err != nil {
		return nil, response.Wrap("Failed to load activities", err)
	}

	rows := make([][]interface{}, len(items))
	for i, a := range items {
		typeTitle := titleOf(a.Type)
		if typeTitle == "" {
			typeTitle = string(a.Kind)
		}
		assignee := ""
		if a.AssignTo != nil {
			assignee = a.AssignTo.FullName()
		}
		rows[i] = []interface{}{
			export.Date(&a.Date),
			a.Title,
			string(a.OwnerType),
			typeTitle,
			titleOf(a.Status),
			assignee,
			export.Date(a.DueDate),
			export.Date(a.ReminderDate),
			titleOf(a.Facility),
			a.Notes,
		}
	}

	return runExport(ctx, s.Exporter, tc, "activities", export.Sheet{Name: "Activities", Columns: activityExportColumns, Rows: rows}, req.Destination)
}
