package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seniorcare-lead-api/internal/client"
	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
)

type activityFlags struct {
	assignTo, dueDate, reminderDate, facility bool
}

func (e *testEnv) activityType(t *testing.T, flags activityFlags, defaultStatus *uuid.UUID) domain.ActivityType {
	t.Helper()
	typ, err := e.references.ActivityTypes.Add(e.ctx, e.tc, dto.ActivityTypeRequest{
		TitleRequest:    dto.TitleRequest{Title: "Type " + uuid.NewString()[:8]},
		DefaultStatusID: defaultStatus,
		AssignTo:        flags.assignTo,
		DueDate:         flags.dueDate,
		ReminderDate:    flags.reminderDate,
		Facility:        flags.facility,
		Editable:        true,
	})
	require.NoError(t, err)
	return *typ
}

func (e *testEnv) leadActivity(leadID, typeID uuid.UUID) dto.ActivityRequest {
	return dto.ActivityRequest{
		OwnerType: domain.OwnerTypeLead,
		LeadID:    &leadID,
		TypeID:    typeID,
		Title:     "Tour",
		Date:      time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC),
	}
}

// For any combination of activity type flags, the optional fields the type
// disables are nil after Add whatever the payload carried.
func TestProperty_ActivityTypeFlagsClearFields(t *testing.T) {
	e := newTestEnv(t)
	status := e.activityStatus(t, "Open")
	lead := e.addLead(t, "Flag")
	assignee := e.newUser(t, e.tc.SpaceID, "Ana")
	facility, err := e.references.Facilities.Add(e.ctx, e.tc, dto.FacilityRequest{TitleRequest: dto.TitleRequest{Title: "East"}})
	require.NoError(t, err)
	due := time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)
	remind := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	properties := gopter.NewProperties(parameters)

	properties.Property("disabled fields are cleared", prop.ForAll(
		func(assignTo, dueDate, reminderDate, withFacility bool) bool {
			typ := e.activityType(t, activityFlags{assignTo, dueDate, reminderDate, withFacility}, &status.ID)
			req := e.leadActivity(lead.ID, typ.ID)
			req.AssignToID = &assignee.ID
			req.DueDate = &due
			req.ReminderDate = &remind
			req.FacilityID = &facility.ID

			activity, err := e.activities.Add(e.ctx, e.tc, req)
			if err != nil {
				return false
			}
			return (activity.AssignToID != nil) == assignTo &&
				(activity.DueDate != nil) == dueDate &&
				(activity.ReminderDate != nil) == reminderDate &&
				(activity.FacilityID != nil) == withFacility
		},
		gen.Bool(), gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestActivityService_Add(t *testing.T) {
	e := newTestEnv(t)
	status := e.activityStatus(t, "Planned")
	typ := e.activityType(t, activityFlags{}, &status.ID)
	lead := e.addLead(t, "Ida")

	activity, err := e.activities.Add(e.ctx, e.tc, e.leadActivity(lead.ID, typ.ID))
	require.NoError(t, err)

	assert.Equal(t, domain.ActivityKindUser, activity.Kind)
	assert.Equal(t, &status.ID, activity.StatusID, "falls back to the type default status")
	require.NotNil(t, activity.Type)
	assert.Equal(t, typ.Title, activity.Type.Title)
	assert.Equal(t, int64(1), e.count(t, &domain.ChangeLog{}, "lead_id = ? AND type = ?", lead.ID, domain.ChangeLogNewActivity))

	byOwner, err := e.activities.ListByOwner(e.ctx, e.tc, domain.OwnerTypeLead, lead.ID)
	require.NoError(t, err)
	assert.Len(t, byOwner, 2, "initial contact plus the new one")
}

func TestActivityService_OwnerValidation(t *testing.T) {
	e := newTestEnv(t)
	status := e.activityStatus(t, "Planned")
	typ := e.activityType(t, activityFlags{}, &status.ID)
	lead := e.addLead(t, "Owner")
	org, err := e.organizations.Add(e.ctx, e.tc, dto.OrganizationRequest{Name: "Clinic"})
	require.NoError(t, err)
	missing := uuid.New()

	tests := []struct {
		name string
		req  func() dto.ActivityRequest
		code response.Code
	}{
		{"unknown owner type", func() dto.ActivityRequest {
			r := e.leadActivity(lead.ID, typ.ID)
			r.OwnerType = "RESIDENT"
			return r
		}, response.CodeActivityOwnerTypeInvalid},
		{"lead type without lead id", func() dto.ActivityRequest {
			r := e.leadActivity(lead.ID, typ.ID)
			r.LeadID = nil
			return r
		}, response.CodeActivityOwnerTypeInvalid},
		{"two owners", func() dto.ActivityRequest {
			r := e.leadActivity(lead.ID, typ.ID)
			r.OrganizationID = &org.ID
			return r
		}, response.CodeActivityOwnerTypeInvalid},
		{"missing lead", func() dto.ActivityRequest {
			return e.leadActivity(missing, typ.ID)
		}, response.CodeLeadNotFound},
		{"missing referral", func() dto.ActivityRequest {
			r := e.leadActivity(lead.ID, typ.ID)
			r.OwnerType, r.LeadID, r.ReferralID = domain.OwnerTypeReferral, nil, &missing
			return r
		}, response.CodeReferralNotFound},
		{"missing type", func() dto.ActivityRequest {
			return e.leadActivity(lead.ID, missing)
		}, response.CodeActivityTypeNotFound},
		{"missing status", func() dto.ActivityRequest {
			r := e.leadActivity(lead.ID, typ.ID)
			r.StatusID = &missing
			return r
		}, response.CodeActivityStatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := e.count(t, &domain.Activity{}, "")
			_, err := e.activities.Add(e.ctx, e.tc, tt.req())
			requireCode(t, err, tt.code)
			assert.Equal(t, before, e.count(t, &domain.Activity{}, ""))
		})
	}

	t.Run("organization owner", func(t *testing.T) {
		r := e.leadActivity(lead.ID, typ.ID)
		r.OwnerType, r.LeadID, r.OrganizationID = domain.OwnerTypeOrganization, nil, &org.ID
		activity, err := e.activities.Add(e.ctx, e.tc, r)
		require.NoError(t, err)
		assert.Equal(t, &org.ID, activity.OrganizationID)
	})

	t.Run("invalid owner type on list", func(t *testing.T) {
		_, err := e.activities.ListByOwner(e.ctx, e.tc, "NOPE", lead.ID)
		requireCode(t, err, response.CodeActivityOwnerTypeInvalid)
	})
}

func TestActivityService_StatusRequired(t *testing.T) {
	e := newTestEnv(t)
	typ := e.activityType(t, activityFlags{}, nil)
	lead := e.addLead(t, "Sue")

	_, err := e.activities.Add(e.ctx, e.tc, e.leadActivity(lead.ID, typ.ID))
	requireCode(t, err, response.CodeActivityStatusRequired)

	status := e.activityStatus(t, "Done")
	req := e.leadActivity(lead.ID, typ.ID)
	req.StatusID = &status.ID
	activity, err := e.activities.Add(e.ctx, e.tc, req)
	require.NoError(t, err)
	assert.Equal(t, &status.ID, activity.StatusID)
}

func TestActivityService_Notifications(t *testing.T) {
	e := newTestEnv(t)
	status := e.activityStatus(t, "Planned")
	typ := e.activityType(t, activityFlags{assignTo: true, reminderDate: true}, &status.ID)
	lead := e.addLead(t, "Notify")
	ana := e.newUser(t, e.tc.SpaceID, "Ana")
	ben := e.newUser(t, e.tc.SpaceID, "Ben")

	req := e.leadActivity(lead.ID, typ.ID)
	req.AssignToID = &e.user.ID
	activity, err := e.activities.Add(e.ctx, e.tc, req)
	require.NoError(t, err)
	assert.Empty(t, e.notifications.Sent(), "self assignment is silent")

	req.AssignToID = &ana.ID
	_, err = e.activities.Edit(e.ctx, e.tc, activity.ID, req)
	require.NoError(t, err)
	req.Notes = "same assignee"
	_, err = e.activities.Edit(e.ctx, e.tc, activity.ID, req)
	require.NoError(t, err)

	sent := e.notifications.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, client.NotificationActivityAssigned, sent[0].Type)
	assert.Equal(t, ana.ID, sent[0].TargetUserID)
	assert.Equal(t, activity.ID, sent[0].ResourceID)

	e.notifications.SendNotificationFunc = func(ctx context.Context, event client.NotificationEvent) error {
		return errors.New("notification service down")
	}
	req.AssignToID = &ben.ID
	edited, err := e.activities.Edit(e.ctx, e.tc, activity.ID, req)
	require.NoError(t, err, "notification failures never fail the edit")
	assert.Equal(t, &ben.ID, edited.AssignToID)

	otherTC, other := e.newSpace(t, "Other")
	require.NotEqual(t, otherTC.SpaceID, e.tc.SpaceID)
	req.AssignToID = &other.ID
	_, err = e.activities.Edit(e.ctx, e.tc, activity.ID, req)
	requireCode(t, err, response.CodeUserNotFound)
}

func TestActivityService_EditResetsReminder(t *testing.T) {
	e := newTestEnv(t)
	status := e.activityStatus(t, "Planned")
	typ := e.activityType(t, activityFlags{reminderDate: true}, &status.ID)
	lead := e.addLead(t, "Remind")

	remind := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	req := e.leadActivity(lead.ID, typ.ID)
	req.ReminderDate = &remind
	activity, err := e.activities.Add(e.ctx, e.tc, req)
	require.NoError(t, err)

	activityRepo := repository.NewActivityRepository(e.db)
	require.NoError(t, activityRepo.MarkReminded(e.ctx, activity.ID, remind))
	_, err = activityRepo.MarkReminderFailed(e.ctx, activity.ID, remind)
	require.NoError(t, err)

	req.Notes = "reminder untouched"
	edited, err := e.activities.Edit(e.ctx, e.tc, activity.ID, req)
	require.NoError(t, err)
	assert.NotNil(t, edited.RemindedAt)

	later := remind.Add(24 * time.Hour)
	req.ReminderDate = &later
	edited, err = e.activities.Edit(e.ctx, e.tc, activity.ID, req)
	require.NoError(t, err)
	assert.Nil(t, edited.RemindedAt)
	assert.Zero(t, edited.ReminderAttempts)
	assert.Nil(t, edited.ReminderFailedAt)
}

func TestActivityService_RemoveAndExport(t *testing.T) {
	e := newTestEnv(t)
	status := e.activityStatus(t, "Planned")
	typ := e.activityType(t, activityFlags{}, &status.ID)
	lead := e.addLead(t, "Export")
	activity, err := e.activities.Add(e.ctx, e.tc, e.leadActivity(lead.ID, typ.ID))
	require.NoError(t, err)

	result, err := e.activities.Export(e.ctx, e.tc, dto.ExportRequest{}, repository.ActivityFilter{OwnerType: domain.OwnerTypeLead, OwnerID: &lead.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)

	requireCode(t, e.activities.RemoveBulk(e.ctx, e.tc, []uuid.UUID{activity.ID, uuid.New()}), response.CodeActivityNotFound)
	require.NoError(t, e.activities.Remove(e.ctx, e.tc, activity.ID))
	_, err = e.activities.GetByID(e.ctx, e.tc, activity.ID)
	requireCode(t, err, response.CodeActivityNotFound)
}
