package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seniorcare-lead-api/internal/database"
	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/export"
	"seniorcare-lead-api/internal/metrics"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
)

func TestLeadService_Add(t *testing.T) {
	e := newTestEnv(t)

	lead := e.addLead(t, "  Martha ")

	assert.Equal(t, "Martha", lead.FirstName)
	assert.Equal(t, domain.LeadStateOpen, lead.State)
	require.NotNil(t, lead.Owner)
	assert.Equal(t, e.user.ID, lead.Owner.ID)

	var activities []domain.Activity
	require.NoError(t, e.db.Where("lead_id = ?", lead.ID).Find(&activities).Error)
	require.Len(t, activities, 1)
	assert.Equal(t, domain.ActivityKindInitialContact, activities[0].Kind)
	assert.Equal(t, domain.OwnerTypeLead, activities[0].OwnerType)
	assert.True(t, activities[0].Date.Equal(lead.InitialContactDate))

	assert.Equal(t, int64(1), e.count(t, &domain.ChangeLog{}, "lead_id = ? AND type = ?", lead.ID, domain.ChangeLogNewLead))
}

func TestLeadService_Add_ReasonDoesNotCloseIntake(t *testing.T) {
	e := newTestEnv(t)
	closed := e.stateReason(t, "Moved away", domain.LeadStateClosed)

	req := e.leadRequest("Walter")
	req.StateChangeReasonID = &closed.ID
	lead, err := e.leads.Add(e.ctx, e.tc, req)

	require.NoError(t, err)
	assert.Equal(t, domain.LeadStateOpen, lead.State)
	assert.Equal(t, &closed.ID, lead.StateChangeReasonID)
}

func TestLeadService_Add_RequiresPhoneOrEmail(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		email string
		ok    bool
	}{
		{"both empty", "", "", false},
		{"blank phone only", "   ", "", false},
		{"phone only", "555-0100", "", true},
		{"email only", "", "rp@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			req := e.leadRequest("Ada")
			req.ResponsiblePerson.Phone = tt.phone
			req.ResponsiblePerson.Email = tt.email

			_, err := e.leads.Add(e.ctx, e.tc, req)

			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, int64(1), e.count(t, &domain.Lead{}, ""))
				return
			}
			requireCode(t, err, response.CodePhoneOrEmailRequired)
			assert.Zero(t, e.count(t, &domain.Lead{}, ""))
			assert.Zero(t, e.count(t, &domain.Activity{}, ""))
			assert.Zero(t, e.count(t, &domain.ChangeLog{}, ""))
		})
	}
}

func TestLeadService_Edit_RequiresPhoneOrEmail(t *testing.T) {
	e := newTestEnv(t)
	lead := e.addLead(t, "Ada")

	req := e.leadRequest("Changed")
	req.ResponsiblePerson.Email = ""
	_, err := e.leads.Edit(e.ctx, e.tc, lead.ID, req)

	requireCode(t, err, response.CodePhoneOrEmailRequired)
	stored, err := e.leads.GetByID(e.ctx, e.tc, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.FirstName)
}

func TestLeadService_Add_UnknownOwner(t *testing.T) {
	e := newTestEnv(t)
	otherTC, otherUser := e.newSpace(t, "Elsewhere")
	require.NotEqual(t, e.tc.SpaceID, otherTC.SpaceID)

	for name, owner := range map[string]uuid.UUID{
		"missing":     uuid.New(),
		"other space": otherUser.ID,
	} {
		t.Run(name, func(t *testing.T) {
			req := e.leadRequest("Ghost")
			req.OwnerID = owner

			_, err := e.leads.Add(e.ctx, e.tc, req)

			requireCode(t, err, response.CodeUserNotFound)
			var appErr *response.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, 613, response.Lookup(appErr.Code).Number)
			assert.Zero(t, e.count(t, &domain.Lead{}, ""))
		})
	}
}

func TestLeadService_Add_UnknownReferences(t *testing.T) {
	e := newTestEnv(t)
	missing := uuid.New()

	tests := []struct {
		name   string
		mutate func(req *dto.LeadRequest)
		code   response.Code
	}{
		{"reason", func(r *dto.LeadRequest) { r.StateChangeReasonID = &missing }, response.CodeStateChangeReasonNotFound},
		{"care type", func(r *dto.LeadRequest) { r.CareTypeID = &missing }, response.CodeCareTypeNotFound},
		{"payment source", func(r *dto.LeadRequest) { r.PaymentSourceID = &missing }, response.CodePaymentSourceNotFound},
		{"residence", func(r *dto.LeadRequest) { r.CurrentResidenceID = &missing }, response.CodeCurrentResidenceNotFound},
		{"primary facility", func(r *dto.LeadRequest) { r.PrimaryFacilityID = &missing }, response.CodeFacilityNotFound},
		{"facilities", func(r *dto.LeadRequest) { r.FacilityIDs = []uuid.UUID{missing} }, response.CodeFacilityNotFound},
		{"hobbies", func(r *dto.LeadRequest) { r.HobbyIDs = []uuid.UUID{missing} }, response.CodeHobbyNotFound},
		{"qualifications", func(r *dto.LeadRequest) { r.QualificationIDs = []uuid.UUID{missing} }, response.CodeQualificationNotFound},
		{"funnel stage", func(r *dto.LeadRequest) { r.FunnelStageID = &missing }, response.CodeFunnelStageNotFound},
		{"temperature", func(r *dto.LeadRequest) { r.TemperatureID = &missing }, response.CodeTemperatureNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := e.leadRequest("Nobody")
			tt.mutate(&req)

			_, err := e.leads.Add(e.ctx, e.tc, req)

			requireCode(t, err, tt.code)
			assert.Zero(t, e.count(t, &domain.Lead{}, ""))
			assert.Zero(t, e.count(t, &domain.Activity{}, ""))
		})
	}
}

func TestLeadService_Add_IntakeHistory(t *testing.T) {
	e := newTestEnv(t)
	stage := e.funnelStage(t, "Inquiry", 1)
	warm := e.temperature(t, "Warm", 50)

	req := e.leadRequest("Irene")
	req.FunnelStageID = &stage.ID
	req.TemperatureID = &warm.ID
	lead, err := e.leads.Add(e.ctx, e.tc, req)
	require.NoError(t, err)

	var stages []domain.LeadFunnelStage
	require.NoError(t, e.db.Where("lead_id = ?", lead.ID).Find(&stages).Error)
	require.Len(t, stages, 1)
	assert.Equal(t, stage.ID, stages[0].StageID)
	assert.True(t, stages[0].Date.Equal(req.InitialContactDate))
	assert.Equal(t, e.user.ID, stages[0].CreatedByID)

	assert.Equal(t, int64(1), e.count(t, &domain.LeadTemperature{}, "lead_id = ? AND temperature_id = ?", lead.ID, warm.ID))
	// the intake rows are not transitions
	assert.Equal(t, int64(1), e.count(t, &domain.Activity{}, "lead_id = ?", lead.ID))
}

func TestLeadService_Add_Associations(t *testing.T) {
	e := newTestEnv(t)
	f1, err := e.references.Facilities.Add(e.ctx, e.tc, dto.FacilityRequest{TitleRequest: dto.TitleRequest{Title: "North"}})
	require.NoError(t, err)
	f2, err := e.references.Facilities.Add(e.ctx, e.tc, dto.FacilityRequest{TitleRequest: dto.TitleRequest{Title: "South"}})
	require.NoError(t, err)
	hobby, err := e.references.Hobbies.Add(e.ctx, e.tc, dto.HobbyRequest{TitleRequest: dto.TitleRequest{Title: "Chess"}})
	require.NoError(t, err)

	req := e.leadRequest("Hal")
	req.PrimaryFacilityID = &f1.ID
	req.FacilityIDs = []uuid.UUID{f1.ID, f2.ID, f1.ID}
	req.HobbyIDs = []uuid.UUID{hobby.ID}
	lead, err := e.leads.Add(e.ctx, e.tc, req)
	require.NoError(t, err)

	assert.Len(t, lead.Facilities, 2)
	assert.Len(t, lead.Hobbies, 1)
	require.NotNil(t, lead.PrimaryFacility)
	assert.Equal(t, "North", lead.PrimaryFacility.Title)

	req.FacilityIDs = []uuid.UUID{f2.ID}
	req.HobbyIDs = nil
	edited, err := e.leads.Edit(e.ctx, e.tc, lead.ID, req)
	require.NoError(t, err)
	require.Len(t, edited.Facilities, 1)
	assert.Equal(t, f2.ID, edited.Facilities[0].ID)
	assert.Empty(t, edited.Hobbies)
}

func TestLeadService_Edit_StateTransitions(t *testing.T) {
	tests := []struct {
		name            string
		start           domain.LeadState
		target          domain.LeadState
		clearReason     bool
		wantKind        domain.ActivityKind
		wantTransitions int64
	}{
		{"open to closed", domain.LeadStateOpen, domain.LeadStateClosed, false, domain.ActivityKindStateChange, 1},
		{"closed to open by reason", domain.LeadStateClosed, domain.LeadStateOpen, false, domain.ActivityKindInitialContact, 1},
		{"closed to open by clearing reason", domain.LeadStateClosed, domain.LeadStateOpen, true, domain.ActivityKindInitialContact, 1},
		{"open stays open", domain.LeadStateOpen, domain.LeadStateOpen, false, "", 0},
		{"closed stays closed", domain.LeadStateClosed, domain.LeadStateClosed, false, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			closeReason := e.stateReason(t, "Passed away", domain.LeadStateClosed)
			openReason := e.stateReason(t, "Called back", domain.LeadStateOpen)

			lead := e.addLead(t, "Rose")
			if tt.start == domain.LeadStateClosed {
				req := e.leadRequest("Rose")
				req.StateChangeReasonID = &closeReason.ID
				_, err := e.leads.Edit(e.ctx, e.tc, lead.ID, req)
				require.NoError(t, err)
			}
			activitiesBefore := e.count(t, &domain.Activity{}, "lead_id = ?", lead.ID)
			logsBefore := e.count(t, &domain.ChangeLog{}, "lead_id = ? AND type = ?", lead.ID, domain.ChangeLogLeadUpdatedState)

			req := e.leadRequest("Rose")
			switch {
			case tt.clearReason:
				req.StateChangeReasonID = nil
			case tt.target == domain.LeadStateClosed:
				req.StateChangeReasonID = &closeReason.ID
			default:
				req.StateChangeReasonID = &openReason.ID
			}
			effective := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
			req.StateEffectiveDate = &effective

			edited, err := e.leads.Edit(e.ctx, e.tc, lead.ID, req)
			require.NoError(t, err)
			assert.Equal(t, tt.target, edited.State)

			activitiesAfter := e.count(t, &domain.Activity{}, "lead_id = ?", lead.ID)
			require.Equal(t, tt.wantTransitions, activitiesAfter-activitiesBefore)
			if tt.wantTransitions == 1 {
				var latest domain.Activity
				require.NoError(t, e.db.Where("lead_id = ?", lead.ID).Order("created_at DESC").First(&latest).Error)
				assert.Equal(t, tt.wantKind, latest.Kind)
				assert.True(t, latest.Date.Equal(effective))
			}
			logsAfter := e.count(t, &domain.ChangeLog{}, "lead_id = ? AND type = ?", lead.ID, domain.ChangeLogLeadUpdatedState)
			assert.Equal(t, tt.wantTransitions, logsAfter-logsBefore)
		})
	}
}

func TestLeadService_Edit_ClosedTitleCarriesReason(t *testing.T) {
	e := newTestEnv(t)
	reason := e.stateReason(t, "Chose another community", domain.LeadStateClosed)
	lead := e.addLead(t, "Nora")

	req := e.leadRequest("Nora")
	req.StateChangeReasonID = &reason.ID
	_, err := e.leads.Edit(e.ctx, e.tc, lead.ID, req)
	require.NoError(t, err)

	var activity domain.Activity
	require.NoError(t, e.db.Where("lead_id = ? AND kind = ?", lead.ID, domain.ActivityKindStateChange).First(&activity).Error)
	assert.Equal(t, "Lead closed: Chose another community", activity.Title)
}

func TestLeadService_Edit_NotFound(t *testing.T) {
	e := newTestEnv(t)
	otherTC, _ := e.newSpace(t, "Other")
	foreign, err := e.leads.Add(e.ctx, otherTC, func() dto.LeadRequest {
		req := e.leadRequest("Foreign")
		owner := e.newUser(t, otherTC.SpaceID, "Olga")
		req.OwnerID = owner.ID
		return req
	}())
	require.NoError(t, err)

	_, err = e.leads.Edit(e.ctx, e.tc, foreign.ID, e.leadRequest("Hijack"))
	requireCode(t, err, response.CodeLeadNotFound)

	_, err = e.leads.GetByID(e.ctx, e.tc, foreign.ID)
	requireCode(t, err, response.CodeLeadNotFound)
}

func TestLeadService_Referral(t *testing.T) {
	e := newTestEnv(t)
	selfReferral := e.referrerType(t, "Self", false, false)
	agency := e.referrerType(t, "Agency", true, true)

	org, err := e.organizations.Add(e.ctx, e.tc, dto.OrganizationRequest{Name: "Golden Years Agency"})
	require.NoError(t, err)
	rep, err := e.contacts.Add(e.ctx, e.tc, dto.ContactRequest{FirstName: "Paul", LastName: "Agent", OrganizationID: &org.ID})
	require.NoError(t, err)

	t.Run("organization required", func(t *testing.T) {
		req := e.leadRequest("Ref")
		req.Referral = dto.Some(dto.ReferralRequest{TypeID: agency.ID, RepresentativeID: &rep.ID})
		_, err := e.leads.Add(e.ctx, e.tc, req)
		requireCode(t, err, response.CodeReferralOrganizationRequired)
		assert.Zero(t, e.count(t, &domain.Lead{}, ""))
	})

	t.Run("representative required", func(t *testing.T) {
		req := e.leadRequest("Ref")
		req.Referral = dto.Some(dto.ReferralRequest{TypeID: agency.ID, OrganizationID: &org.ID})
		_, err := e.leads.Add(e.ctx, e.tc, req)
		requireCode(t, err, response.CodeReferralRepresentativeRequired)
		assert.Zero(t, e.count(t, &domain.Lead{}, ""))
	})

	t.Run("unknown type", func(t *testing.T) {
		req := e.leadRequest("Ref")
		req.Referral = dto.Some(dto.ReferralRequest{TypeID: uuid.New()})
		_, err := e.leads.Add(e.ctx, e.tc, req)
		requireCode(t, err, response.CodeReferrerTypeNotFound)
	})

	t.Run("saved then detached", func(t *testing.T) {
		req := e.leadRequest("Ref")
		req.Referral = dto.Some(dto.ReferralRequest{
			TypeID:           agency.ID,
			OrganizationID:   &org.ID,
			RepresentativeID: &rep.ID,
			Phones:           []dto.PhoneRequest{{Number: "555-0111", Type: domain.PhoneTypeWork, Primary: true}},
		})
		lead, err := e.leads.Add(e.ctx, e.tc, req)
		require.NoError(t, err)
		require.NotNil(t, lead.Referral)
		assert.Equal(t, &org.ID, lead.Referral.OrganizationID)
		assert.Equal(t, int64(1), e.count(t, &domain.ReferralPhone{}, "referral_id = ?", lead.Referral.ID))

		// an edit that leaves the referral out keeps it
		req.Referral = dto.Optional[dto.ReferralRequest]{}
		req.Notes = "called back"
		edited, err := e.leads.Edit(e.ctx, e.tc, lead.ID, req)
		require.NoError(t, err)
		require.NotNil(t, edited.Referral)
		assert.Equal(t, lead.Referral.ID, edited.Referral.ID)
		assert.Equal(t, int64(1), e.count(t, &domain.ReferralPhone{}, "referral_id = ?", lead.Referral.ID))

		req.Referral = dto.Null[dto.ReferralRequest]()
		edited, err = e.leads.Edit(e.ctx, e.tc, lead.ID, req)
		require.NoError(t, err)
		assert.Nil(t, edited.Referral)
		assert.Zero(t, e.count(t, &domain.Referral{}, "lead_id = ?", lead.ID))
	})

	t.Run("fields the type does not need are dropped", func(t *testing.T) {
		req := e.leadRequest("Self")
		req.Referral = dto.Some(dto.ReferralRequest{
			TypeID:           selfReferral.ID,
			OrganizationID:   &org.ID,
			RepresentativeID: &rep.ID,
			Phones:           []dto.PhoneRequest{{Number: "555-0199", Type: domain.PhoneTypeHome}},
		})
		lead, err := e.leads.Add(e.ctx, e.tc, req)
		require.NoError(t, err)
		require.NotNil(t, lead.Referral)
		assert.Nil(t, lead.Referral.OrganizationID)
		assert.Nil(t, lead.Referral.RepresentativeID)
		assert.Zero(t, e.count(t, &domain.ReferralPhone{}, "referral_id = ?", lead.Referral.ID))
	})
}

func TestLeadService_Add_RollsBackWhenChangeLogFails(t *testing.T) {
	e := newTestEnv(t)
	log := zap.NewNop()
	failing := &MockChangeLogRepository{
		CreateFunc: func(ctx context.Context, entry *domain.ChangeLog) error {
			return errors.New("disk full")
		},
	}
	svc := NewLeadService(LeadServiceDeps{
		Leads:        repository.NewLeadRepository(e.db),
		Users:        repository.NewUserRepository(e.db),
		References:   e.refs,
		Referrals:    e.referrals,
		FunnelStages: repository.NewLeadFunnelStageRepository(e.db),
		Temperatures: repository.NewLeadTemperatureRepository(e.db),
		Activities:   repository.NewActivityRepository(e.db),
		ChangeLogs:   failing,
		Related:      repository.NewRelatedRepository(e.db),
		Exporter:     export.NewGridExporter(nil, nil, log),
		Tx:           database.NewTxManager(e.db),
		Logger:       log,
	})

	_, err := svc.Add(e.ctx, e.tc, e.leadRequest("Lost"))

	require.Error(t, err)
	assert.True(t, response.HasCode(err, response.CodeInternal))
	assert.Zero(t, e.count(t, &domain.Lead{}, ""))
	assert.Zero(t, e.count(t, &domain.Activity{}, ""))
}

func TestLeadService_Add_CountsActivitiesAfterCommit(t *testing.T) {
	e := newTestEnv(t)
	log := zap.NewNop()
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), log)
	svc := NewLeadService(LeadServiceDeps{
		Leads:        repository.NewLeadRepository(e.db),
		Users:        repository.NewUserRepository(e.db),
		References:   e.refs,
		Referrals:    e.referrals,
		FunnelStages: repository.NewLeadFunnelStageRepository(e.db),
		Temperatures: repository.NewLeadTemperatureRepository(e.db),
		Activities:   repository.NewActivityRepository(e.db),
		ChangeLogs:   repository.NewChangeLogRepository(e.db),
		Related:      repository.NewRelatedRepository(e.db),
		Exporter:     export.NewGridExporter(nil, nil, log),
		Tx:           database.NewTxManager(e.db),
		Metrics:      m,
		Logger:       log,
	})
	initialContact := m.ActivityCreatedTotal.WithLabelValues(string(domain.ActivityKindInitialContact))

	// the unknown temperature fails after the initial contact activity was written
	req := e.leadRequest("Iris")
	unknown := uuid.New()
	req.TemperatureID = &unknown
	_, err := svc.Add(e.ctx, e.tc, req)

	requireCode(t, err, response.CodeTemperatureNotFound)
	assert.Zero(t, e.count(t, &domain.Lead{}, ""))
	assert.Zero(t, e.count(t, &domain.Activity{}, ""))
	assert.Zero(t, testutil.ToFloat64(initialContact))

	lead, err := svc.Add(e.ctx, e.tc, e.leadRequest("Iris"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(initialContact))

	closing := e.stateReason(t, "Moved in elsewhere", domain.LeadStateClosed)
	edit := e.leadRequest("Iris")
	edit.StateChangeReasonID = &closing.ID
	_, err = svc.Edit(e.ctx, e.tc, lead.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActivityCreatedTotal.WithLabelValues(string(domain.ActivityKindStateChange))))
}

func TestLeadService_RemoveBulk(t *testing.T) {
	e := newTestEnv(t)
	warm := e.temperature(t, "Warm", 50)
	agency := e.referrerType(t, "Self", false, false)

	req := e.leadRequest("Gone")
	req.TemperatureID = &warm.ID
	req.Referral = dto.Some(dto.ReferralRequest{TypeID: agency.ID})
	a, err := e.leads.Add(e.ctx, e.tc, req)
	require.NoError(t, err)
	b := e.addLead(t, "Stays")

	t.Run("empty ids", func(t *testing.T) {
		requireCode(t, e.leads.RemoveBulk(e.ctx, e.tc, nil), response.CodeLeadNotFound)
	})

	t.Run("one missing id rolls back", func(t *testing.T) {
		err := e.leads.RemoveBulk(e.ctx, e.tc, []uuid.UUID{a.ID, uuid.New()})
		requireCode(t, err, response.CodeLeadNotFound)
		assert.Equal(t, int64(2), e.count(t, &domain.Lead{}, ""))
		assert.Equal(t, int64(1), e.count(t, &domain.LeadTemperature{}, "lead_id = ?", a.ID))
	})

	t.Run("related info", func(t *testing.T) {
		infos, err := e.leads.GetRelatedInfo(e.ctx, e.tc, []uuid.UUID{a.ID})
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, int64(1), infos[0].Related["activities.lead_id"])
		assert.Equal(t, int64(1), infos[0].Related["lead_temperatures.lead_id"])
		assert.Equal(t, int64(1), infos[0].Related["referrals.lead_id"])
		assert.Positive(t, infos[0].Total)
	})

	t.Run("cascade", func(t *testing.T) {
		require.NoError(t, e.leads.Remove(e.ctx, e.tc, a.ID))
		assert.Zero(t, e.count(t, &domain.Lead{}, "id = ?", a.ID))
		assert.Zero(t, e.count(t, &domain.Activity{}, "lead_id = ?", a.ID))
		assert.Zero(t, e.count(t, &domain.LeadTemperature{}, "lead_id = ?", a.ID))
		assert.Zero(t, e.count(t, &domain.Referral{}, "lead_id = ?", a.ID))
		assert.Equal(t, int64(1), e.count(t, &domain.Lead{}, "id = ?", b.ID))
	})
}

func TestLeadService_Spam(t *testing.T) {
	e := newTestEnv(t)
	spam := e.addLead(t, "Bot")
	genuine := e.addLead(t, "Real")

	requireCode(t, e.leads.Spam(e.ctx, e.tc, dto.SpamRequest{IDs: []uuid.UUID{spam.ID, uuid.New()}, Spam: true}), response.CodeLeadNotFound)
	require.NoError(t, e.leads.Spam(e.ctx, e.tc, dto.SpamRequest{IDs: []uuid.UUID{spam.ID}, Spam: true}))

	grid, err := e.leads.Grid(e.ctx, e.tc, dto.GridRequest{}, repository.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, grid.Items, 1)
	assert.Equal(t, genuine.ID, grid.Items[0].ID)

	flagged := true
	grid, err = e.leads.Grid(e.ctx, e.tc, dto.GridRequest{}, repository.LeadFilter{Spam: &flagged})
	require.NoError(t, err)
	require.Len(t, grid.Items, 1)
	assert.Equal(t, spam.ID, grid.Items[0].ID)
}

func TestLeadService_Export(t *testing.T) {
	e := newTestEnv(t)
	e.addLead(t, "Alice")
	e.addLead(t, "Bob")

	result, err := e.leads.Export(e.ctx, e.tc, dto.ExportRequest{}, repository.LeadFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, export.ContentTypeXLSX, result.ContentType)
	assert.NotEmpty(t, result.Body)

	_, err = e.leads.Export(e.ctx, e.tc, dto.ExportRequest{Destination: export.DestinationS3}, repository.LeadFilter{})
	requireCode(t, err, response.CodeExportUnavailable)
}
