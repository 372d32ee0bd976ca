package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"seniorcare-lead-api/internal/database"
	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/export"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// testEnv wires every service on one sqlite database the same way
// cmd/api does.
type testEnv struct {
	db   *gorm.DB
	ctx  context.Context
	tc   tenant.Context
	user domain.User

	refs          repository.ReferenceRepositories
	notifications *MockNotificationClient

	references    ReferenceServices
	organizations OrganizationService
	contacts      ContactService
	referrals     ReferralService
	leads         LeadService
	activities    ActivityService
	temperatures  LeadTemperatureService
	funnelStages  LeadFunnelStageService
	forms         AssessmentFormService
	assessments   AssessmentService
	outreaches    OutreachService
	webEmails     WebEmailService
	changeLogs    ChangeLogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	log := zap.NewNop()
	tx := database.NewTxManager(db)

	refs := repository.NewReferenceRepositories(db)
	related := repository.NewRelatedRepository(db)
	users := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	contactRepo := repository.NewContactRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	changeLogRepo := repository.NewChangeLogRepository(db)
	funnelRepo := repository.NewLeadFunnelStageRepository(db)
	temperatureRepo := repository.NewLeadTemperatureRepository(db)
	formRepo := repository.NewAssessmentFormRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	exporter := export.NewGridExporter(nil, nil, log)
	notifications := &MockNotificationClient{}

	e := &testEnv{db: db, ctx: context.Background(), refs: refs, notifications: notifications}
	e.tc, e.user = e.newSpace(t, "Maple Grove")

	e.references = NewReferenceServices(refs, related, tx, log)
	e.organizations = NewOrganizationService(orgRepo, refs.ReferrerTypes, related, tx, log)
	e.contacts = NewContactService(contactRepo, orgRepo, related, tx, log)
	e.referrals = NewReferralService(referralRepo, refs.ReferrerTypes, orgRepo, contactRepo, related, tx, log)
	e.leads = NewLeadService(LeadServiceDeps{
		Leads:        leadRepo,
		Users:        users,
		References:   refs,
		Referrals:    e.referrals,
		FunnelStages: funnelRepo,
		Temperatures: temperatureRepo,
		Activities:   activityRepo,
		ChangeLogs:   changeLogRepo,
		Related:      related,
		Exporter:     exporter,
		Tx:           tx,
		Logger:       log,
	})
	e.activities = NewActivityService(ActivityServiceDeps{
		Activities:    activityRepo,
		Leads:         leadRepo,
		Referrals:     referralRepo,
		Organizations: orgRepo,
		Users:         users,
		References:    refs,
		ChangeLogs:    changeLogRepo,
		Notifications: notifications,
		Exporter:      exporter,
		Tx:            tx,
		Logger:        log,
	})
	historyDeps := LeadHistoryDeps{
		Leads:        leadRepo,
		References:   refs,
		FunnelStages: funnelRepo,
		Temperatures: temperatureRepo,
		Activities:   activityRepo,
		ChangeLogs:   changeLogRepo,
		Tx:           tx,
		Logger:       log,
	}
	e.temperatures = NewLeadTemperatureService(historyDeps)
	e.funnelStages = NewLeadFunnelStageService(historyDeps)
	e.forms = NewAssessmentFormService(formRepo, related, tx, log)
	e.assessments = NewAssessmentService(AssessmentServiceDeps{
		Assessments: assessmentRepo,
		Forms:       formRepo,
		Leads:       leadRepo,
		Users:       users,
		Tx:          tx,
		Logger:      log,
	})
	e.outreaches = NewOutreachService(repository.NewOutreachRepository(db), refs.OutreachTypes, orgRepo, contactRepo, users, tx, log)
	e.webEmails = NewWebEmailService(repository.NewWebEmailRepository(db), refs.Facilities, refs.EmailReviewTypes, tx, log)
	e.changeLogs = NewChangeLogService(changeLogRepo)
	return e
}

// newSpace creates a space with one enabled user and returns its tenant context.
func (e *testEnv) newSpace(t *testing.T, name string) (tenant.Context, domain.User) {
	t.Helper()
	space := domain.Space{Name: name + " " + uuid.NewString()[:8]}
	require.NoError(t, e.db.Create(&space).Error)
	user := e.newUser(t, space.ID, "Dana")
	return tenant.New(space.ID, user.ID), user
}

func (e *testEnv) newUser(t *testing.T, spaceID uuid.UUID, first string) domain.User {
	t.Helper()
	user := domain.User{SpaceID: spaceID, FirstName: first, LastName: "Reyes", Email: uuid.NewString() + "@example.com", Enabled: true}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func (e *testEnv) count(t *testing.T, model interface{}, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func (e *testEnv) stateReason(t *testing.T, title string, state domain.LeadState) domain.StateChangeReason {
	t.Helper()
	reason, err := e.references.StateChangeReasons.Add(e.ctx, e.tc, dto.StateChangeReasonRequest{
		TitleRequest: dto.TitleRequest{Title: title},
		State:        state,
	})
	require.NoError(t, err)
	return *reason
}

func (e *testEnv) referrerType(t *testing.T, title string, orgRequired, repRequired bool) domain.ReferrerType {
	t.Helper()
	rt, err := e.references.ReferrerTypes.Add(e.ctx, e.tc, dto.ReferrerTypeRequest{
		TitleRequest:           dto.TitleRequest{Title: title},
		OrganizationRequired:   orgRequired,
		RepresentativeRequired: repRequired,
	})
	require.NoError(t, err)
	return *rt
}

func (e *testEnv) activityStatus(t *testing.T, title string) domain.ActivityStatus {
	t.Helper()
	status, err := e.references.ActivityStatuses.Add(e.ctx, e.tc, dto.ActivityStatusRequest{TitleRequest: dto.TitleRequest{Title: title}})
	require.NoError(t, err)
	return *status
}

func (e *testEnv) temperature(t *testing.T, title string, value int) domain.Temperature {
	t.Helper()
	temp, err := e.references.Temperatures.Add(e.ctx, e.tc, dto.TemperatureRequest{TitleRequest: dto.TitleRequest{Title: title}, Value: value})
	require.NoError(t, err)
	return *temp
}

func (e *testEnv) funnelStage(t *testing.T, title string, seq int) domain.FunnelStage {
	t.Helper()
	stage, err := e.references.FunnelStages.Add(e.ctx, e.tc, dto.FunnelStageRequest{TitleRequest: dto.TitleRequest{Title: title}, Seq: seq, Open: true})
	require.NoError(t, err)
	return *stage
}

func (e *testEnv) leadRequest(first string) dto.LeadRequest {
	return dto.LeadRequest{
		FirstName:          first,
		LastName:           "Walker",
		OwnerID:            e.user.ID,
		ResponsiblePerson:  dto.ResponsiblePersonRequest{FirstName: "Sam", LastName: "Walker", Email: "sam@example.com"},
		InitialContactDate: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (e *testEnv) addLead(t *testing.T, first string) *domain.Lead {
	t.Helper()
	lead, err := e.leads.Add(e.ctx, e.tc, e.leadRequest(first))
	require.NoError(t, err)
	return lead
}

func requireCode(t *testing.T, err error, code response.Code) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, response.HasCode(err, code), "want %s, got %v", code, err)
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

func timePtr(t time.Time) *time.Time {
	return &t
}
