package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"seniorcare-lead-api/internal/domain"
)

func TestHistoryRepository_FindPreceding(t *testing.T) {
	f := newFixture(t)
	repo := NewLeadTemperatureRepository(f.db)
	ctx := context.Background()
	lead := f.lead(t, "Ada")

	cold := domain.Temperature{SpaceID: f.spaceID, Title: "Cold"}
	warm := domain.Temperature{SpaceID: f.spaceID, Title: "Warm"}
	require.NoError(t, f.db.Create(&cold).Error)
	require.NoError(t, f.db.Create(&warm).Error)

	day := func(d int) time.Time { return time.Date(2026, 4, d, 9, 0, 0, 0, time.UTC) }

	first := &domain.LeadTemperature{SpaceID: f.spaceID, LeadID: lead.ID, TemperatureID: cold.ID, Date: day(1), CreatedByID: f.user.ID}
	require.NoError(t, repo.Create(ctx, first))

	_, err := repo.FindPreceding(ctx, f.spaceID, lead.ID, first.ID, first.Date, first.CreatedAt)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound), "the entry itself never precedes")

	second := &domain.LeadTemperature{SpaceID: f.spaceID, LeadID: lead.ID, TemperatureID: warm.ID, Date: day(5), CreatedByID: f.user.ID}
	require.NoError(t, repo.Create(ctx, second))

	prev, err := repo.FindPreceding(ctx, f.spaceID, lead.ID, second.ID, second.Date, second.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, first.ID, prev.ID)
	require.NotNil(t, prev.Temperature)
	assert.Equal(t, "Cold", prev.Temperature.Title)

	// a back-dated entry sees nothing before it
	early := &domain.LeadTemperature{SpaceID: f.spaceID, LeadID: lead.ID, TemperatureID: warm.ID, Date: day(1).Add(-time.Hour), CreatedByID: f.user.ID}
	require.NoError(t, repo.Create(ctx, early))
	_, err = repo.FindPreceding(ctx, f.spaceID, lead.ID, early.ID, early.Date, early.CreatedAt)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	entries, err := repo.ListByLead(ctx, f.spaceID, lead.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, second.ID, entries[0].ID)

	_, err = repo.FindByID(ctx, uuid.New(), second.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestAssessmentRepository_SumScoreAndPrune(t *testing.T) {
	f := newFixture(t)
	forms := NewAssessmentFormRepository(f.db)
	assessments := NewAssessmentRepository(f.db)
	ctx := context.Background()

	form := &domain.AssessmentForm{SpaceID: f.spaceID, Title: "Mobility"}
	require.NoError(t, forms.Create(ctx, form))
	category := &domain.AssessmentCategory{FormID: form.ID, Title: "Walking"}
	require.NoError(t, forms.CreateCategory(ctx, category))
	keep := &domain.AssessmentCategoryRow{CategoryID: category.ID, Title: "Independent", Score: 1}
	drop := &domain.AssessmentCategoryRow{CategoryID: category.ID, Title: "Walker", Score: 4}
	require.NoError(t, forms.CreateRow(ctx, keep))
	require.NoError(t, forms.CreateRow(ctx, drop))

	assessment := &domain.Assessment{SpaceID: f.spaceID, FormID: form.ID, Date: time.Now().UTC()}
	require.NoError(t, assessments.Create(ctx, assessment))
	require.NoError(t, assessments.CreateRow(ctx, &domain.AssessmentRow{AssessmentID: assessment.ID, RowID: keep.ID, Score: keep.Score}))
	require.NoError(t, assessments.CreateRow(ctx, &domain.AssessmentRow{AssessmentID: assessment.ID, RowID: drop.ID, Score: drop.Score}))

	total, err := assessments.SumScore(ctx, assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	require.NoError(t, assessments.DeleteRows(ctx, assessment.ID))
	total, err = assessments.SumScore(ctx, assessment.ID)
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, forms.PruneRows(ctx, category.ID, []uuid.UUID{keep.ID}))
	loaded, err := forms.FindByID(ctx, f.spaceID, form.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Categories, 1)
	require.Len(t, loaded.Categories[0].Rows, 1)
	assert.Equal(t, keep.ID, loaded.Categories[0].Rows[0].ID)

	n, err := forms.DeleteByIDs(ctx, f.spaceID, []uuid.UUID{form.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Zero(t, count(t, f.db, &domain.Assessment{}, ""))
	assert.Zero(t, count(t, f.db, &domain.AssessmentCategoryRow{}, ""))
}

func TestActivityRepository_DueReminders(t *testing.T) {
	f := newFixture(t)
	repo := NewActivityRepository(f.db)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	due := &domain.Activity{SpaceID: f.spaceID, OwnerType: domain.OwnerTypeLead, LeadID: uuidPtr(uuid.New()), Kind: domain.ActivityKindUser, Date: now, AssignToID: &f.user.ID, ReminderDate: &past}
	later := &domain.Activity{SpaceID: f.spaceID, OwnerType: domain.OwnerTypeLead, LeadID: uuidPtr(uuid.New()), Kind: domain.ActivityKindUser, Date: now, AssignToID: &f.user.ID, ReminderDate: &future}
	unassigned := &domain.Activity{SpaceID: f.spaceID, OwnerType: domain.OwnerTypeLead, LeadID: uuidPtr(uuid.New()), Kind: domain.ActivityKindUser, Date: now, ReminderDate: &past}
	for _, a := range []*domain.Activity{due, later, unassigned} {
		require.NoError(t, repo.Create(ctx, a))
	}

	query := ReminderQuery{Now: now, RetryBefore: now.Add(-10 * time.Minute), MaxAttempts: 2, Limit: 10}
	found, err := repo.FindDueReminders(ctx, query)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, due.ID, found[0].ID)

	query.ExcludeIDs = []uuid.UUID{due.ID}
	found, err = repo.FindDueReminders(ctx, query)
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, repo.MarkReminded(ctx, due.ID, now))
	query.ExcludeIDs = nil
	found, err = repo.FindDueReminders(ctx, query)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestActivityRepository_FailedRemindersBackOff(t *testing.T) {
	f := newFixture(t)
	repo := NewActivityRepository(f.db)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	earlier, later := now.Add(-2*time.Hour), now.Add(-time.Hour)

	failing := &domain.Activity{SpaceID: f.spaceID, OwnerType: domain.OwnerTypeLead, LeadID: uuidPtr(uuid.New()), Kind: domain.ActivityKindUser, Date: now, AssignToID: &f.user.ID, ReminderDate: &earlier}
	fresh := &domain.Activity{SpaceID: f.spaceID, OwnerType: domain.OwnerTypeLead, LeadID: uuidPtr(uuid.New()), Kind: domain.ActivityKindUser, Date: now, AssignToID: &f.user.ID, ReminderDate: &later}
	require.NoError(t, repo.Create(ctx, failing))
	require.NoError(t, repo.Create(ctx, fresh))

	attempts, err := repo.MarkReminderFailed(ctx, failing.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)

	// still backing off
	found, err := repo.FindDueReminders(ctx, ReminderQuery{Now: now, RetryBefore: now.Add(-time.Minute), MaxAttempts: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, fresh.ID, found[0].ID)

	// retry window passed: the fresh reminder still goes first
	found, err = repo.FindDueReminders(ctx, ReminderQuery{Now: now, RetryBefore: now, MaxAttempts: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, fresh.ID, found[0].ID)

	attempts, err = repo.MarkReminderFailed(ctx, failing.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	found, err = repo.FindDueReminders(ctx, ReminderQuery{Now: now, RetryBefore: now, MaxAttempts: 2})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, fresh.ID, found[0].ID)

	_, err = repo.MarkReminderFailed(ctx, uuid.New(), now)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestActivityRepository_GridByOwner(t *testing.T) {
	f := newFixture(t)
	repo := NewActivityRepository(f.db)
	ctx := context.Background()
	lead := f.lead(t, "Ada")
	org := uuid.New()

	require.NoError(t, repo.Create(ctx, &domain.Activity{SpaceID: f.spaceID, OwnerType: domain.OwnerTypeLead, LeadID: &lead.ID, Kind: domain.ActivityKindUser, Title: "Call family", Date: time.Now().UTC()}))
	require.NoError(t, repo.Create(ctx, &domain.Activity{SpaceID: f.spaceID, OwnerType: domain.OwnerTypeOrganization, OrganizationID: &org, Kind: domain.ActivityKindUser, Title: "Drop brochures", Date: time.Now().UTC()}))

	items, total, err := repo.Grid(ctx, f.spaceID, GridQuery{}, ActivityFilter{OwnerType: domain.OwnerTypeLead, OwnerID: &lead.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Call family", items[0].Title)

	_, total, err = repo.Grid(ctx, f.spaceID, GridQuery{Search: "brochure"}, ActivityFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestOrganizationRepository_PhonesAndDelete(t *testing.T) {
	f := newFixture(t)
	orgs := NewOrganizationRepository(f.db)
	contacts := NewContactRepository(f.db)
	ctx := context.Background()

	org := &domain.Organization{SpaceID: f.spaceID, Name: "St. Luke's Hospital"}
	require.NoError(t, orgs.Create(ctx, org))
	require.NoError(t, orgs.ReplacePhones(ctx, org.ID, []domain.OrganizationPhone{
		{PhoneFields: domain.PhoneFields{Number: "111", Type: domain.PhoneTypeOffice, Primary: true}},
		{PhoneFields: domain.PhoneFields{Number: "222", Type: domain.PhoneTypeFax}},
	}))
	require.NoError(t, orgs.ReplacePhones(ctx, org.ID, []domain.OrganizationPhone{
		{PhoneFields: domain.PhoneFields{Number: "333", Type: domain.PhoneTypeWork}},
	}))

	loaded, err := orgs.FindByID(ctx, f.spaceID, org.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Phones, 1)
	assert.Equal(t, "333", loaded.Phones[0].Number)

	contact := &domain.Contact{SpaceID: f.spaceID, FirstName: "Lee", LastName: "Park", OrganizationID: &org.ID}
	require.NoError(t, contacts.Create(ctx, contact))

	n, err := orgs.DeleteByIDs(ctx, f.spaceID, []uuid.UUID{org.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Zero(t, count(t, f.db, &domain.OrganizationPhone{}, ""))

	kept, err := contacts.FindByID(ctx, f.spaceID, contact.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.OrganizationID)
}
