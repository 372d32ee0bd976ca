package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
)

func TestOutreachService(t *testing.T) {
	e := newTestEnv(t)
	visit, err := e.references.OutreachTypes.Add(e.ctx, e.tc, dto.OutreachTypeRequest{TitleRequest: dto.TitleRequest{Title: "Visit"}})
	require.NoError(t, err)
	org, err := e.organizations.Add(e.ctx, e.tc, dto.OrganizationRequest{Name: "Riverside Clinic"})
	require.NoError(t, err)
	nurse, err := e.contacts.Add(e.ctx, e.tc, dto.ContactRequest{FirstName: "Jo", LastName: "Nurse", OrganizationID: &org.ID})
	require.NoError(t, err)
	colleague := e.newUser(t, e.tc.SpaceID, "Max")

	req := dto.OutreachRequest{
		TypeID:         visit.ID,
		OrganizationID: &org.ID,
		Date:           time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		ContactIDs:     []uuid.UUID{nurse.ID, nurse.ID},
		ParticipantIDs: []uuid.UUID{e.user.ID, colleague.ID},
	}
	outreach, err := e.outreaches.Add(e.ctx, e.tc, req)
	require.NoError(t, err)
	assert.Len(t, outreach.Contacts, 1)
	assert.Len(t, outreach.Participants, 2)
	require.NotNil(t, outreach.Type)
	assert.Equal(t, "Visit", outreach.Type.Title)

	req.ParticipantIDs = []uuid.UUID{colleague.ID}
	req.ContactIDs = nil
	edited, err := e.outreaches.Edit(e.ctx, e.tc, outreach.ID, req)
	require.NoError(t, err)
	require.Len(t, edited.Participants, 1)
	assert.Equal(t, colleague.ID, edited.Participants[0].ID)
	assert.Empty(t, edited.Contacts)

	grid, err := e.outreaches.Grid(e.ctx, e.tc, dto.GridRequest{}, repository.OutreachFilter{OrganizationID: &org.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), grid.Total)

	missing := uuid.New()
	tests := []struct {
		name   string
		mutate func(r *dto.OutreachRequest)
		code   response.Code
	}{
		{"type", func(r *dto.OutreachRequest) { r.TypeID = missing }, response.CodeOutreachTypeNotFound},
		{"organization", func(r *dto.OutreachRequest) { r.OrganizationID = &missing }, response.CodeOrganizationNotFound},
		{"contact", func(r *dto.OutreachRequest) { r.ContactIDs = []uuid.UUID{missing} }, response.CodeContactNotFound},
		{"participant", func(r *dto.OutreachRequest) { r.ParticipantIDs = []uuid.UUID{missing} }, response.CodeUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := req
			tt.mutate(&r)
			_, err := e.outreaches.Add(e.ctx, e.tc, r)
			requireCode(t, err, tt.code)
			assert.Equal(t, int64(1), e.count(t, &domain.Outreach{}, ""))
		})
	}

	requireCode(t, e.outreaches.RemoveBulk(e.ctx, e.tc, nil), response.CodeOutreachNotFound)
	require.NoError(t, e.outreaches.Remove(e.ctx, e.tc, outreach.ID))
	_, err = e.outreaches.GetByID(e.ctx, e.tc, outreach.ID)
	requireCode(t, err, response.CodeOutreachNotFound)
}

func TestWebEmailService(t *testing.T) {
	e := newTestEnv(t)
	facility, err := e.references.Facilities.Add(e.ctx, e.tc, dto.FacilityRequest{TitleRequest: dto.TitleRequest{Title: "Lakeside"}})
	require.NoError(t, err)
	junk, err := e.references.EmailReviewTypes.Add(e.ctx, e.tc, dto.EmailReviewTypeRequest{TitleRequest: dto.TitleRequest{Title: "Junk"}})
	require.NoError(t, err)

	email, err := e.webEmails.Add(e.ctx, e.tc, dto.WebEmailRequest{
		FacilityID: &facility.ID,
		Subject:    "Tour request",
		Name:       "Lena",
		Email:      "lena@example.com",
		Message:    "Can we visit on Saturday?",
		Meta:       map[string]interface{}{"page": "/contact"},
	})
	require.NoError(t, err)
	assert.False(t, email.Date.IsZero(), "date defaults to now")
	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(email.Meta, &meta))
	assert.Equal(t, "/contact", meta["page"])

	reviewed, err := e.webEmails.Edit(e.ctx, e.tc, email.ID, dto.WebEmailReviewRequest{
		FacilityID:        &facility.ID,
		EmailReviewTypeID: &junk.ID,
		Spam:              true,
	})
	require.NoError(t, err)
	assert.True(t, reviewed.Spam)
	assert.Equal(t, &junk.ID, reviewed.EmailReviewTypeID)

	flagged := true
	grid, err := e.webEmails.Grid(e.ctx, e.tc, dto.GridRequest{}, repository.WebEmailFilter{Spam: &flagged})
	require.NoError(t, err)
	assert.Equal(t, int64(1), grid.Total)

	missing := uuid.New()
	_, err = e.webEmails.Add(e.ctx, e.tc, dto.WebEmailRequest{FacilityID: &missing})
	requireCode(t, err, response.CodeFacilityNotFound)
	_, err = e.webEmails.Edit(e.ctx, e.tc, email.ID, dto.WebEmailReviewRequest{EmailReviewTypeID: &missing})
	requireCode(t, err, response.CodeEmailReviewTypeNotFound)
	_, err = e.webEmails.Edit(e.ctx, e.tc, missing, dto.WebEmailReviewRequest{})
	requireCode(t, err, response.CodeWebEmailNotFound)

	require.NoError(t, e.webEmails.RemoveBulk(e.ctx, e.tc, []uuid.UUID{email.ID}))
	assert.Zero(t, e.count(t, &domain.WebEmail{}, ""))
}
