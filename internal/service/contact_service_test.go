package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/response"
)

func phoneList(primaries []bool) []dto.PhoneRequest {
	phones := make([]dto.PhoneRequest, len(primaries))
	for i, primary := range primaries {
		phones[i] = dto.PhoneRequest{Number: fmt.Sprintf("555-01%02d", i), Type: domain.PhoneTypeMobile, Primary: primary}
	}
	return phones
}

// For any phone list, a save with more than one primary entry fails with
// PHONE_SINGLE_PRIMARY and no phone row is written.
func TestProperty_SinglePrimaryPhone(t *testing.T) {
	e := newTestEnv(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("at most one primary phone is accepted", prop.ForAll(
		func(primaries []bool) bool {
			before := e.count(t, &domain.ContactPhone{}, "")
			_, err := e.contacts.Add(e.ctx, e.tc, dto.ContactRequest{
				FirstName: "Pat",
				LastName:  "Doe",
				Phones:    phoneList(primaries),
			})
			written := e.count(t, &domain.ContactPhone{}, "") - before

			if dto.PrimaryCount(phoneList(primaries)) > 1 {
				return response.HasCode(err, response.CodePhoneSinglePrimary) && written == 0
			}
			return err == nil && written == int64(len(primaries))
		},
		gen.SliceOfN(4, gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestContactService_ReplacesPhones(t *testing.T) {
	e := newTestEnv(t)
	contact, err := e.contacts.Add(e.ctx, e.tc, dto.ContactRequest{
		FirstName: "Lou",
		LastName:  "Grant",
		Emails:    []string{" Lou@Example.com ", "lou@example.com"},
		Phones:    phoneList([]bool{true, false}),
	})
	require.NoError(t, err)
	assert.Len(t, contact.Phones, 2)
	assert.Equal(t, []string{"lou@example.com"}, []string(contact.Emails))

	edited, err := e.contacts.Edit(e.ctx, e.tc, contact.ID, dto.ContactRequest{
		FirstName: "Lou",
		LastName:  "Grant",
		Phones:    []dto.PhoneRequest{{Number: "555-0999", Type: domain.PhoneTypeWork, Primary: true}},
	})
	require.NoError(t, err)
	require.Len(t, edited.Phones, 1)
	assert.Equal(t, "555-0999", edited.Phones[0].Number)
	assert.Equal(t, int64(1), e.count(t, &domain.ContactPhone{}, "contact_id = ?", contact.ID))

	_, err = e.contacts.Edit(e.ctx, e.tc, contact.ID, dto.ContactRequest{
		FirstName: "Lou",
		LastName:  "Grant",
		Phones:    phoneList([]bool{true, true}),
	})
	requireCode(t, err, response.CodePhoneSinglePrimary)
	assert.Equal(t, int64(1), e.count(t, &domain.ContactPhone{}, "contact_id = ?", contact.ID))
}

func TestContactService_UnknownOrganization(t *testing.T) {
	e := newTestEnv(t)
	missing := uuid.New()

	_, err := e.contacts.Add(e.ctx, e.tc, dto.ContactRequest{FirstName: "No", LastName: "Org", OrganizationID: &missing})

	requireCode(t, err, response.CodeOrganizationNotFound)
	assert.Zero(t, e.count(t, &domain.Contact{}, ""))
}

func TestOrganizationService_RemoveDetachesContacts(t *testing.T) {
	e := newTestEnv(t)
	org, err := e.organizations.Add(e.ctx, e.tc, dto.OrganizationRequest{
		Name:   "Sunrise Hospital",
		Phones: phoneList([]bool{true}),
	})
	require.NoError(t, err)
	contact, err := e.contacts.Add(e.ctx, e.tc, dto.ContactRequest{FirstName: "Kim", LastName: "Nurse", OrganizationID: &org.ID})
	require.NoError(t, err)

	infos, err := e.organizations.GetRelatedInfo(e.ctx, e.tc, []uuid.UUID{org.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), infos[0].Related["contacts.organization_id"])

	require.NoError(t, e.organizations.Remove(e.ctx, e.tc, org.ID))

	stored, err := e.contacts.GetByID(e.ctx, e.tc, contact.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.OrganizationID)
	assert.Zero(t, e.count(t, &domain.OrganizationPhone{}, ""))
}

func TestOrganizationService_RemoveBulk_NotFound(t *testing.T) {
	e := newTestEnv(t)
	org, err := e.organizations.Add(e.ctx, e.tc, dto.OrganizationRequest{Name: "Keep"})
	require.NoError(t, err)

	requireCode(t, e.organizations.RemoveBulk(e.ctx, e.tc, []uuid.UUID{}), response.CodeOrganizationNotFound)
	requireCode(t, e.organizations.RemoveBulk(e.ctx, e.tc, []uuid.UUID{org.ID, uuid.New()}), response.CodeOrganizationNotFound)
	assert.Equal(t, int64(1), e.count(t, &domain.Organization{}, ""))
}
