package dto

import (
	"time"

	"github.com/google/uuid"
)

// ResponsiblePersonRequest is the family member or guardian of a lead.
// Phone and email cannot both be empty.
type ResponsiblePersonRequest struct {
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Address   string `json:"address" binding:"max=255"`
	City      string `json:"city" binding:"max=100"`
	Zip       string `json:"zip" binding:"max=20"`
	Phone     string `json:"phone" binding:"max=50"`
	Email     string `json:"email" binding:"omitempty,email,max=255"`
}

// LeadRequest represents the request to add or edit a lead. Edit is a full
// replace: omitted optional references are cleared, a null referral
// detaches the current one.
type LeadRequest struct {
	FirstName           string                   `json:"firstName" binding:"required,max=100"`
	LastName            string                   `json:"lastName" binding:"required,max=100"`
	Birthday            *time.Time               `json:"birthday"`
	OwnerID             uuid.UUID                `json:"ownerId" binding:"required"`
	StateChangeReasonID *uuid.UUID               `json:"stateChangeReasonId"`
	StateEffectiveDate  *time.Time               `json:"stateEffectiveDate"`
	CareTypeID          *uuid.UUID               `json:"careTypeId"`
	PaymentSourceID     *uuid.UUID               `json:"paymentSourceId"`
	CurrentResidenceID  *uuid.UUID               `json:"currentResidenceId"`
	PrimaryFacilityID   *uuid.UUID               `json:"primaryFacilityId"`
	FacilityIDs         []uuid.UUID              `json:"facilityIds"`
	HobbyIDs            []uuid.UUID              `json:"hobbyIds"`
	QualificationIDs    []uuid.UUID              `json:"qualificationIds"`
	ResponsiblePerson   ResponsiblePersonRequest `json:"responsiblePerson"`
	InitialContactDate  time.Time                `json:"initialContactDate" binding:"required"`
	InTakeSource        string                   `json:"inTakeSource" binding:"max=100"`
	Notes               string                   `json:"notes"`

	// Omitted on edit keeps the attached referral; null removes it.
	Referral Optional[ReferralRequest] `json:"referral"`

	// Intake only. Ignored on edit.
	FunnelStageID *uuid.UUID `json:"funnelStageId"`
	TemperatureID *uuid.UUID `json:"temperatureId"`
}

// SpamRequest flags or unflags a set of leads
type SpamRequest struct {
	IDs  []uuid.UUID `json:"ids"`
	Spam bool        `json:"spam"`
}
