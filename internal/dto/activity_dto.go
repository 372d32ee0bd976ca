package dto

import (
	"time"

	"github.com/google/uuid"

	"seniorcare-lead-api/internal/domain"
)

// ActivityRequest represents the request to add or edit an activity. The
// id matching OwnerType must be set and the other two left empty.
type ActivityRequest struct {
	OwnerType      domain.OwnerType `json:"ownerType" binding:"required"`
	LeadID         *uuid.UUID       `json:"leadId"`
	ReferralID     *uuid.UUID       `json:"referralId"`
	OrganizationID *uuid.UUID       `json:"organizationId"`
	TypeID         uuid.UUID        `json:"typeId" binding:"required"`
	StatusID       *uuid.UUID       `json:"statusId"`
	Title          string           `json:"title" binding:"required,max=255"`
	Date           time.Time        `json:"date" binding:"required"`
	Notes          string           `json:"notes"`
	AssignToID     *uuid.UUID       `json:"assignToId"`
	DueDate        *time.Time       `json:"dueDate"`
	ReminderDate   *time.Time       `json:"reminderDate"`
	FacilityID     *uuid.UUID       `json:"facilityId"`
}

// LeadTemperatureRequest adds or edits a temperature history entry
type LeadTemperatureRequest struct {
	LeadID        uuid.UUID `json:"leadId" binding:"required"`
	TemperatureID uuid.UUID `json:"temperatureId" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
	Notes         string    `json:"notes"`
}

// LeadFunnelStageRequest adds or edits a funnel stage history entry
type LeadFunnelStageRequest struct {
	LeadID   uuid.UUID  `json:"leadId" binding:"required"`
	StageID  uuid.UUID  `json:"stageId" binding:"required"`
	ReasonID *uuid.UUID `json:"reasonId"`
	Date     time.Time  `json:"date" binding:"required"`
	Notes    string     `json:"notes"`
}
