package dto

import (
	"time"

	"github.com/google/uuid"
)

// OutreachRequest represents the request to add or edit an outreach
type OutreachRequest struct {
	TypeID         uuid.UUID   `json:"typeId" binding:"required"`
	OrganizationID *uuid.UUID  `json:"organizationId"`
	Date           time.Time   `json:"date" binding:"required"`
	Notes          string      `json:"notes"`
	ContactIDs     []uuid.UUID `json:"contactIds"`
	ParticipantIDs []uuid.UUID `json:"participantIds"`
}

// WebEmailRequest is an inbound website message
type WebEmailRequest struct {
	FacilityID *uuid.UUID             `json:"facilityId"`
	Date       *time.Time             `json:"date"`
	Subject    string                 `json:"subject" binding:"max=255"`
	Name       string                 `json:"name" binding:"max=255"`
	Email      string                 `json:"email" binding:"omitempty,email,max=255"`
	Phone      string                 `json:"phone" binding:"max=50"`
	Message    string                 `json:"message"`
	Meta       map[string]interface{} `json:"meta"`
}

// WebEmailReviewRequest is the reviewer's verdict on a web email
type WebEmailReviewRequest struct {
	FacilityID        *uuid.UUID `json:"facilityId"`
	EmailReviewTypeID *uuid.UUID `json:"emailReviewTypeId"`
	Spam              bool       `json:"spam"`
}
