package dto

import "github.com/google/uuid"

// OrganizationRequest represents the request to add or edit an organization
type OrganizationRequest struct {
	Name       string         `json:"name" binding:"required,max=255"`
	CategoryID *uuid.UUID     `json:"categoryId"`
	Address    string         `json:"address" binding:"max=255"`
	Website    string         `json:"website" binding:"omitempty,max=255"`
	Emails     []string       `json:"emails" binding:"omitempty,dive,email"`
	Phones     []PhoneRequest `json:"phones" binding:"omitempty,dive"`
}

// ContactRequest represents the request to add or edit a contact
type ContactRequest struct {
	FirstName      string         `json:"firstName" binding:"required,max=100"`
	LastName       string         `json:"lastName" binding:"required,max=100"`
	OrganizationID *uuid.UUID     `json:"organizationId"`
	Role           string         `json:"role" binding:"max=100"`
	Notes          string         `json:"notes"`
	Emails         []string       `json:"emails" binding:"omitempty,dive,email"`
	Phones         []PhoneRequest `json:"phones" binding:"omitempty,dive"`
}

// ReferralRequest represents a referral, standalone or attached to a lead.
// Which of organization and representative are kept depends on the type.
type ReferralRequest struct {
	TypeID           uuid.UUID      `json:"typeId" binding:"required"`
	OrganizationID   *uuid.UUID     `json:"organizationId"`
	RepresentativeID *uuid.UUID     `json:"representativeId"`
	Notes            string         `json:"notes"`
	Phones           []PhoneRequest `json:"phones" binding:"omitempty,dive"`
}
