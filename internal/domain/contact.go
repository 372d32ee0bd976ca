package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PhoneType represents the kind of a phone number
type PhoneType string

const (
	PhoneTypeHome      PhoneType = "HOME"
	PhoneTypeMobile    PhoneType = "MOBILE"
	PhoneTypeWork      PhoneType = "WORK"
	PhoneTypeOffice    PhoneType = "OFFICE"
	PhoneTypeEmergency PhoneType = "EMERGENCY"
	PhoneTypeFax       PhoneType = "FAX"
)

// Valid reports whether t is a known phone type.
func (t PhoneType) Valid() bool {
	switch t {
	case PhoneTypeHome, PhoneTypeMobile, PhoneTypeWork, PhoneTypeOffice, PhoneTypeEmergency, PhoneTypeFax:
		return true
	}
	return false
}

// PhoneFields is shared by every phone sub-record.
type PhoneFields struct {
	Number     string    `gorm:"type:varchar(50);not null" json:"number"`
	Type       PhoneType `gorm:"type:varchar(20);not null" json:"type"`
	Extension  string    `gorm:"type:varchar(20)" json:"extension"`
	Primary    bool      `gorm:"column:is_primary;not null" json:"primary"`
	SMSEnabled bool      `gorm:"column:sms_enabled;not null" json:"smsEnabled"`
}

// Organization is a referral-network company (hospital, agency, ...).
type Organization struct {
	BaseModel
	SpaceID    uuid.UUID                   `gorm:"type:uuid;not null;index:idx_organizations_space_id" json:"spaceId"`
	Name       string                      `gorm:"type:varchar(255);not null" json:"name"`
	CategoryID *uuid.UUID                  `gorm:"type:uuid" json:"categoryId"`
	Category   *ReferrerType               `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Address    string                      `gorm:"type:varchar(255)" json:"address"`
	Website    string                      `gorm:"type:varchar(255)" json:"website"`
	Emails     datatypes.JSONSlice[string] `gorm:"type:json" json:"emails"`
	Phones     []OrganizationPhone         `gorm:"foreignKey:OrganizationID" json:"phones"`
}

type OrganizationPhone struct {
	BaseModel
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_organization_phones_organization_id" json:"organizationId"`
	PhoneFields
}

// Contact is a person in the referral network, optionally working for an Organization.
type Contact struct {
	BaseModel
	SpaceID        uuid.UUID                   `gorm:"type:uuid;not null;index:idx_contacts_space_id" json:"spaceId"`
	FirstName      string                      `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName       string                      `gorm:"type:varchar(100);not null" json:"lastName"`
	OrganizationID *uuid.UUID                  `gorm:"type:uuid;index:idx_contacts_organization_id" json:"organizationId"`
	Organization   *Organization               `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Role           string                      `gorm:"type:varchar(100)" json:"role"`
	Notes          string                      `gorm:"type:text" json:"notes"`
	Emails         datatypes.JSONSlice[string] `gorm:"type:json" json:"emails"`
	Phones         []ContactPhone              `gorm:"foreignKey:ContactID" json:"phones"`
}

// FullName returns "First Last".
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

type ContactPhone struct {
	BaseModel
	ContactID uuid.UUID `gorm:"type:uuid;not null;index:idx_contact_phones_contact_id" json:"contactId"`
	PhoneFields
}

func (Organization) TableName() string {
	return "organizations"
}

func (OrganizationPhone) TableName() string {
	return "organization_phones"
}

func (Contact) TableName() string {
	return "contacts"
}

func (ContactPhone) TableName() string {
	return "contact_phones"
}
