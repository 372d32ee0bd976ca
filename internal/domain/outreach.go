package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outreach records a marketing visit or call to an organization.
type Outreach struct {
	BaseModel
	SpaceID        uuid.UUID     `gorm:"type:uuid;not null;index:idx_outreaches_space_id" json:"spaceId"`
	TypeID         uuid.UUID     `gorm:"type:uuid;not null" json:"typeId"`
	Type           *OutreachType `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	OrganizationID *uuid.UUID    `gorm:"type:uuid;index:idx_outreaches_organization_id" json:"organizationId"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Date           time.Time     `gorm:"not null" json:"date"`
	Notes          string        `gorm:"type:text" json:"notes"`
	Contacts       []Contact     `gorm:"many2many:outreach_contacts" json:"contacts"`
	Participants   []User        `gorm:"many2many:outreach_participants" json:"participants"`
}

func (Outreach) TableName() string {
	return "outreaches"
}
