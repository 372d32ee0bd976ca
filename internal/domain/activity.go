package domain

import (
	"time"

	"github.com/google/uuid"
)

// OwnerType discriminates which entity an Activity belongs to
type OwnerType string

const (
	OwnerTypeLead         OwnerType = "LEAD"
	OwnerTypeReferral     OwnerType = "REFERRAL"
	OwnerTypeOrganization OwnerType = "ORGANIZATION"
)

// Valid reports whether t is a known owner type.
func (t OwnerType) Valid() bool {
	switch t {
	case OwnerTypeLead, OwnerTypeReferral, OwnerTypeOrganization:
		return true
	}
	return false
}

// ActivityKind separates user-entered activities from the ones the lead
// workflow writes on its own.
type ActivityKind string

const (
	ActivityKindUser              ActivityKind = "USER"
	ActivityKindInitialContact    ActivityKind = "INITIAL_CONTACT"
	ActivityKindStateChange       ActivityKind = "STATE_CHANGE"
	ActivityKindTemperatureChange ActivityKind = "TEMPERATURE_CHANGE"
	ActivityKindFunnelStageChange ActivityKind = "FUNNEL_STAGE_CHANGE"
)

// Activity is a logged action or task. Exactly one of LeadID, ReferralID and
// OrganizationID is set, matching OwnerType.
type Activity struct {
	BaseModel
	SpaceID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_activities_space_id" json:"spaceId"`
	OwnerType      OwnerType       `gorm:"type:varchar(20);not null" json:"ownerType"`
	LeadID         *uuid.UUID      `gorm:"type:uuid;index:idx_activities_lead_id" json:"leadId"`
	ReferralID     *uuid.UUID      `gorm:"type:uuid;index:idx_activities_referral_id" json:"referralId"`
	OrganizationID *uuid.UUID      `gorm:"type:uuid;index:idx_activities_organization_id" json:"organizationId"`
	Kind           ActivityKind    `gorm:"type:varchar(30);not null" json:"kind"`
	TypeID         *uuid.UUID      `gorm:"type:uuid" json:"typeId"`
	Type           *ActivityType   `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	StatusID       *uuid.UUID      `gorm:"type:uuid" json:"statusId"`
	Status         *ActivityStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Title          string          `gorm:"type:varchar(255)" json:"title"`
	Date           time.Time       `gorm:"not null;index:idx_activities_date" json:"date"`
	Notes          string          `gorm:"type:text" json:"notes"`
	AssignToID     *uuid.UUID      `gorm:"type:uuid" json:"assignToId"`
	AssignTo       *User           `gorm:"foreignKey:AssignToID" json:"assignTo,omitempty"`
	DueDate        *time.Time      `json:"dueDate"`
	ReminderDate   *time.Time      `gorm:"index:idx_activities_reminder_date" json:"reminderDate"`
	FacilityID     *uuid.UUID      `gorm:"type:uuid" json:"facilityId"`
	Facility       *Facility       `gorm:"foreignKey:FacilityID" json:"facility,omitempty"`
	RemindedAt     *time.Time      `json:"remindedAt"`

	// failed reminder sends; the job backs off after each one
	ReminderAttempts int        `gorm:"not null;default:0" json:"-"`
	ReminderFailedAt *time.Time `json:"-"`
}

func (Activity) TableName() string {
	return "activities"
}
