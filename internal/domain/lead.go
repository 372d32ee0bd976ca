package domain

import (
	"time"

	"github.com/google/uuid"
)

// LeadState represents the lifecycle state of a lead
type LeadState string

const (
	LeadStateOpen   LeadState = "OPEN"
	LeadStateClosed LeadState = "CLOSED"
)

// Lead is a prospective resident.
type Lead struct {
	BaseModel
	SpaceID              uuid.UUID          `gorm:"type:uuid;not null;index:idx_leads_space_id" json:"spaceId"`
	FirstName            string             `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName             string             `gorm:"type:varchar(100);not null" json:"lastName"`
	Birthday             *time.Time         `gorm:"type:date" json:"birthday"`
	OwnerID              uuid.UUID          `gorm:"type:uuid;not null;index:idx_leads_owner_id" json:"ownerId"`
	Owner                *User              `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	State                LeadState          `gorm:"type:varchar(20);not null;index:idx_leads_state" json:"state"`
	StateChangeReasonID  *uuid.UUID         `gorm:"type:uuid" json:"stateChangeReasonId"`
	StateChangeReason    *StateChangeReason `gorm:"foreignKey:StateChangeReasonID" json:"stateChangeReason,omitempty"`
	StateEffectiveDate   *time.Time         `json:"stateEffectiveDate"`
	CareTypeID           *uuid.UUID         `gorm:"type:uuid" json:"careTypeId"`
	CareType             *CareType          `gorm:"foreignKey:CareTypeID" json:"careType,omitempty"`
	PaymentSourceID      *uuid.UUID         `gorm:"type:uuid" json:"paymentSourceId"`
	PaymentSource        *PaymentSource     `gorm:"foreignKey:PaymentSourceID" json:"paymentSource,omitempty"`
	CurrentResidenceID   *uuid.UUID         `gorm:"type:uuid" json:"currentResidenceId"`
	CurrentResidence     *CurrentResidence  `gorm:"foreignKey:CurrentResidenceID" json:"currentResidence,omitempty"`
	PrimaryFacilityID    *uuid.UUID         `gorm:"type:uuid;index:idx_leads_primary_facility_id" json:"primaryFacilityId"`
	PrimaryFacility      *Facility          `gorm:"foreignKey:PrimaryFacilityID" json:"primaryFacility,omitempty"`
	ResponsibleFirstName string             `gorm:"column:rp_first_name;type:varchar(100)" json:"responsiblePersonFirstName"`
	ResponsibleLastName  string             `gorm:"column:rp_last_name;type:varchar(100)" json:"responsiblePersonLastName"`
	ResponsibleAddress   string             `gorm:"column:rp_address;type:varchar(255)" json:"responsiblePersonAddress"`
	ResponsibleCity      string             `gorm:"column:rp_city;type:varchar(100)" json:"responsiblePersonCity"`
	ResponsibleZip       string             `gorm:"column:rp_zip;type:varchar(20)" json:"responsiblePersonZip"`
	ResponsiblePhone     string             `gorm:"column:rp_phone;type:varchar(50)" json:"responsiblePersonPhone"`
	ResponsibleEmail     string             `gorm:"column:rp_email;type:varchar(255)" json:"responsiblePersonEmail"`
	InitialContactDate   time.Time          `gorm:"not null" json:"initialContactDate"`
	InTakeSource         string             `gorm:"type:varchar(100)" json:"inTakeSource"`
	Notes                string             `gorm:"type:text" json:"notes"`
	Spam                 bool               `gorm:"not null;index:idx_leads_spam" json:"spam"`

	Facilities     []Facility                 `gorm:"many2many:lead_facilities" json:"facilities"`
	Hobbies        []Hobby                    `gorm:"many2many:lead_hobbies" json:"hobbies"`
	Qualifications []QualificationRequirement `gorm:"many2many:lead_qualifications" json:"qualifications"`
	Referral       *Referral                  `gorm:"foreignKey:LeadID" json:"referral,omitempty"`
}

// FullName returns "First Last".
func (l Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}

func (Lead) TableName() string {
	return "leads"
}
