package domain

import "github.com/google/uuid"

// Referral describes how a lead reached the community. The ReferrerType
// decides whether an organization and/or a representative are mandatory.
type Referral struct {
	BaseModel
	SpaceID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_referrals_space_id" json:"spaceId"`
	LeadID           *uuid.UUID      `gorm:"type:uuid;uniqueIndex:uq_referrals_lead_id" json:"leadId"`
	TypeID           uuid.UUID       `gorm:"type:uuid;not null" json:"typeId"`
	Type             *ReferrerType   `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	OrganizationID   *uuid.UUID      `gorm:"type:uuid;index:idx_referrals_organization_id" json:"organizationId"`
	Organization     *Organization   `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	RepresentativeID *uuid.UUID      `gorm:"type:uuid" json:"representativeId"`
	Representative   *Contact        `gorm:"foreignKey:RepresentativeID" json:"representative,omitempty"`
	Notes            string          `gorm:"type:text" json:"notes"`
	Phones           []ReferralPhone `gorm:"foreignKey:ReferralID" json:"phones"`
}

type ReferralPhone struct {
	BaseModel
	ReferralID uuid.UUID `gorm:"type:uuid;not null;index:idx_referral_phones_referral_id" json:"referralId"`
	PhoneFields
}

func (Referral) TableName() string {
	return "referrals"
}

func (ReferralPhone) TableName() string {
	return "referral_phones"
}
