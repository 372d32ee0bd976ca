package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WebEmail is an inbound message captured from a community website form.
type WebEmail struct {
	BaseModel
	SpaceID           uuid.UUID        `gorm:"type:uuid;not null;index:idx_web_emails_space_id" json:"spaceId"`
	FacilityID        *uuid.UUID       `gorm:"type:uuid" json:"facilityId"`
	Facility          *Facility        `gorm:"foreignKey:FacilityID" json:"facility,omitempty"`
	EmailReviewTypeID *uuid.UUID       `gorm:"type:uuid" json:"emailReviewTypeId"`
	EmailReviewType   *EmailReviewType `gorm:"foreignKey:EmailReviewTypeID" json:"emailReviewType,omitempty"`
	Date              time.Time        `gorm:"not null;index:idx_web_emails_date" json:"date"`
	Subject           string           `gorm:"type:varchar(255)" json:"subject"`
	Name              string           `gorm:"type:varchar(255)" json:"name"`
	Email             string           `gorm:"type:varchar(255)" json:"email"`
	Phone             string           `gorm:"type:varchar(50)" json:"phone"`
	Message           string           `gorm:"type:text" json:"message"`
	Spam              bool             `gorm:"not null" json:"spam"`
	Meta              datatypes.JSON   `gorm:"type:json" json:"meta,omitempty"`
}

func (WebEmail) TableName() string {
	return "web_emails"
}
