package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChangeLogType names the event recorded by a ChangeLog entry
type ChangeLogType string

const (
	ChangeLogNewLead                ChangeLogType = "NEW_LEAD"
	ChangeLogLeadUpdatedState       ChangeLogType = "LEAD_UPDATED_STATE"
	ChangeLogLeadUpdatedFunnelStage ChangeLogType = "LEAD_UPDATED_FUNNEL_STAGE"
	ChangeLogLeadUpdatedTemperature ChangeLogType = "LEAD_UPDATED_TEMPERATURE"
	ChangeLogNewActivity            ChangeLogType = "NEW_ACTIVITY"
)

// ChangeLog is an audit entry written by the lead workflow. Content holds
// the before/after payload of the event.
type ChangeLog struct {
	BaseModel
	SpaceID uuid.UUID      `gorm:"type:uuid;not null;index:idx_change_logs_space_id" json:"spaceId"`
	Type    ChangeLogType  `gorm:"type:varchar(40);not null;index:idx_change_logs_type" json:"type"`
	LeadID  *uuid.UUID     `gorm:"type:uuid;index:idx_change_logs_lead_id" json:"leadId"`
	OwnerID uuid.UUID      `gorm:"type:uuid;not null" json:"ownerId"`
	Owner   *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Content datatypes.JSON `gorm:"type:json" json:"content"`
}

func (ChangeLog) TableName() string {
	return "change_logs"
}
