package domain

import (
	"time"

	"github.com/google/uuid"
)

// LeadFunnelStage is one entry of a lead's pipeline history.
type LeadFunnelStage struct {
	BaseModel
	SpaceID     uuid.UUID          `gorm:"type:uuid;not null;index:idx_lead_funnel_stages_space_id" json:"spaceId"`
	LeadID      uuid.UUID          `gorm:"type:uuid;not null;index:idx_lead_funnel_stages_lead_date,priority:1" json:"leadId"`
	StageID     uuid.UUID          `gorm:"type:uuid;not null" json:"stageId"`
	Stage       *FunnelStage       `gorm:"foreignKey:StageID" json:"stage,omitempty"`
	ReasonID    *uuid.UUID         `gorm:"type:uuid" json:"reasonId"`
	Reason      *StageChangeReason `gorm:"foreignKey:ReasonID" json:"reason,omitempty"`
	Date        time.Time          `gorm:"not null;index:idx_lead_funnel_stages_lead_date,priority:2" json:"date"`
	Notes       string             `gorm:"type:text" json:"notes"`
	CreatedByID uuid.UUID          `gorm:"type:uuid;not null" json:"createdById"`
}

// LeadTemperature is one entry of a lead's temperature history.
type LeadTemperature struct {
	BaseModel
	SpaceID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_lead_temperatures_space_id" json:"spaceId"`
	LeadID        uuid.UUID    `gorm:"type:uuid;not null;index:idx_lead_temperatures_lead_date,priority:1" json:"leadId"`
	TemperatureID uuid.UUID    `gorm:"type:uuid;not null" json:"temperatureId"`
	Temperature   *Temperature `gorm:"foreignKey:TemperatureID" json:"temperature,omitempty"`
	Date          time.Time    `gorm:"not null;index:idx_lead_temperatures_lead_date,priority:2" json:"date"`
	Notes         string       `gorm:"type:text" json:"notes"`
	CreatedByID   uuid.UUID    `gorm:"type:uuid;not null" json:"createdById"`
}

func (LeadFunnelStage) TableName() string {
	return "lead_funnel_stages"
}

func (LeadTemperature) TableName() string {
	return "lead_temperatures"
}
