package domain

import "github.com/google/uuid"

// Reference is implemented by every per-space lookup table.
type Reference interface {
	TableName() string
	GetID() uuid.UUID
	GetTitle() string
	SetSpaceID(spaceID uuid.UUID)
}

type CareType struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_care_types_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_care_types_space_title,priority:2" json:"title"`
}

func (CareType) TableName() string {
	return "care_types"
}

func (r CareType) GetTitle() string {
	return r.Title
}

func (r *CareType) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

type PaymentSource struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payment_sources_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_payment_sources_space_title,priority:2" json:"title"`
}

func (PaymentSource) TableName() string {
	return "payment_sources"
}

func (r PaymentSource) GetTitle() string {
	return r.Title
}

func (r *PaymentSource) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

type OutreachType struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_outreach_types_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_outreach_types_space_title,priority:2" json:"title"`
}

func (OutreachType) TableName() string {
	return "outreach_types"
}

func (r OutreachType) GetTitle() string {
	return r.Title
}

func (r *OutreachType) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

type Hobby struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_hobbies_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_hobbies_space_title,priority:2" json:"title"`
}

func (Hobby) TableName() string {
	return "hobbies"
}

func (r Hobby) GetTitle() string {
	return r.Title
}

func (r *Hobby) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

type QualificationRequirement struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_qualification_requirements_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_qualification_requirements_space_title,priority:2" json:"title"`
}

func (QualificationRequirement) TableName() string {
	return "qualification_requirements"
}

func (r QualificationRequirement) GetTitle() string {
	return r.Title
}

func (r *QualificationRequirement) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

type StageChangeReason struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_stage_change_reasons_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_stage_change_reasons_space_title,priority:2" json:"title"`
}

func (StageChangeReason) TableName() string {
	return "stage_change_reasons"
}

func (r StageChangeReason) GetTitle() string {
	return r.Title
}

func (r *StageChangeReason) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

type CurrentResidence struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_current_residences_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_current_residences_space_title,priority:2" json:"title"`
}

func (CurrentResidence) TableName() string {
	return "current_residences"
}

func (r CurrentResidence) GetTitle() string {
	return r.Title
}

func (r *CurrentResidence) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

type EmailReviewType struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_email_review_types_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_email_review_types_space_title,priority:2" json:"title"`
}

func (EmailReviewType) TableName() string {
	return "email_review_types"
}

func (r EmailReviewType) GetTitle() string {
	return r.Title
}

func (r *EmailReviewType) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

// Facility is a community a lead can be placed in.
type Facility struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_facilities_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_facilities_space_title,priority:2" json:"title"`
	Address string    `gorm:"type:varchar(255)" json:"address"`
	Phone   string    `gorm:"type:varchar(50)" json:"phone"`
}

func (Facility) TableName() string {
	return "facilities"
}

func (r Facility) GetTitle() string {
	return r.Title
}

func (r *Facility) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

// Temperature rates how warm a lead is.
type Temperature struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_temperatures_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_temperatures_space_title,priority:2" json:"title"`
	Value   int       `gorm:"not null;default:0" json:"value"`
}

func (Temperature) TableName() string {
	return "temperatures"
}

func (r Temperature) GetTitle() string {
	return r.Title
}

func (r *Temperature) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

// FunnelStage is a named step of the sales pipeline.
type FunnelStage struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_funnel_stages_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_funnel_stages_space_title,priority:2" json:"title"`
	Seq     int       `gorm:"not null;default:0" json:"seq"`
	Open    bool      `gorm:"not null" json:"open"`
}

func (FunnelStage) TableName() string {
	return "funnel_stages"
}

func (r FunnelStage) GetTitle() string {
	return r.Title
}

func (r *FunnelStage) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

type ActivityStatus struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_activity_statuses_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_activity_statuses_space_title,priority:2" json:"title"`
	Done    bool      `gorm:"not null" json:"done"`
}

func (ActivityStatus) TableName() string {
	return "activity_statuses"
}

func (r ActivityStatus) GetTitle() string {
	return r.Title
}

func (r *ActivityStatus) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

// ActivityType flags decide which optional Activity fields are kept.
type ActivityType struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_activity_types_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_activity_types_space_title,priority:2" json:"title"`

	DefaultStatusID *uuid.UUID      `gorm:"type:uuid" json:"defaultStatusId"`
	DefaultStatus   *ActivityStatus `gorm:"foreignKey:DefaultStatusID" json:"defaultStatus,omitempty"`
	AssignTo        bool            `gorm:"not null" json:"assignTo"`
	DueDate         bool            `gorm:"not null" json:"dueDate"`
	ReminderDate    bool            `gorm:"not null" json:"reminderDate"`
	Facility        bool            `gorm:"not null" json:"facility"`
	Editable        bool            `gorm:"not null" json:"editable"`
}

func (ActivityType) TableName() string {
	return "activity_types"
}

func (r ActivityType) GetTitle() string {
	return r.Title
}

func (r *ActivityType) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

// ReferrerType decides which parts of a Referral are mandatory.
type ReferrerType struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_referrer_types_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_referrer_types_space_title,priority:2" json:"title"`

	OrganizationRequired   bool `gorm:"not null" json:"organizationRequired"`
	RepresentativeRequired bool `gorm:"not null" json:"representativeRequired"`
}

func (ReferrerType) TableName() string {
	return "referrer_types"
}

func (r ReferrerType) GetTitle() string {
	return r.Title
}

func (r *ReferrerType) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}

// StateChangeReason carries the lead state it moves a lead into.
type StateChangeReason struct {
	BaseModel
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_state_change_reasons_space_title,priority:1" json:"spaceId"`
	Title   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_state_change_reasons_space_title,priority:2" json:"title"`
	State   LeadState `gorm:"type:varchar(20);not null" json:"state"`
}

func (StateChangeReason) TableName() string {
	return "state_change_reasons"
}

func (r StateChangeReason) GetTitle() string {
	return r.Title
}

func (r *StateChangeReason) SetSpaceID(id uuid.UUID) {
	r.SpaceID = id
}
