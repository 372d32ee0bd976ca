package dto

import (
	"strings"

	"github.com/google/uuid"

	"seniorcare-lead-api/internal/domain"
)

// ReferenceRequest is the add/edit payload of lookup T.
type ReferenceRequest[T any] interface {
	GetTitle() string
	ApplyTo(item *T)
}

// TitleRequest is the payload of lookups that only carry a title
type TitleRequest struct {
	Title string `json:"title" binding:"required,max=100"`
}

func (r TitleRequest) GetTitle() string {
	return strings.TrimSpace(r.Title)
}

type CareTypeRequest struct{ TitleRequest }

func (r CareTypeRequest) ApplyTo(item *domain.CareType) { item.Title = r.GetTitle() }

type PaymentSourceRequest struct{ TitleRequest }

func (r PaymentSourceRequest) ApplyTo(item *domain.PaymentSource) { item.Title = r.GetTitle() }

type OutreachTypeRequest struct{ TitleRequest }

func (r OutreachTypeRequest) ApplyTo(item *domain.OutreachType) { item.Title = r.GetTitle() }

type HobbyRequest struct{ TitleRequest }

func (r HobbyRequest) ApplyTo(item *domain.Hobby) { item.Title = r.GetTitle() }

type QualificationRequirementRequest struct{ TitleRequest }

func (r QualificationRequirementRequest) ApplyTo(item *domain.QualificationRequirement) {
	item.Title = r.GetTitle()
}

type StageChangeReasonRequest struct{ TitleRequest }

func (r StageChangeReasonRequest) ApplyTo(item *domain.StageChangeReason) { item.Title = r.GetTitle() }

type CurrentResidenceRequest struct{ TitleRequest }

func (r CurrentResidenceRequest) ApplyTo(item *domain.CurrentResidence) { item.Title = r.GetTitle() }

type EmailReviewTypeRequest struct{ TitleRequest }

func (r EmailReviewTypeRequest) ApplyTo(item *domain.EmailReviewType) { item.Title = r.GetTitle() }

// FacilityRequest represents the request to add or edit a facility
type FacilityRequest struct {
	TitleRequest
	Address string `json:"address" binding:"max=255"`
	Phone   string `json:"phone" binding:"max=50"`
}

func (r FacilityRequest) ApplyTo(item *domain.Facility) {
	item.Title = r.GetTitle()
	item.Address = strings.TrimSpace(r.Address)
	item.Phone = strings.TrimSpace(r.Phone)
}

type TemperatureRequest struct {
	TitleRequest
	Value int `json:"value"`
}

func (r TemperatureRequest) ApplyTo(item *domain.Temperature) {
	item.Title = r.GetTitle()
	item.Value = r.Value
}

type FunnelStageRequest struct {
	TitleRequest
	Seq  int  `json:"seq" binding:"min=0"`
	Open bool `json:"open"`
}

func (r FunnelStageRequest) ApplyTo(item *domain.FunnelStage) {
	item.Title = r.GetTitle()
	item.Seq = r.Seq
	item.Open = r.Open
}

type ActivityStatusRequest struct {
	TitleRequest
	Done bool `json:"done"`
}

func (r ActivityStatusRequest) ApplyTo(item *domain.ActivityStatus) {
	item.Title = r.GetTitle()
	item.Done = r.Done
}

// ActivityTypeRequest carries the flags deciding which optional activity
// fields are kept.
type ActivityTypeRequest struct {
	TitleRequest
	DefaultStatusID *uuid.UUID `json:"defaultStatusId"`
	AssignTo        bool       `json:"assignTo"`
	DueDate         bool       `json:"dueDate"`
	ReminderDate    bool       `json:"reminderDate"`
	Facility        bool       `json:"facility"`
	Editable        bool       `json:"editable"`
}

func (r ActivityTypeRequest) ApplyTo(item *domain.ActivityType) {
	item.Title = r.GetTitle()
	item.DefaultStatusID = r.DefaultStatusID
	item.DefaultStatus = nil
	item.AssignTo = r.AssignTo
	item.DueDate = r.DueDate
	item.ReminderDate = r.ReminderDate
	item.Facility = r.Facility
	item.Editable = r.Editable
}

type ReferrerTypeRequest struct {
	TitleRequest
	OrganizationRequired   bool `json:"organizationRequired"`
	RepresentativeRequired bool `json:"representativeRequired"`
}

func (r ReferrerTypeRequest) ApplyTo(item *domain.ReferrerType) {
	item.Title = r.GetTitle()
	item.OrganizationRequired = r.OrganizationRequired
	item.RepresentativeRequired = r.RepresentativeRequired
}

type StateChangeReasonRequest struct {
	TitleRequest
	State domain.LeadState `json:"state" binding:"required,oneof=OPEN CLOSED"`
}

func (r StateChangeReasonRequest) ApplyTo(item *domain.StateChangeReason) {
	item.Title = r.GetTitle()
	item.State = r.State
}
