package service

import (
	"context"

	"go.uber.org/zap"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

// ReferenceServices bundles the service of every lookup table.
type ReferenceServices struct {
	CareTypes                 ReferenceService[domain.CareType, dto.CareTypeRequest]
	PaymentSources            ReferenceService[domain.PaymentSource, dto.PaymentSourceRequest]
	Facilities                ReferenceService[domain.Facility, dto.FacilityRequest]
	Temperatures              ReferenceService[domain.Temperature, dto.TemperatureRequest]
	FunnelStages              ReferenceService[domain.FunnelStage, dto.FunnelStageRequest]
	ActivityStatuses          ReferenceService[domain.ActivityStatus, dto.ActivityStatusRequest]
	ActivityTypes             ReferenceService[domain.ActivityType, dto.ActivityTypeRequest]
	ReferrerTypes             ReferenceService[domain.ReferrerType, dto.ReferrerTypeRequest]
	OutreachTypes             ReferenceService[domain.OutreachType, dto.OutreachTypeRequest]
	Hobbies                   ReferenceService[domain.Hobby, dto.HobbyRequest]
	QualificationRequirements ReferenceService[domain.QualificationRequirement, dto.QualificationRequirementRequest]
	StageChangeReasons        ReferenceService[domain.StageChangeReason, dto.StageChangeReasonRequest]
	StateChangeReasons        ReferenceService[domain.StateChangeReason, dto.StateChangeReasonRequest]
	CurrentResidences         ReferenceService[domain.CurrentResidence, dto.CurrentResidenceRequest]
	EmailReviewTypes          ReferenceService[domain.EmailReviewType, dto.EmailReviewTypeRequest]
}

func deps(pairs ...string) []repository.Dependent {
	out := make([]repository.Dependent, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, repository.Dependent{Table: pairs[i], Column: pairs[i+1]})
	}
	return out
}

// NewReferenceServices wires every lookup service with its dependent tables.
func NewReferenceServices(repos repository.ReferenceRepositories, related repository.RelatedRepository, tx Transactor, logger *zap.Logger) ReferenceServices {
	activityTypeCfg := ReferenceConfig[domain.ActivityType]{
		NotFound:   response.CodeActivityTypeNotFound,
		Dependents: deps("activities", "type_id"),
		Validate: func(ctx context.Context, tc tenant.Context, item *domain.ActivityType) error {
			if item.DefaultStatusID == nil {
				return nil
			}
			status, err := repos.ActivityStatuses.FindByID(ctx, tc.SpaceID, *item.DefaultStatusID)
			if err != nil {
				return lookupErr(response.CodeActivityStatusNotFound, err)
			}
			item.DefaultStatus = status
			return nil
		},
	}

	return ReferenceServices{
		CareTypes: NewReferenceService[domain.CareType, dto.CareTypeRequest](repos.CareTypes, related, tx,
			ReferenceConfig[domain.CareType]{NotFound: response.CodeCareTypeNotFound, Dependents: deps("leads", "care_type_id")}, logger),
		PaymentSources: NewReferenceService[domain.PaymentSource, dto.PaymentSourceRequest](repos.PaymentSources, related, tx,
			ReferenceConfig[domain.PaymentSource]{NotFound: response.CodePaymentSourceNotFound, Dependents: deps("leads", "payment_source_id")}, logger),
		Facilities: NewReferenceService[domain.Facility, dto.FacilityRequest](repos.Facilities, related, tx,
			ReferenceConfig[domain.Facility]{NotFound: response.CodeFacilityNotFound, Dependents: deps(
				"leads", "primary_facility_id",
				"lead_facilities", "facility_id",
				"activities", "facility_id",
				"web_emails", "facility_id",
			)}, logger),
		Temperatures: NewReferenceService[domain.Temperature, dto.TemperatureRequest](repos.Temperatures, related, tx,
			ReferenceConfig[domain.Temperature]{NotFound: response.CodeTemperatureNotFound, Dependents: deps("lead_temperatures", "temperature_id")}, logger),
		FunnelStages: NewReferenceService[domain.FunnelStage, dto.FunnelStageRequest](repos.FunnelStages, related, tx,
			ReferenceConfig[domain.FunnelStage]{NotFound: response.CodeFunnelStageNotFound, Dependents: deps("lead_funnel_stages", "stage_id")}, logger),
		ActivityStatuses: NewReferenceService[domain.ActivityStatus, dto.ActivityStatusRequest](repos.ActivityStatuses, related, tx,
			ReferenceConfig[domain.ActivityStatus]{NotFound: response.CodeActivityStatusNotFound, Dependents: deps(
				"activities", "status_id",
				"activity_types", "default_status_id",
			)}, logger),
		ActivityTypes: NewReferenceService[domain.ActivityType, dto.ActivityTypeRequest](repos.ActivityTypes, related, tx, activityTypeCfg, logger),
		ReferrerTypes: NewReferenceService[domain.ReferrerType, dto.ReferrerTypeRequest](repos.ReferrerTypes, related, tx,
			ReferenceConfig[domain.ReferrerType]{NotFound: response.CodeReferrerTypeNotFound, Dependents: deps(
				"referrals", "type_id",
				"organizations", "category_id",
			)}, logger),
		OutreachTypes: NewReferenceService[domain.OutreachType, dto.OutreachTypeRequest](repos.OutreachTypes, related, tx,
			ReferenceConfig[domain.OutreachType]{NotFound: response.CodeOutreachTypeNotFound, Dependents: deps("outreaches", "type_id")}, logger),
		Hobbies: NewReferenceService[domain.Hobby, dto.HobbyRequest](repos.Hobbies, related, tx,
			ReferenceConfig[domain.Hobby]{NotFound: response.CodeHobbyNotFound, Dependents: deps("lead_hobbies", "hobby_id")}, logger),
		QualificationRequirements: NewReferenceService[domain.QualificationRequirement, dto.QualificationRequirementRequest](repos.QualificationRequirements, related, tx,
			ReferenceConfig[domain.QualificationRequirement]{NotFound: response.CodeQualificationNotFound, Dependents: deps("lead_qualifications", "qualification_requirement_id")}, logger),
		StageChangeReasons: NewReferenceService[domain.StageChangeReason, dto.StageChangeReasonRequest](repos.StageChangeReasons, related, tx,
			ReferenceConfig[domain.StageChangeReason]{NotFound: response.CodeStageChangeReasonNotFound, Dependents: deps("lead_funnel_stages", "reason_id")}, logger),
		StateChangeReasons: NewReferenceService[domain.StateChangeReason, dto.StateChangeReasonRequest](repos.StateChangeReasons, related, tx,
			ReferenceConfig[domain.StateChangeReason]{NotFound: response.CodeStateChangeReasonNotFound, Dependents: deps("leads", "state_change_reason_id")}, logger),
		CurrentResidences: NewReferenceService[domain.CurrentResidence, dto.CurrentResidenceRequest](repos.CurrentResidences, related, tx,
			ReferenceConfig[domain.CurrentResidence]{NotFound: response.CodeCurrentResidenceNotFound, Dependents: deps("leads", "current_residence_id")}, logger),
		EmailReviewTypes: NewReferenceService[domain.EmailReviewType, dto.EmailReviewTypeRequest](repos.EmailReviewTypes, related, tx,
			ReferenceConfig[domain.EmailReviewType]{NotFound: response.CodeEmailReviewTypeNotFound, Dependents: deps("web_emails", "email_review_type_id")}, logger),
	}
}
