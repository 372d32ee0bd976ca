package response

import "net/http"

// Code is the symbolic name of a ResponseCode table entry.
type Code string

const (
	CodeSpaceNotFound                  Code = "SPACE_NOT_FOUND_EXCEPTION"
	CodeFacilityNotFound               Code = "FACILITY_NOT_FOUND_EXCEPTION"
	CodeCareTypeNotFound               Code = "CARE_TYPE_NOT_FOUND_EXCEPTION"
	CodePaymentSourceNotFound          Code = "PAYMENT_SOURCE_NOT_FOUND_EXCEPTION"
	CodeStateChangeReasonNotFound      Code = "STATE_CHANGE_REASON_NOT_FOUND_EXCEPTION"
	CodeLeadNotFound                   Code = "LEAD_NOT_FOUND_EXCEPTION"
	CodeReferralNotFound               Code = "REFERRAL_NOT_FOUND_EXCEPTION"
	CodeReferrerTypeNotFound           Code = "REFERRER_TYPE_NOT_FOUND_EXCEPTION"
	CodeOrganizationNotFound           Code = "ORGANIZATION_NOT_FOUND_EXCEPTION"
	CodeContactNotFound                Code = "CONTACT_NOT_FOUND_EXCEPTION"
	CodeActivityNotFound               Code = "ACTIVITY_NOT_FOUND_EXCEPTION"
	CodeActivityTypeNotFound           Code = "ACTIVITY_TYPE_NOT_FOUND_EXCEPTION"
	CodeUserNotFound                   Code = "USER_NOT_FOUND_EXCEPTION"
	CodeActivityStatusNotFound         Code = "ACTIVITY_STATUS_NOT_FOUND_EXCEPTION"
	CodeFunnelStageNotFound            Code = "FUNNEL_STAGE_NOT_FOUND_EXCEPTION"
	CodeLeadFunnelStageNotFound        Code = "LEAD_FUNNEL_STAGE_NOT_FOUND_EXCEPTION"
	CodeTemperatureNotFound            Code = "TEMPERATURE_NOT_FOUND_EXCEPTION"
	CodeLeadTemperatureNotFound        Code = "LEAD_TEMPERATURE_NOT_FOUND_EXCEPTION"
	CodeStageChangeReasonNotFound      Code = "STAGE_CHANGE_REASON_NOT_FOUND_EXCEPTION"
	CodeHobbyNotFound                  Code = "HOBBY_NOT_FOUND_EXCEPTION"
	CodeQualificationNotFound          Code = "QUALIFICATION_REQUIREMENT_NOT_FOUND_EXCEPTION"
	CodeCurrentResidenceNotFound       Code = "CURRENT_RESIDENCE_NOT_FOUND_EXCEPTION"
	CodeEmailReviewTypeNotFound        Code = "EMAIL_REVIEW_TYPE_NOT_FOUND_EXCEPTION"
	CodeOutreachTypeNotFound           Code = "OUTREACH_TYPE_NOT_FOUND_EXCEPTION"
	CodeOutreachNotFound               Code = "OUTREACH_NOT_FOUND_EXCEPTION"
	CodeWebEmailNotFound               Code = "WEB_EMAIL_NOT_FOUND_EXCEPTION"
	CodeAssessmentNotFound             Code = "ASSESSMENT_NOT_FOUND_EXCEPTION"
	CodeAssessmentFormNotFound         Code = "ASSESSMENT_FORM_NOT_FOUND_EXCEPTION"
	CodeAssessmentCategoryNotFound     Code = "ASSESSMENT_CATEGORY_NOT_FOUND_EXCEPTION"
	CodeAssessmentRowNotFound          Code = "ASSESSMENT_ROW_NOT_FOUND_EXCEPTION"
	CodeAssessmentCategoryMultiple     Code = "ASSESSMENT_CATEGORY_MULTIPLE_ITEMS_EXCEPTION"
	CodePhoneSinglePrimary             Code = "PHONE_SINGLE_PRIMARY_EXCEPTION"
	CodePhoneOrEmailRequired           Code = "RESPONSIBLE_PERSON_PHONE_OR_EMAIL_REQUIRED_EXCEPTION"
	CodeActivityOwnerTypeInvalid       Code = "ACTIVITY_OWNER_TYPE_INVALID_EXCEPTION"
	CodeDuplicateTitle                 Code = "DUPLICATE_TITLE_EXCEPTION"
	CodeReferralOrganizationRequired   Code = "REFERRAL_ORGANIZATION_REQUIRED_EXCEPTION"
	CodeReferralRepresentativeRequired Code = "REFERRAL_REPRESENTATIVE_REQUIRED_EXCEPTION"
	CodeValidation                     Code = "VALIDATION_ERROR"
	CodeActivityStatusRequired         Code = "ACTIVITY_STATUS_REQUIRED_EXCEPTION"
	CodeExportUnavailable              Code = "EXPORT_UNAVAILABLE_EXCEPTION"

	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// Entry is one row of the ResponseCode table.
type Entry struct {
	Number  int
	Status  int
	Message string
}

var table = map[Code]Entry{
	CodeSpaceNotFound:                  {601, http.StatusBadRequest, "Space not found."},
	CodeFacilityNotFound:               {602, http.StatusBadRequest, "Facility not found."},
	CodeCareTypeNotFound:               {603, http.StatusBadRequest, "CareType not found."},
	CodePaymentSourceNotFound:          {604, http.StatusBadRequest, "PaymentSource not found."},
	CodeStateChangeReasonNotFound:      {605, http.StatusBadRequest, "StateChangeReason not found."},
	CodeLeadNotFound:                   {606, http.StatusBadRequest, "Lead not found."},
	CodeReferralNotFound:               {607, http.StatusBadRequest, "Referral not found."},
	CodeReferrerTypeNotFound:           {608, http.StatusBadRequest, "ReferrerType not found."},
	CodeOrganizationNotFound:           {609, http.StatusBadRequest, "Organization not found."},
	CodeContactNotFound:                {610, http.StatusBadRequest, "Contact not found."},
	CodeActivityNotFound:               {611, http.StatusBadRequest, "Activity not found."},
	CodeActivityTypeNotFound:           {612, http.StatusBadRequest, "ActivityType not found."},
	CodeUserNotFound:                   {613, http.StatusBadRequest, "User not found."},
	CodeActivityStatusNotFound:         {614, http.StatusBadRequest, "ActivityStatus not found."},
	CodeFunnelStageNotFound:            {615, http.StatusBadRequest, "FunnelStage not found."},
	CodeLeadFunnelStageNotFound:        {616, http.StatusBadRequest, "LeadFunnelStage not found."},
	CodeTemperatureNotFound:            {617, http.StatusBadRequest, "Temperature not found."},
	CodeLeadTemperatureNotFound:        {618, http.StatusBadRequest, "LeadTemperature not found."},
	CodeStageChangeReasonNotFound:      {619, http.StatusBadRequest, "StageChangeReason not found."},
	CodeHobbyNotFound:                  {620, http.StatusBadRequest, "Hobby not found."},
	CodeQualificationNotFound:          {621, http.StatusBadRequest, "QualificationRequirement not found."},
	CodeCurrentResidenceNotFound:       {622, http.StatusBadRequest, "CurrentResidence not found."},
	CodeEmailReviewTypeNotFound:        {623, http.StatusBadRequest, "EmailReviewType not found."},
	CodeOutreachTypeNotFound:           {624, http.StatusBadRequest, "OutreachType not found."},
	CodeOutreachNotFound:               {625, http.StatusBadRequest, "Outreach not found."},
	CodeWebEmailNotFound:               {626, http.StatusBadRequest, "WebEmail not found."},
	CodeAssessmentNotFound:             {627, http.StatusBadRequest, "Assessment not found."},
	CodeAssessmentFormNotFound:         {628, http.StatusBadRequest, "Assessment Form not found."},
	CodeAssessmentCategoryNotFound:     {629, http.StatusBadRequest, "Assessment Category not found."},
	CodeAssessmentRowNotFound:          {630, http.StatusBadRequest, "Assessment Row not found."},
	CodeAssessmentCategoryMultiple:     {631, http.StatusBadRequest, "Only one row can be selected in a single-item category."},
	CodePhoneSinglePrimary:             {632, http.StatusBadRequest, "Only one phone can be marked as primary."},
	CodePhoneOrEmailRequired:           {633, http.StatusBadRequest, "Responsible person phone or email is required."},
	CodeActivityOwnerTypeInvalid:       {634, http.StatusBadRequest, "Invalid activity owner type."},
	CodeDuplicateTitle:                 {635, http.StatusBadRequest, "The title is already in use."},
	CodeReferralOrganizationRequired:   {636, http.StatusBadRequest, "Referral organization is required for this referrer type."},
	CodeReferralRepresentativeRequired: {637, http.StatusBadRequest, "Referral representative is required for this referrer type."},
	CodeValidation:                     {638, http.StatusBadRequest, "Validation error."},
	CodeActivityStatusRequired:         {639, http.StatusBadRequest, "Activity status is required."},
	CodeExportUnavailable:              {640, http.StatusBadRequest, "Export storage is not configured."},

	CodeUnauthorized: {401, http.StatusUnauthorized, "Unauthorized."},
	CodeInternal:     {500, http.StatusInternalServerError, "Internal server error."},
}

// Lookup returns the table entry for code. Unknown codes resolve to the
// internal error entry.
func Lookup(code Code) Entry {
	if e, ok := table[code]; ok {
		return e
	}
	return table[CodeInternal]
}

// Codes returns every registered code.
func Codes() []Code {
	codes := make([]Code, 0, len(table))
	for c := range table {
		codes = append(codes, c)
	}
	return codes
}
