package dto

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentFormRequest builds a whole form in one payload. Categories and
// rows with an id are updated, without one created, and stored ones not
// listed are deleted.
type AssessmentFormRequest struct {
	Title      string                      `json:"title" binding:"required,max=255"`
	Categories []AssessmentCategoryRequest `json:"categories" binding:"omitempty,dive"`
}

type AssessmentCategoryRequest struct {
	ID           *uuid.UUID             `json:"id"`
	Title        string                 `json:"title" binding:"required,max=255"`
	MultiItem    bool                   `json:"multiItem"`
	DisplayOrder int                    `json:"displayOrder"`
	Rows         []AssessmentRowRequest `json:"rows" binding:"omitempty,dive"`
}

type AssessmentRowRequest struct {
	ID           *uuid.UUID `json:"id"`
	Title        string     `json:"title" binding:"required,max=255"`
	Score        int        `json:"score"`
	DisplayOrder int        `json:"displayOrder"`
}

// AssessmentRequest represents the request to add or edit an assessment
type AssessmentRequest struct {
	LeadID        *uuid.UUID  `json:"leadId"`
	FormID        uuid.UUID   `json:"formId" binding:"required"`
	Date          time.Time   `json:"date" binding:"required"`
	PerformedByID *uuid.UUID  `json:"performedById"`
	Notes         string      `json:"notes"`
	RowIDs        []uuid.UUID `json:"rowIds"`
}
