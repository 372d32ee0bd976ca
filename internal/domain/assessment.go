package domain

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentForm is a scored questionnaire made of categories and rows.
type AssessmentForm struct {
	BaseModel
	SpaceID    uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:uq_assessment_forms_space_title,priority:1" json:"spaceId"`
	Title      string               `gorm:"type:varchar(255);not null;uniqueIndex:uq_assessment_forms_space_title,priority:2" json:"title"`
	Categories []AssessmentCategory `gorm:"foreignKey:FormID" json:"categories"`
}

// AssessmentCategory groups rows. Without MultiItem only one row of the
// category may be selected per assessment.
type AssessmentCategory struct {
	BaseModel
	FormID       uuid.UUID               `gorm:"type:uuid;not null;index:idx_assessment_categories_form_id" json:"formId"`
	Title        string                  `gorm:"type:varchar(255);not null" json:"title"`
	MultiItem    bool                    `gorm:"not null" json:"multiItem"`
	DisplayOrder int                     `gorm:"not null" json:"displayOrder"`
	Rows         []AssessmentCategoryRow `gorm:"foreignKey:CategoryID" json:"rows"`
}

// AssessmentCategoryRow is a selectable answer with its score.
type AssessmentCategoryRow struct {
	BaseModel
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;index:idx_assessment_category_rows_category_id" json:"categoryId"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Score        int       `gorm:"not null" json:"score"`
	DisplayOrder int       `gorm:"not null" json:"displayOrder"`
}

// Assessment is a dated evaluation of a lead against a form.
type Assessment struct {
	BaseModel
	SpaceID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_assessments_space_id" json:"spaceId"`
	LeadID        *uuid.UUID      `gorm:"type:uuid;index:idx_assessments_lead_id" json:"leadId"`
	FormID        uuid.UUID       `gorm:"type:uuid;not null" json:"formId"`
	Form          *AssessmentForm `gorm:"foreignKey:FormID" json:"form,omitempty"`
	Date          time.Time       `gorm:"not null" json:"date"`
	PerformedByID *uuid.UUID      `gorm:"type:uuid" json:"performedById"`
	PerformedBy   *User           `gorm:"foreignKey:PerformedByID" json:"performedBy,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Score         int             `gorm:"not null" json:"score"`
	Rows          []AssessmentRow `gorm:"foreignKey:AssessmentID" json:"rows"`
}

// AssessmentRow is a selected answer. Score is copied from the form row at
// save time so later form edits do not rewrite history.
type AssessmentRow struct {
	BaseModel
	AssessmentID uuid.UUID              `gorm:"type:uuid;not null;index:idx_assessment_rows_assessment_id" json:"assessmentId"`
	RowID        uuid.UUID              `gorm:"type:uuid;not null" json:"rowId"`
	Row          *AssessmentCategoryRow `gorm:"foreignKey:RowID" json:"row,omitempty"`
	Score        int                    `gorm:"not null" json:"score"`
}

func (AssessmentForm) TableName() string {
	return "assessment_forms"
}

func (AssessmentCategory) TableName() string {
	return "assessment_categories"
}

func (AssessmentCategoryRow) TableName() string {
	return "assessment_category_rows"
}

func (Assessment) TableName() string {
	return "assessments"
}

func (AssessmentRow) TableName() string {
	return "assessment_rows"
}
