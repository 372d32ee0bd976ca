package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"seniorcare-lead-api/internal/domain"
)

// modelInfo holds information about a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

// allModels lists every entity in dependency order: lookups before the
// entities pointing at them.
func allModels() []modelInfo {
	return []modelInfo{
		{&domain.Space{}, "spaces"},
		{&domain.User{}, "users"},
		{&domain.CareType{}, "care_types"},
		{&domain.PaymentSource{}, "payment_sources"},
		{&domain.Facility{}, "facilities"},
		{&domain.Temperature{}, "temperatures"},
		{&domain.FunnelStage{}, "funnel_stages"},
		{&domain.ActivityStatus{}, "activity_statuses"},
		{&domain.ActivityType{}, "activity_types"},
		{&domain.ReferrerType{}, "referrer_types"},
		{&domain.OutreachType{}, "outreach_types"},
		{&domain.Hobby{}, "hobbies"},
		{&domain.QualificationRequirement{}, "qualification_requirements"},
		{&domain.StageChangeReason{}, "stage_change_reasons"},
		{&domain.StateChangeReason{}, "state_change_reasons"},
		{&domain.CurrentResidence{}, "current_residences"},
		{&domain.EmailReviewType{}, "email_review_types"},
		{&domain.Organization{}, "organizations"},
		{&domain.OrganizationPhone{}, "organization_phones"},
		{&domain.Contact{}, "contacts"},
		{&domain.ContactPhone{}, "contact_phones"},
		{&domain.Lead{}, "leads"},
		{&domain.Referral{}, "referrals"},
		{&domain.ReferralPhone{}, "referral_phones"},
		{&domain.Activity{}, "activities"},
		{&domain.LeadFunnelStage{}, "lead_funnel_stages"},
		{&domain.LeadTemperature{}, "lead_temperatures"},
		{&domain.AssessmentForm{}, "assessment_forms"},
		{&domain.AssessmentCategory{}, "assessment_categories"},
		{&domain.AssessmentCategoryRow{}, "assessment_category_rows"},
		{&domain.Assessment{}, "assessments"},
		{&domain.AssessmentRow{}, "assessment_rows"},
		{&domain.Outreach{}, "outreaches"},
		{&domain.WebEmail{}, "web_emails"},
		{&domain.ChangeLog{}, "change_logs"},
	}
}

// AutoMigrate runs GORM auto-migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	infos := allModels()
	models := make([]interface{}, len(infos))
	for i, m := range infos {
		models[i] = m.model
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}

// SafeAutoMigrate migrates the models one at a time so a failure names the
// table that broke.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	models := allModels()

	created := 0
	for _, m := range models {
		existed := migrator.HasTable(m.model)
		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}
		if !existed {
			created++
		}
		logger.Debug("Migrated table", zap.String("table", m.tableName), zap.Bool("was_existing", existed))
	}

	logger.Info("Auto-migration completed",
		zap.Int("tables", len(models)),
		zap.Int("created", created),
	)
	return nil
}

// SafeAutoMigrateWithRetry runs SafeAutoMigrate up to maxRetries times with a
// linear backoff.
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = SafeAutoMigrate(db, logger); err == nil {
			return nil
		}
		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			time.Sleep(backoff)
		}
	}
	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
