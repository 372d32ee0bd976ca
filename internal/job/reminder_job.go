package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seniorcare-lead-api/internal/client"
	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/metrics"
	"seniorcare-lead-api/internal/repository"
)

// ReminderSource is the slice of ActivityRepository the job needs
type ReminderSource interface {
	FindDueReminders(ctx context.Context, q repository.ReminderQuery) ([]domain.Activity, error)
	MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkReminderFailed(ctx context.Context, id uuid.UUID, at time.Time) (int, error)
}

const (
	defaultReminderAttempts   = 5
	defaultReminderRetryAfter = 15 * time.Minute
	// pages read per run when the batch keeps filling up
	maxReminderPages = 10
)

// ReminderOptions tunes the reminder job. Zero values take the defaults;
// a Batch of zero reads every due reminder in one page.
type ReminderOptions struct {
	Batch       int
	MaxAttempts int
	RetryAfter  time.Duration
}

// ReminderJob notifies assignees of activities whose reminder date passed
type ReminderJob struct {
	activities    ReminderSource
	notifications client.NotificationClient
	metrics       *metrics.Metrics
	logger        *zap.Logger
	opts          ReminderOptions
	now           func() time.Time
}

// NewReminderJob creates a new ReminderJob instance
func NewReminderJob(
	activities ReminderSource,
	notifications client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts ReminderOptions,
) *ReminderJob {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultReminderAttempts
	}
	if opts.RetryAfter <= 0 {
		opts.RetryAfter = defaultReminderRetryAfter
	}
	return &ReminderJob{
		activities:    activities,
		notifications: notifications,
		metrics:       m,
		logger:        logger,
		opts:          opts,
		now:           time.Now,
	}
}

// Run sends one reminder per due activity. Only delivered reminders are
// stamped; a failed send is retried after RetryAfter, up to MaxAttempts.
func (j *ReminderJob) Run() {
	j.RunContext(context.Background())
}

func (j *ReminderJob) RunContext(ctx context.Context) {
	now := j.now().UTC()

	var seen []uuid.UUID
	due, sent, failed := 0, 0, 0
	for page := 0; page < maxReminderPages; page++ {
		batch, err := j.activities.FindDueReminders(ctx, repository.ReminderQuery{
			Now:         now,
			RetryBefore: now.Add(-j.opts.RetryAfter),
			MaxAttempts: j.opts.MaxAttempts,
			ExcludeIDs:  seen,
			Limit:       j.opts.Batch,
		})
		if err != nil {
			j.logger.Error("Failed to find due reminders", zap.Error(err))
			break
		}
		due += len(batch)

		for _, activity := range batch {
			seen = append(seen, activity.ID)
			if j.remind(ctx, activity, now) {
				sent++
			} else {
				failed++
			}
		}

		if j.opts.Batch <= 0 || len(batch) < j.opts.Batch {
			break
		}
	}

	if due == 0 {
		j.logger.Debug("No due reminders")
		return
	}
	j.logger.Info("Reminder job completed",
		zap.Int("due", due),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)
}

func (j *ReminderJob) remind(ctx context.Context, activity domain.Activity, now time.Time) bool {
	if err := j.notifications.SendNotification(ctx, reminderEvent(activity, now)); err != nil {
		attempts, markErr := j.activities.MarkReminderFailed(ctx, activity.ID, now)
		if markErr != nil {
			j.logger.Error("Failed to record reminder failure",
				zap.String("activity_id", activity.ID.String()),
				zap.Error(markErr),
			)
		}
		fields := []zap.Field{
			zap.String("activity_id", activity.ID.String()),
			zap.Int("attempts", attempts),
			zap.Error(err),
		}
		if attempts >= j.opts.MaxAttempts {
			j.logger.Warn("Giving up on reminder", fields...)
		} else {
			j.logger.Warn("Failed to send reminder", fields...)
		}
		return false
	}
	if err := j.activities.MarkReminded(ctx, activity.ID, now); err != nil {
		j.logger.Error("Failed to mark activity reminded",
			zap.String("activity_id", activity.ID.String()),
			zap.Error(err),
		)
		return false
	}
	j.metrics.IncrementReminderSent()
	return true
}

func reminderEvent(activity domain.Activity, now time.Time) client.NotificationEvent {
	event := client.NotificationEvent{
		Type:         client.NotificationActivityReminder,
		ActorID:      *activity.AssignToID,
		TargetUserID: *activity.AssignToID,
		SpaceID:      activity.SpaceID,
		ResourceType: "activity",
		ResourceID:   activity.ID,
		ResourceName: activity.Title,
		Metadata: map[string]interface{}{
			"ownerType":    activity.OwnerType,
			"reminderDate": activity.ReminderDate.UTC().Format(time.RFC3339),
		},
		OccurredAt: now.Format(time.RFC3339),
	}
	if activity.DueDate != nil {
		event.Metadata["dueDate"] = activity.DueDate.UTC().Format(time.RFC3339)
	}
	return event
}
