package workers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/harshsongara/timetable/internal/database"
	"github.com/harshsongara/timetable/internal/queue"
)

// Notifier delivers achievement and streak notifications from the job queue.
// Delivery is a structured log line today; the dispatch, retry and DLQ
// plumbing is what an outbound channel would plug into.
type Notifier struct {
	users  database.UserRepositoryInterface
	jobs   queue.JobQueue // for re-enqueueing failed jobs with a bumped retry count
	logger *zap.Logger
}

// NewNotifier creates a notification worker.
func NewNotifier(users database.UserRepositoryInterface, jobs queue.JobQueue, logger *zap.Logger) *Notifier {
	return &Notifier{users: users, jobs: jobs, logger: logger}
}

// ProcessJob handles one queue message, acking on success and nacking with
// retry-or-DLQ semantics on failure.
func (n *Notifier) ProcessJob(ctx context.Context, msg *queue.Message) error {
	job := msg.Job

	switch job.Type {
	case queue.JobTypeAchievementUnlocked, queue.JobTypeStreakMilestone:
		if err := n.deliver(ctx, job); err != nil {
			return n.handleJobError(ctx, msg, job, err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	default:
		// Unknown job type, send to DLQ.
		if nackErr := msg.Nack(false); nackErr != nil {
			n.logger.Error("failed_to_nack_unknown_job", zap.Error(nackErr))
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (n *Notifier) deliver(ctx context.Context, job *queue.Job) error {
	user, err := n.users.GetByID(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	if !user.NotificationEnabled {
		n.logger.Debug("notification_skipped",
			zap.String("user_id", user.ID.String()),
			zap.String("job_type", string(job.Type)),
		)
		return nil
	}

	fields := []zap.Field{
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("job_type", string(job.Type)),
		zap.String("job_id", job.ID.String()),
	}
	if job.AchievementID != nil {
		fields = append(fields, zap.String("achievement_id", job.AchievementID.String()))
	}
	if name, ok := job.Metadata["achievement_name"].(string); ok {
		fields = append(fields, zap.String("achievement_name", name))
	}

	n.logger.Info("notification_sent", fields...)
	return nil
}

func (n *Notifier) handleJobError(ctx context.Context, msg *queue.Message, job *queue.Job, err error) error {
	if job.CanRetry() {
		job.IncrementRetry()
		n.logger.Warn("notification_job_failed",
			zap.String("job_id", job.ID.String()),
			zap.Int("attempt", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries),
			zap.Error(err),
		)

		// Re-enqueue a copy carrying the bumped retry count; a plain requeue
		// would redeliver the original body and retry forever.
		if enqueueErr := n.jobs.Enqueue(ctx, job); enqueueErr != nil {
			n.logger.Error("failed_to_reenqueue_job", zap.Error(enqueueErr))
			if nackErr := msg.Nack(false); nackErr != nil {
				n.logger.Error("failed_to_nack_job_to_dlq", zap.Error(nackErr))
			}
			return fmt.Errorf("job failed, re-enqueue failed: %w", err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			n.logger.Error("failed_to_ack_retried_job", zap.Error(ackErr))
		}
		return fmt.Errorf("job failed (will retry): %w", err)
	}

	n.logger.Error("notification_job_dead_lettered",
		zap.String("job_id", job.ID.String()),
		zap.Int("retries", job.RetryCount),
		zap.Error(err),
	)
	if nackErr := msg.Nack(false); nackErr != nil {
		n.logger.Error("failed_to_nack_job_to_dlq", zap.Error(nackErr))
	}
	return fmt.Errorf("job failed (max retries): %w", err)
}
