package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vikoba/vikoba_backend/internal/apperrors"
	"github.com/vikoba/vikoba_backend/internal/core/domain"
	portsrepo "github.com/vikoba/vikoba_backend/internal/core/ports/repositories"
	"github.com/vikoba/vikoba_backend/internal/utils/mapping"
)

type PgxActivityRepository struct {
	BaseRepository
}

// newPgxActivityRepository creates a new repository for activity and notification data.
func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityWriter {
	return &PgxActivityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxActivityRepository implements portsrepo.ActivityWriter
var _ portsrepo.ActivityWriter = (*PgxActivityRepository)(nil)

// SaveActivity appends an activity log entry.
func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	m := mapping.ToModelActivity(activity)
	query := `
		INSERT INTO activities (activity_id, group_id, user_id, action, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.ActivityID, m.GroupID, m.UserID, m.Action, m.Detail, m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert activity "+m.ActivityID, err)
	}
	return nil
}

// SaveNotification queues a user-visible notification.
func (r *PgxActivityRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)
	query := `
		INSERT INTO notifications (notification_id, user_id, title, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.NotificationID, m.UserID, m.Title, m.Body, m.IsRead, m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert notification "+m.NotificationID, err)
	}
	return nil
}
