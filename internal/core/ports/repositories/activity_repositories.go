package repositories

import (
	"context"

	"github.com/vikoba/vikoba_backend/internal/core/domain"
)

// ActivityWriter defines fire-and-forget append operations for the activity
// log and notification queue. Failures here must never roll back a committed
// financial update; callers log and swallow errors.
type ActivityWriter interface {
	// SaveActivity appends an activity log entry.
	SaveActivity(ctx context.Context, activity domain.Activity) error

	// SaveNotification queues a user-visible notification.
	SaveNotification(ctx context.Context, notification domain.Notification) error
}
