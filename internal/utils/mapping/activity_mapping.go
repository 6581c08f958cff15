package mapping

import (
	"github.com/vikoba/vikoba_backend/internal/core/domain"
	"github.com/vikoba/vikoba_backend/internal/models"
)

// ToModelActivity converts a domain.Activity to its persistence model.
func ToModelActivity(a domain.Activity) models.Activity {
	return models.Activity{
		ActivityID: a.ActivityID,
		GroupID:    a.GroupID,
		UserID:     a.UserID,
		Action:     a.Action,
		Detail:     a.Detail,
		CreatedAt:  a.CreatedAt,
	}
}

// ToModelNotification converts a domain.Notification to its persistence model.
func ToModelNotification(n domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: n.NotificationID,
		UserID:         n.UserID,
		Title:          n.Title,
		Body:           n.Body,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}
