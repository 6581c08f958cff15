package domain

import "time"

// Activity is an append-only audit trail entry for a group. Activity writes
// are best-effort and happen after the financial commit.
type Activity struct {
	ActivityID string    `json:"activityID"`
	GroupID    string    `json:"groupID"`
	UserID     string    `json:"userID"` // Actor
	Action     string    `json:"action"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Notification is a user-visible message queued for out-of-band delivery.
type Notification struct {
	NotificationID string    `json:"notificationID"`
	UserID         string    `json:"userID"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}
