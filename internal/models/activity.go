package models

import "time"

// Activity is the persistence model for a group activity log row.
type Activity struct {
	ActivityID string    `json:"activityID"` // Primary Key (e.g., UUID)
	GroupID    string    `json:"groupID"`
	UserID     string    `json:"userID"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Notification is the persistence model for a queued notification row.
type Notification struct {
	NotificationID string    `json:"notificationID"` // Primary Key (e.g., UUID)
	UserID         string    `json:"userID"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}
