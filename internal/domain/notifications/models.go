package notifications

import "time"

const (
	// TypeAlert marks admin-facing submissions awaiting review.
	TypeAlert = "alert"
	// TypeMessage marks employee-facing decision and assignment notices.
	TypeMessage = "message"
)

type Notification struct {
	ID           string    `json:"id"`
	RecipientUID string    `json:"recipientUid"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Counts summarizes a recipient's inbox for the notification center's
// filter chips. Approvals are the subset of notices whose title
// mentions an approval, regardless of type.
type Counts struct {
	All       int `json:"all"`
	Unread    int `json:"unread"`
	Approvals int `json:"approvals"`
	Alerts    int `json:"alerts"`
	Messages  int `json:"messages"`
}
