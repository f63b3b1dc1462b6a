package models

import "time"

type NotificationType string

const (
	NotificationTypeTask     NotificationType = "task"
	NotificationTypeDocument NotificationType = "document"
	NotificationTypeSystem   NotificationType = "system"
)

// Notification is an in-app message for a single user, optionally linked to
// the task it concerns.
type Notification struct {
	ID            uint64           `gorm:"primarykey" json:"id"`
	Title         string           `gorm:"not null" json:"title"`
	Message       string           `gorm:"type:text;not null" json:"message"`
	Type          NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	IsRead        bool             `gorm:"not null;default:false;index:idx_notifications_user_read,priority:2" json:"is_read"`
	CreatedAt     time.Time        `json:"created_at"`
	UserID        uint64           `gorm:"not null;index;index:idx_notifications_user_read,priority:1" json:"user_id"`
	RelatedTaskID *uint64          `json:"related_task_id,omitempty"`
}
