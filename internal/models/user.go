package models

import "time"

// User is a staff member who creates and works on administrative tasks.
// Users are immutable after creation; uniqueness of Email and
// TokenIdentifier is enforced by lookup-before-insert in the service layer,
// not by a store constraint.
type User struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Email           string    `gorm:"type:varchar(255);not null;index" json:"email"`
	AvatarURL       string    `gorm:"type:varchar(512)" json:"avatar_url,omitempty"`
	TokenIdentifier string    `gorm:"type:varchar(255);not null;index" json:"token_identifier"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	AssignedTasks []Task         `gorm:"foreignKey:AssigneeID" json:"-"`
	CreatedTasks  []Task         `gorm:"foreignKey:CreatorID" json:"-"`
	Notifications []Notification `gorm:"foreignKey:UserID" json:"-"`
}
