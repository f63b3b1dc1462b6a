package models

import "time"

type DocumentStatus string

const (
	DocumentStatusRequired DocumentStatus = "required"
	DocumentStatusUploaded DocumentStatus = "uploaded"
	DocumentStatusVerified DocumentStatus = "verified"
)

// Valid reports whether s is one of the recognized document statuses.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusRequired, DocumentStatusUploaded, DocumentStatusVerified:
		return true
	}
	return false
}

// Document is a piece of evidence or paperwork attached to exactly one Task.
// UploadedAt is stamped whenever a file URL is attached; it is never set
// independently.
type Document struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Type         string         `gorm:"type:varchar(50);not null" json:"type"`
	Status       DocumentStatus `gorm:"type:varchar(20);not null" json:"status"`
	FileURL      string         `gorm:"type:varchar(512)" json:"file_url,omitempty"`
	UploadedAt   *time.Time     `json:"uploaded_at,omitempty"`
	TaskID       uint64         `gorm:"not null;index" json:"task_id"`
	UploadedByID *uint64        `gorm:"index" json:"uploaded_by_id,omitempty"`

	// Relations
	UploadedBy *User `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}
