package dto

import (
	"time"

	"github.com/sodo-hospital/admin-api/internal/models"
)

// DocumentDTO represents a document in API responses, with the uploader
// hydrated when one is set
type DocumentDTO struct {
	ID           uint64                `json:"id"`
	Name         string                `json:"name"`
	Type         string                `json:"type"`
	Status       models.DocumentStatus `json:"status"`
	FileURL      string                `json:"file_url,omitempty"`
	UploadedAt   *time.Time            `json:"uploaded_at,omitempty"`
	TaskID       uint64                `json:"task_id"`
	UploadedByID *uint64               `json:"uploaded_by_id,omitempty"`
	UploadedBy   *UserDTO              `json:"uploaded_by,omitempty"`
}

// ToDocumentDTO converts a Document model to DocumentDTO
func ToDocumentDTO(doc models.Document) DocumentDTO {
	out := DocumentDTO{
		ID:           doc.ID,
		Name:         doc.Name,
		Type:         doc.Type,
		Status:       doc.Status,
		FileURL:      doc.FileURL,
		UploadedAt:   doc.UploadedAt,
		TaskID:       doc.TaskID,
		UploadedByID: doc.UploadedByID,
	}

	// Include uploader if preloaded
	if doc.UploadedBy != nil && doc.UploadedBy.ID != 0 {
		uploader := ToUserDTO(*doc.UploadedBy)
		out.UploadedBy = &uploader
	}

	return out
}

// ToDocumentDTOs converts a slice of Document models
func ToDocumentDTOs(docs []models.Document) []DocumentDTO {
	out := make([]DocumentDTO, len(docs))
	for i, d := range docs {
		out[i] = ToDocumentDTO(d)
	}
	return out
}
