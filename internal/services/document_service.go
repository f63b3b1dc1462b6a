package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sodo-hospital/admin-api/internal/models"
	"github.com/sodo-hospital/admin-api/internal/repository"
)

var (
	ErrDocumentNotFound      = errors.New("document not found")
	ErrUnknownTask           = errors.New("task does not exist")
	ErrUnknownUploader       = errors.New("uploader does not exist")
	ErrInvalidDocumentStatus = errors.New("unrecognized document status")
)

// DocumentService handles document business logic
type DocumentService struct {
	docRepo  repository.DocumentRepository
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository

	// now is swappable for tests
	now func() time.Time
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(docRepo repository.DocumentRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository) *DocumentService {
	return &DocumentService{
		docRepo:  docRepo,
		taskRepo: taskRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// CreateDocumentInput represents input for creating a document
type CreateDocumentInput struct {
	Name         string
	Type         string
	Status       models.DocumentStatus
	FileURL      string
	TaskID       uint64
	UploadedByID *uint64
}

// UpdateDocumentInput represents a partial update; nil fields are left untouched
type UpdateDocumentInput struct {
	Status       *models.DocumentStatus
	FileURL      *string
	UploadedByID *uint64
}

// ListDocuments returns documents, scoped to a task when taskID is non-nil,
// each hydrated with its uploader where one is set
func (s *DocumentService) ListDocuments(taskID *uint64) ([]models.Document, error) {
	docs, err := s.docRepo.List(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// CreateDocument creates a document attached to an existing task. UploadedAt
// is stamped with the current time exactly when a non-empty file URL is
// supplied; otherwise it stays unset.
func (s *DocumentService) CreateDocument(input CreateDocumentInput) (*models.Document, error) {
	if !input.Status.Valid() {
		return nil, ErrInvalidDocumentStatus
	}

	exists, err := s.taskRepo.Exists(input.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify task: %w", err)
	}
	if !exists {
		return nil, ErrUnknownTask
	}

	if input.UploadedByID != nil {
		uploaderExists, err := s.userRepo.Exists(*input.UploadedByID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify uploader: %w", err)
		}
		if !uploaderExists {
			return nil, ErrUnknownUploader
		}
	}

	doc := &models.Document{
		Name:         input.Name,
		Type:         input.Type,
		Status:       input.Status,
		FileURL:      input.FileURL,
		TaskID:       input.TaskID,
		UploadedByID: input.UploadedByID,
	}

	if input.FileURL != "" {
		uploadedAt := s.now()
		doc.UploadedAt = &uploadedAt
	}

	if err := s.docRepo.Create(doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return doc, nil
}

// UpdateDocument applies a partial merge over status, file URL and uploader.
// Supplying a non-empty file URL re-stamps UploadedAt to now, overwriting any
// prior value; status or uploader changes alone never touch it. Existence is
// checked up front, matching the task update path.
func (s *DocumentService) UpdateDocument(docID uint64, input UpdateDocumentInput) (*models.Document, error) {
	doc, err := s.docRepo.FindByID(docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidDocumentStatus
	}
	if input.UploadedByID != nil {
		uploaderExists, err := s.userRepo.Exists(*input.UploadedByID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify uploader: %w", err)
		}
		if !uploaderExists {
			return nil, ErrUnknownUploader
		}
	}

	if input.Status != nil {
		doc.Status = *input.Status
	}
	if input.UploadedByID != nil {
		doc.UploadedByID = input.UploadedByID
	}
	if input.FileURL != nil && *input.FileURL != "" {
		doc.FileURL = *input.FileURL
		uploadedAt := s.now()
		doc.UploadedAt = &uploadedAt
	}

	if err := s.docRepo.Update(doc); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	return doc, nil
}
