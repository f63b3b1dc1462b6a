package repository

import (
	"gorm.io/gorm"

	"github.com/sodo-hospital/admin-api/internal/models"
)

// GormDocumentRepository is a GORM implementation of DocumentRepository
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Create inserts a new document
func (r *GormDocumentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

// FindByID finds a document by ID
func (r *GormDocumentRepository) FindByID(id uint64) (*models.Document, error) {
	var doc models.Document
	if err := r.db.First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// List retrieves documents with the uploader preloaded. A nil taskID fetches
// every document in the store; acceptable at this system's size.
func (r *GormDocumentRepository) List(taskID *uint64) ([]models.Document, error) {
	var docs []models.Document

	query := r.db.Preload("UploadedBy")
	if taskID != nil {
		query = query.Where("task_id = ?", *taskID)
	}

	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}

	return docs, nil
}

// Update persists all fields of a document
func (r *GormDocumentRepository) Update(doc *models.Document) error {
	return r.db.Save(doc).Error
}
