package repository

import (
	"gorm.io/gorm"

	"github.com/sodo-hospital/admin-api/internal/models"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create inserts a new notification
func (r *GormNotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByUser retrieves a user's notifications, newest first
func (r *GormNotificationRepository) ListByUser(userID uint64, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification

	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}

// Update persists all fields of a notification
func (r *GormNotificationRepository) Update(n *models.Notification) error {
	return r.db.Save(n).Error
}
