package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sodo-hospital/admin-api/internal/models"
	"github.com/sodo-hospital/admin-api/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService handles the notification read path
type NotificationService struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// ListForUser returns a user's notifications, optionally only unread ones
func (s *NotificationService) ListForUser(userID uint64, unreadOnly bool) ([]models.Notification, error) {
	notifications, err := s.notifRepo.ListByUser(userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marks a notification as read. Only the owning user may do so.
func (s *NotificationService) MarkRead(notificationID, userID uint64) (*models.Notification, error) {
	n, err := s.notifRepo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	if n.UserID != userID {
		// Do not leak existence of other users' notifications
		return nil, ErrNotificationNotFound
	}

	if n.IsRead {
		return n, nil
	}

	n.IsRead = true
	if err := s.notifRepo.Update(n); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return n, nil
}
