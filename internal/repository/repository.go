package repository

import (
	"github.com/sodo-hospital/admin-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter, with assignee and documents preloaded
	List(filter TaskFilter) ([]models.Task, error)

	// Update persists all fields of a task
	Update(task *models.Task) error

	// Delete hard-deletes a task. Documents and subtasks are left in place.
	Delete(id uint64) error

	// Exists reports whether a task with the given ID exists
	Exists(id uint64) (bool, error)
}

// TaskFilter holds filtering options for listing tasks.
//
// TaskType is accepted for API compatibility with the dashboard but is not
// applied as a predicate; type narrowing happens on the client.
type TaskFilter struct {
	Status     *models.TaskStatus
	AssigneeID *uint64
	TaskType   *string
}

// DocumentRepository defines the interface for document data access
type DocumentRepository interface {
	// Create inserts a new document
	Create(doc *models.Document) error

	// FindByID finds a document by ID
	FindByID(id uint64) (*models.Document, error)

	// List retrieves documents, scoped to a task when taskID is non-nil,
	// with the uploader preloaded
	List(taskID *uint64) ([]models.Document, error)

	// Update persists all fields of a document
	Update(doc *models.Document) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByToken finds a user by token identifier
	FindByToken(tokenIdentifier string) (*models.User, error)

	// List retrieves all users
	List() ([]models.User, error)

	// Exists reports whether a user with the given ID exists
	Exists(id uint64) (bool, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create inserts a new notification
	Create(n *models.Notification) error

	// FindByID finds a notification by ID
	FindByID(id uint64) (*models.Notification, error)

	// ListByUser retrieves a user's notifications, optionally only unread ones
	ListByUser(userID uint64, unreadOnly bool) ([]models.Notification, error)

	// Update persists all fields of a notification
	Update(n *models.Notification) error
}
