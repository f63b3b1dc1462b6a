package repository

import (
	"gorm.io/gorm"

	"github.com/sodo-hospital/admin-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching the filter. The combined status+assignee
// predicate is served by the compound index, the single predicates by their
// own indexes; with no predicates this is a full scan. No ordering is
// applied; callers sort as needed.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Preload("Assignee").Preload("Documents")

	switch {
	case filter.Status != nil && filter.AssigneeID != nil:
		query = query.Where("status = ? AND assignee_id = ?", *filter.Status, *filter.AssigneeID)
	case filter.Status != nil:
		query = query.Where("status = ?", *filter.Status)
	case filter.AssigneeID != nil:
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}

	// filter.TaskType is deliberately not applied; see TaskFilter.

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update persists all fields of a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete hard-deletes a task. Attached documents and subtasks keep their
// references and become orphans.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// Exists reports whether a task with the given ID exists
func (r *GormTaskRepository) Exists(id uint64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
