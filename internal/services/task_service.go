package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sodo-hospital/admin-api/internal/logging"
	"github.com/sodo-hospital/admin-api/internal/models"
	"github.com/sodo-hospital/admin-api/internal/repository"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrUnknownAssignee = errors.New("assignee does not exist")
	ErrUnknownCreator  = errors.New("creator does not exist")
	ErrUnknownParent   = errors.New("parent task does not exist")
	ErrInvalidStatus   = errors.New("unrecognized task status")
	ErrInvalidPriority = errors.New("unrecognized task priority")
	ErrTaskTitleEmpty  = errors.New("title cannot be empty")
)

// taskPreloads are the relations hydrated into every task read.
var taskPreloads = []string{"Assignee", "Documents"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, notifRepo repository.NotificationRepository) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		notifRepo: notifRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title          string
	Description    string
	TaskType       string
	Status         models.TaskStatus
	Priority       models.TaskPriority
	DueDate        time.Time
	Location       string
	CompletedSteps []string
	TotalSteps     int
	CreatedAt      time.Time
	AssigneeID     uint64
	CreatorID      uint64
	ParentTaskID   *uint64
}

// UpdateTaskInput represents a partial update; nil fields are left untouched
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	TaskType       *string
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	DueDate        *time.Time
	Location       *string
	CompletedSteps *[]string
	TotalSteps     *int
	AssigneeID     *uint64
}

// ListTasks returns tasks matching the filter, hydrated with assignee and documents
func (s *TaskService) ListTasks(filter repository.TaskFilter) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a hydrated task, or nil (without error) when the id is
// unknown; absence is not exceptional here.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates a task after verifying every referenced record exists.
// The integrity policy is verify-on-create: dangling assignee, creator or
// parent references are rejected up front.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTaskTitleEmpty
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if err := s.ensureUserExists(input.AssigneeID, ErrUnknownAssignee); err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(input.CreatorID, ErrUnknownCreator); err != nil {
		return nil, err
	}
	if input.ParentTaskID != nil {
		exists, err := s.taskRepo.Exists(*input.ParentTaskID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify parent task: %w", err)
		}
		if !exists {
			return nil, ErrUnknownParent
		}
	}

	task := &models.Task{
		Title:          input.Title,
		Description:    input.Description,
		TaskType:       input.TaskType,
		Status:         input.Status,
		Priority:       input.Priority,
		DueDate:        input.DueDate,
		Location:       input.Location,
		CompletedSteps: models.StringSlice(input.CompletedSteps),
		TotalSteps:     input.TotalSteps,
		CreatedAt:      input.CreatedAt,
		AssigneeID:     input.AssigneeID,
		CreatorID:      input.CreatorID,
		ParentTaskID:   input.ParentTaskID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.notifyAssignee(task)

	return task, nil
}

// UpdateTask applies a partial merge: only non-nil input fields overwrite the
// stored record. Returns ErrTaskNotFound when the id does not resolve.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if input.AssigneeID != nil {
		if err := s.ensureUserExists(*input.AssigneeID, ErrUnknownAssignee); err != nil {
			return nil, err
		}
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTaskTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.TaskType != nil {
		task.TaskType = *input.TaskType
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}
	if input.Location != nil {
		task.Location = *input.Location
	}
	if input.CompletedSteps != nil {
		task.CompletedSteps = models.StringSlice(*input.CompletedSteps)
	}
	if input.TotalSteps != nil {
		task.TotalSteps = *input.TotalSteps
	}
	if input.AssigneeID != nil {
		task.AssigneeID = *input.AssigneeID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	// Read-after-write with relations
	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// DeleteTask hard-deletes a task. The policy is orphan-on-delete: attached
// documents and subtasks are left in place with dangling references.
func (s *TaskService) DeleteTask(taskID uint64) error {
	exists, err := s.taskRepo.Exists(taskID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}
	if !exists {
		return ErrTaskNotFound
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) ensureUserExists(userID uint64, sentinel error) error {
	exists, err := s.userRepo.Exists(userID)
	if err != nil {
		return fmt.Errorf("failed to verify user: %w", err)
	}
	if !exists {
		return sentinel
	}
	return nil
}

// notifyAssignee records an in-app notification for the task's assignee.
// Best effort: a failed notification never fails the task mutation.
func (s *TaskService) notifyAssignee(task *models.Task) {
	taskID := task.ID
	n := &models.Notification{
		Title:         "New task assigned",
		Message:       fmt.Sprintf("You have been assigned: %s", task.Title),
		Type:          models.NotificationTypeTask,
		UserID:        task.AssigneeID,
		RelatedTaskID: &taskID,
	}

	if err := s.notifRepo.Create(n); err != nil {
		logging.Logger.WithError(err).WithField("task_id", task.ID).Warn("Failed to create assignee notification")
	}
}
