package dto

import (
	"time"

	"github.com/sodo-hospital/admin-api/internal/models"
)

// TaskDTO represents a task in API responses, hydrated with its assignee and
// documents
type TaskDTO struct {
	ID             uint64              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description,omitempty"`
	TaskType       string              `json:"task_type"`
	Status         models.TaskStatus   `json:"status"`
	Priority       models.TaskPriority `json:"priority"`
	DueDate        time.Time           `json:"due_date"`
	Location       string              `json:"location,omitempty"`
	CompletedSteps []string            `json:"completed_steps"`
	TotalSteps     int                 `json:"total_steps"`
	CreatedAt      time.Time           `json:"created_at"`
	AssigneeID     uint64              `json:"assignee_id"`
	CreatorID      uint64              `json:"creator_id"`
	ParentTaskID   *uint64             `json:"parent_task_id,omitempty"`
	Assignee       *UserDTO            `json:"assignee,omitempty"`
	Documents      []DocumentDTO       `json:"documents"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	out := TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		TaskType:       task.TaskType,
		Status:         task.Status,
		Priority:       task.Priority,
		DueDate:        task.DueDate,
		Location:       task.Location,
		CompletedSteps: task.CompletedSteps,
		TotalSteps:     task.TotalSteps,
		CreatedAt:      task.CreatedAt,
		AssigneeID:     task.AssigneeID,
		CreatorID:      task.CreatorID,
		ParentTaskID:   task.ParentTaskID,
		Documents:      ToDocumentDTOs(task.Documents),
	}

	if out.CompletedSteps == nil {
		out.CompletedSteps = []string{}
	}

	// Include assignee if preloaded
	if task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserDTO(*task.Assignee)
		out.Assignee = &assignee
	}

	return out
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}
