package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sodo-hospital/admin-api/internal/dto"
	apierrors "github.com/sodo-hospital/admin-api/internal/errors"
	"github.com/sodo-hospital/admin-api/internal/models"
	"github.com/sodo-hospital/admin-api/internal/repository"
	"github.com/sodo-hospital/admin-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns tasks, optionally narrowed by status and assignee.
// A task_type query parameter is accepted but does not narrow the result;
// the dashboard filters by type on the client.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var filter repository.TaskFilter

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		if !status.Valid() {
			apierrors.BadRequest(c, "Unrecognized status")
			return
		}
		filter.Status = &status
	}

	if assigneeStr := c.Query("assignee_id"); assigneeStr != "" {
		assigneeID, err := strconv.ParseUint(assigneeStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignee_id")
			return
		}
		filter.AssigneeID = &assigneeID
	}

	if taskType := c.Query("task_type"); taskType != "" {
		filter.TaskType = &taskType
	}

	tasks, err := h.taskService.ListTasks(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// GetTask returns a single hydrated task, or JSON null when the id is
// unknown. Absence is a valid answer here, not an error.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}

	if task == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task and returns its id.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title          string              `json:"title" binding:"required"`
		Description    string              `json:"description"`
		TaskType       string              `json:"task_type" binding:"required"`
		Status         models.TaskStatus   `json:"status" binding:"required,taskstatus"`
		Priority       models.TaskPriority `json:"priority" binding:"required,taskpriority"`
		DueDate        time.Time           `json:"due_date" binding:"required"`
		Location       string              `json:"location"`
		CompletedSteps *[]string           `json:"completed_steps" binding:"required"`
		TotalSteps     int                 `json:"total_steps" binding:"required"`
		CreatedAt      time.Time           `json:"created_at" binding:"required"`
		AssigneeID     uint64              `json:"assignee_id" binding:"required"`
		CreatorID      uint64              `json:"creator_id" binding:"required"`
		ParentTaskID   *uint64             `json:"parent_task_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		TaskType:       req.TaskType,
		Status:         req.Status,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
		Location:       req.Location,
		CompletedSteps: *req.CompletedSteps,
		TotalSteps:     req.TotalSteps,
		CreatedAt:      req.CreatedAt,
		AssigneeID:     req.AssigneeID,
		CreatorID:      req.CreatorID,
		ParentTaskID:   req.ParentTaskID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": task.ID})
}

// UpdateTask applies a partial merge to an existing task: only the fields
// present in the request body are overwritten.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseID(c)
	if !ok {
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := taskUpdateInputFromRaw(rawReq)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask hard-deletes a task. Attached documents and subtasks stay put.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// taskUpdateInputFromRaw builds a partial-update input from the raw request
// body, so absent fields and zero-valued fields are distinguishable.
func taskUpdateInputFromRaw(raw map[string]any) (services.UpdateTaskInput, error) {
	var input services.UpdateTaskInput

	if v, ok := raw["title"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, errors.New("title must be a string")
		}
		input.Title = &s
	}
	if v, ok := raw["description"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, errors.New("description must be a string")
		}
		input.Description = &s
	}
	if v, ok := raw["task_type"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, errors.New("task_type must be a string")
		}
		input.TaskType = &s
	}
	if v, ok := raw["status"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, errors.New("status must be a string")
		}
		status := models.TaskStatus(s)
		input.Status = &status
	}
	if v, ok := raw["priority"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, errors.New("priority must be a string")
		}
		priority := models.TaskPriority(s)
		input.Priority = &priority
	}
	if v, ok := raw["due_date"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, errors.New("due_date must be an RFC3339 string")
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return input, errors.New("due_date must be an RFC3339 string")
		}
		input.DueDate = &t
	}
	if v, ok := raw["location"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, errors.New("location must be a string")
		}
		input.Location = &s
	}
	if v, ok := raw["completed_steps"]; ok {
		items, ok := v.([]any)
		if !ok {
			return input, errors.New("completed_steps must be an array of strings")
		}
		steps := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return input, errors.New("completed_steps must be an array of strings")
			}
			steps = append(steps, s)
		}
		input.CompletedSteps = &steps
	}
	if v, ok := raw["total_steps"]; ok {
		n, ok := v.(float64)
		if !ok {
			return input, errors.New("total_steps must be a number")
		}
		total := int(n)
		input.TotalSteps = &total
	}
	if v, ok := raw["assignee_id"]; ok {
		n, ok := v.(float64)
		if !ok || n < 0 {
			return input, errors.New("assignee_id must be a positive number")
		}
		assigneeID := uint64(n)
		input.AssigneeID = &assigneeID
	}

	return input, nil
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrUnknownAssignee),
		errors.Is(err, services.ErrUnknownCreator),
		errors.Is(err, services.ErrUnknownParent),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrTaskTitleEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
