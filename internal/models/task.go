package models

import "time"

type TaskStatus string

const (
	TaskStatusPending     TaskStatus = "pending"
	TaskStatusInProgress  TaskStatus = "in-progress"
	TaskStatusUnderReview TaskStatus = "under-review"
	TaskStatusCompleted   TaskStatus = "completed"
)

// Valid reports whether s is one of the recognized task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusUnderReview, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is one of the recognized task priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is one unit of administrative work, e.g. a license application or a
// work permit. Subtasks reference their parent through ParentTaskID.
type Task struct {
	ID             uint64       `gorm:"primarykey" json:"id"`
	Title          string       `gorm:"not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description,omitempty"`
	TaskType       string       `gorm:"type:varchar(50);not null" json:"task_type"`
	Status         TaskStatus   `gorm:"type:varchar(20);not null;index:idx_tasks_status;index:idx_tasks_status_assignee,priority:1" json:"status"`
	Priority       TaskPriority `gorm:"type:varchar(10);not null" json:"priority"`
	DueDate        time.Time    `gorm:"not null" json:"due_date"`
	Location       string       `gorm:"type:varchar(255)" json:"location,omitempty"`
	CompletedSteps StringSlice  `gorm:"type:text" json:"completed_steps"`
	TotalSteps     int          `gorm:"not null" json:"total_steps"`
	CreatedAt      time.Time    `json:"created_at"`
	AssigneeID     uint64       `gorm:"not null;index:idx_tasks_assignee;index:idx_tasks_status_assignee,priority:2" json:"assignee_id"`
	CreatorID      uint64       `gorm:"not null;index" json:"creator_id"`
	ParentTaskID   *uint64      `gorm:"index" json:"parent_task_id,omitempty"`

	// Relations
	Assignee  *User      `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Creator   *User      `gorm:"foreignKey:CreatorID" json:"-"`
	Documents []Document `gorm:"foreignKey:TaskID" json:"documents,omitempty"`
	Subtasks  []Task     `gorm:"foreignKey:ParentTaskID" json:"-"`
}
