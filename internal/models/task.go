package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func IsValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func IsValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task represents a to-do item owned by exactly one user.
// OwnerID is set at creation and never changes. CompletedAt is written
// exactly once, the first time the task reaches "completed".
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate"`
	OwnerID     string       `json:"user"`
	Tags        []string     `json:"tags"`
	CompletedAt *time.Time   `json:"completedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TaskFilter defines the predicate applied when listing tasks.
// OwnerID is always set; the rest are optional and combined with AND.
type TaskFilter struct {
	OwnerID  string
	Search   string
	Status   string
	Priority string
}

// TaskUpdate carries a partial update: nil fields are left untouched.
// ClearDueDate distinguishes "dueDate: null" from an absent dueDate.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	Priority     *TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
	Tags         []string
}

// StatGroup is one bucket of the stats aggregation.
type StatGroup struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type TaskStats struct {
	Total      int         `json:"total"`
	ByStatus   []StatGroup `json:"byStatus"`
	ByPriority []StatGroup `json:"byPriority"`
}
