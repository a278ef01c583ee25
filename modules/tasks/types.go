package tasks

import (
	"time"

	domain "github.com/anjaya02/task-based-web-app/domain/task"
)

// TaskDTO is the outbound wire shape of a task. The owner reference is
// never serialized; Overdue is computed at read time from the due-date
// policy.
type TaskDTO struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     string    `json:"dueDate,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Overdue     bool      `json:"overdue"`
}

// toDTO converts a task entity to its wire shape as of now.
func toDTO(t *domain.Task, now time.Time) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Overdue:     t.Overdue(now),
	}
}

// CreateTaskRequest creates a task for an owner. DueDate is a pointer
// so an omitted field, an explicit null, and an empty string all read
// the same way: no due date.
type CreateTaskRequest struct {
	OwnerID     string  `json:"owner_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Task TaskDTO `json:"task"`
}

// GetTaskRequest fetches one task within the owner's scope.
type GetTaskRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

// ListTasksRequest carries list criteria across the service boundary.
type ListTasksRequest struct {
	OwnerID  string `json:"owner_id"`
	Search   string `json:"search"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	SortBy   string `json:"sortBy"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

// ListTasksResponse is one page of tasks with pagination metadata.
type ListTasksResponse struct {
	Tasks      []TaskDTO  `json:"tasks"`
	Pagination Pagination `json:"pagination"`
}

// UpdateTaskRequest mutates a subset of a task's mutable fields. Nil
// pointers leave the field unchanged; for DueDate an empty string
// clears the date.
type UpdateTaskRequest struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// DeleteTaskRequest removes a task within the owner's scope.
type DeleteTaskRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

// DeleteTaskResponse reports a completed deletion.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// TaskStatsRequest asks for an owner's per-status and per-priority counts.
type TaskStatsRequest struct {
	OwnerID string `json:"owner_id"`
}

// TaskStatsResponse carries aggregate task counts for an owner.
type TaskStatsResponse struct {
	Status   map[string]int64 `json:"status"`
	Priority map[string]int64 `json:"priority"`
}
