package task

import (
	"time"
)

// Status is the lifecycle state of a task.
type Status string

// Priority is the urgency level of a task.
type Priority string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"

	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const (
	// MaxTitleLen is the maximum title length after trimming.
	MaxTitleLen = 100
	// MaxDescriptionLen is the maximum description length after trimming.
	MaxDescriptionLen = 500
)

// Statuses lists all valid status values.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Priorities lists all valid priority values in ascending rank order.
// The position in this list defines the categorical rank used for
// priority sorting; it is not the lexical order of the strings.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s Status) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is one of the known priority values.
func ValidPriority(p Priority) bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// Rank returns the categorical rank of p: high=3, medium=2, low=1.
// Unknown values rank below low so they sort last.
func (p Priority) Rank() int {
	for i, v := range Priorities {
		if p == v {
			return i + 1
		}
	}
	return 0
}

// Task represents a to-do item owned by exactly one user.
//
// DueDate holds the calendar day as date text ("2006-01-02"); the empty
// string means the task has no due date. Comparisons against it go
// through the due-date policy in this package, never through raw string
// comparison.
type Task struct {
	ID          string   `gorm:"primaryKey;type:text"`
	Title       string   `gorm:"size:100;not null"`
	Description string   `gorm:"size:500"`
	Status      Status   `gorm:"size:20;not null;default:pending;index:idx_tasks_owner_status,priority:2"`
	Priority    Priority `gorm:"size:20;not null;default:medium;index:idx_tasks_owner_priority,priority:2"`
	DueDate     string   `gorm:"size:32"`
	OwnerID     string   `gorm:"type:text;not null;index:idx_tasks_owner_status,priority:1;index:idx_tasks_owner_priority,priority:1;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
