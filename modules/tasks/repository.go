package tasks

import (
	"errors"
	"fmt"
	"strings"

	domain "github.com/anjaya02/task-based-web-app/domain/task"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when no task matches an id within the
// owner's scope. Callers cannot distinguish "does not exist" from
// "owned by someone else".
var ErrTaskNotFound = errors.New("task not found")

// Filter is the match predicate for task queries: the owner scope plus
// optional search, status, and priority conditions. Find and Count take
// the same Filter value so a page and its total can never disagree.
type Filter struct {
	OwnerID  string
	Search   string
	Status   domain.Status
	Priority domain.Priority
}

// SortKey selects the ordering strategy for Find.
type SortKey string

const (
	// SortCreatedAt orders newest first. This is the default.
	SortCreatedAt SortKey = "createdAt"
	// SortTitle orders by title ascending, case-insensitively.
	SortTitle SortKey = "title"
	// SortPriority orders by categorical rank (high, medium, low),
	// never by the lexical value of the priority strings.
	SortPriority SortKey = "priority"
)

// TaskRepository executes task queries against the database.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create saves a new task.
func (r *TaskRepository) Create(t *domain.Task) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by id within the owner's scope.
func (r *TaskRepository) FindByID(id, ownerID string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.First(&t, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// Save persists all mutable fields of an existing task. The update is
// conditioned on {id, owner} so a task can never be written across
// owner boundaries.
func (r *TaskRepository) Save(t *domain.Task) error {
	result := r.db.Model(&domain.Task{}).
		Where("id = ? AND owner_id = ?", t.ID, t.OwnerID).
		Select("title", "description", "status", "priority", "due_date", "updated_at").
		Updates(map[string]any{
			"title":       t.Title,
			"description": t.Description,
			"status":      t.Status,
			"priority":    t.Priority,
			"due_date":    t.DueDate,
			"updated_at":  t.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by id within the owner's scope. Deletion is
// immediate and final; there is no soft delete.
func (r *TaskRepository) Delete(id, ownerID string) error {
	result := r.db.Delete(&domain.Task{}, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Find executes the filter with the given sort strategy and page
// window and returns the matching slice of tasks.
func (r *TaskRepository) Find(f Filter, sort SortKey, offset, limit int) ([]domain.Task, error) {
	var out []domain.Task
	q := r.apply(f).Order(orderClause(sort)).Offset(offset).Limit(limit)
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return out, nil
}

// Count returns the number of tasks matching the filter. It depends
// only on the filter, never on the sort strategy used to fetch a page.
func (r *TaskRepository) Count(f Filter) (int64, error) {
	var n int64
	if err := r.apply(f).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return n, nil
}

// CountByStatus returns per-status task counts for an owner.
func (r *TaskRepository) CountByStatus(ownerID string) (map[domain.Status]int64, error) {
	return countGrouped[domain.Status](r.db, ownerID, "status")
}

// CountByPriority returns per-priority task counts for an owner.
func (r *TaskRepository) CountByPriority(ownerID string) (map[domain.Priority]int64, error) {
	return countGrouped[domain.Priority](r.db, ownerID, "priority")
}

// apply builds the WHERE clause for a filter. Every query starts from
// the owner scope; search matches title or description as a
// case-insensitive substring.
func (r *TaskRepository) apply(f Filter) *gorm.DB {
	q := r.db.Model(&domain.Task{}).Where("owner_id = ?", f.OwnerID)

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	return q
}

// orderClause maps a sort key to its ORDER BY expression. The priority
// sort projects a transient rank derived from the ordered priority
// list, so "high" rows always precede "medium" and "low" regardless of
// the strings' lexical order. Non-default sorts carry created_at as a
// tie-breaker so page windows stay stable across fetches.
func orderClause(sort SortKey) string {
	switch sort {
	case SortTitle:
		return "LOWER(title) ASC, created_at DESC"
	case SortPriority:
		var b strings.Builder
		b.WriteString("CASE priority")
		for _, p := range domain.Priorities {
			fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
		}
		b.WriteString(" ELSE 0 END DESC, created_at DESC")
		return b.String()
	default:
		return "created_at DESC"
	}
}

func countGrouped[K ~string](db *gorm.DB, ownerID, column string) (map[K]int64, error) {
	var rows []struct {
		Key   string
		Count int64
	}
	err := db.Model(&domain.Task{}).
		Select(column+" AS key, COUNT(*) AS count").
		Where("owner_id = ?", ownerID).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by %s: %w", column, err)
	}

	out := make(map[K]int64, len(rows))
	for _, row := range rows {
		out[K(row.Key)] = row.Count
	}
	return out, nil
}
