package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	domain "github.com/anjaya02/task-based-web-app/domain/task"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// StatsCache is the subset of the cache layer the task service uses
// for the stats aggregation. A nil cache disables caching.
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// TaskService implements the task write path and the aggregate reads.
// List queries go through the Planner; this service adds validation,
// owner scoping, and stats caching on top of the repository.
type TaskService struct {
	repo    *TaskRepository
	planner *Planner
	cache   StatsCache
	sfGroup singleflight.Group // collapses concurrent stats misses
}

// NewTaskService creates a new TaskService. cache may be nil.
func NewTaskService(repo *TaskRepository, cache StatsCache) *TaskService {
	return &TaskService{
		repo:    repo,
		planner: NewPlanner(repo),
		cache:   cache,
	}
}

// List returns one page of the owner's tasks.
func (s *TaskService) List(_ context.Context, req ListTasksRequest) (*ListTasksResponse, error) {
	page, err := s.planner.List(ListQuery{
		OwnerID:  req.OwnerID,
		Search:   req.Search,
		Status:   req.Status,
		Priority: req.Priority,
		SortBy:   req.SortBy,
		Page:     req.Page,
		Limit:    req.Limit,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	resp := &ListTasksResponse{
		Tasks:      make([]TaskDTO, 0, len(page.Tasks)),
		Pagination: page.Pagination,
	}
	for i := range page.Tasks {
		resp.Tasks = append(resp.Tasks, toDTO(&page.Tasks[i], now))
	}
	return resp, nil
}

// Create validates and stores a new task. The owner comes from the
// authenticated caller; it is never taken from the task body.
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	if req.OwnerID == "" {
		return nil, errors.New("owner is required")
	}

	var verr ValidationErrors

	// Limits count characters, not bytes, so multibyte titles are not
	// penalized.
	title := strings.TrimSpace(req.Title)
	if title == "" {
		verr = verr.add("title", "Title is required")
	} else if utf8.RuneCountInString(title) > domain.MaxTitleLen {
		verr = verr.add("title", fmt.Sprintf("Title cannot be more than %d characters", domain.MaxTitleLen))
	}

	description := strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLen {
		verr = verr.add("description", fmt.Sprintf("Description cannot be more than %d characters", domain.MaxDescriptionLen))
	}

	status := domain.StatusPending
	if req.Status != "" {
		status = domain.Status(req.Status)
		if !domain.ValidStatus(status) {
			verr = verr.add("status", "Status must be pending, in-progress, or completed")
		}
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
		if !domain.ValidPriority(priority) {
			verr = verr.add("priority", "Priority must be low, medium, or high")
		}
	}

	now := time.Now()
	dueDate, derr := normalizeDueDate(req.DueDate, now)
	if derr != "" {
		verr = verr.add("dueDate", derr)
	}

	if len(verr) > 0 {
		return nil, verr
	}

	t := &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		OwnerID:     req.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(t); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, req.OwnerID)
	return t, nil
}

// Get fetches one task within the owner's scope.
func (s *TaskService) Get(_ context.Context, req GetTaskRequest) (*domain.Task, error) {
	return s.repo.FindByID(req.ID, req.OwnerID)
}

// Update applies the provided subset of mutable fields to a task the
// caller owns. Owner and id never change.
func (s *TaskService) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	t, err := s.repo.FindByID(req.ID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	var verr ValidationErrors
	now := time.Now()

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		switch {
		case title == "":
			verr = verr.add("title", "Title is required")
		case utf8.RuneCountInString(title) > domain.MaxTitleLen:
			verr = verr.add("title", fmt.Sprintf("Title cannot be more than %d characters", domain.MaxTitleLen))
		default:
			t.Title = title
		}
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if utf8.RuneCountInString(description) > domain.MaxDescriptionLen {
			verr = verr.add("description", fmt.Sprintf("Description cannot be more than %d characters", domain.MaxDescriptionLen))
		} else {
			t.Description = description
		}
	}

	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !domain.ValidStatus(status) {
			verr = verr.add("status", "Status must be pending, in-progress, or completed")
		} else {
			t.Status = status
		}
	}

	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		if !domain.ValidPriority(priority) {
			verr = verr.add("priority", "Priority must be low, medium, or high")
		} else {
			t.Priority = priority
		}
	}

	if req.DueDate != nil {
		dueDate, derr := normalizeDueDate(req.DueDate, now)
		if derr != "" {
			verr = verr.add("dueDate", derr)
		} else {
			t.DueDate = dueDate
		}
	}

	if len(verr) > 0 {
		return nil, verr
	}

	t.UpdatedAt = now
	if err := s.repo.Save(t); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, req.OwnerID)
	return t, nil
}

// Delete removes a task the caller owns.
func (s *TaskService) Delete(ctx context.Context, req DeleteTaskRequest) error {
	if err := s.repo.Delete(req.ID, req.OwnerID); err != nil {
		return err
	}
	s.invalidateStats(ctx, req.OwnerID)
	return nil
}

// Stats returns per-status and per-priority counts for an owner,
// cache-aside when a cache is configured.
func (s *TaskService) Stats(ctx context.Context, ownerID string) (*TaskStatsResponse, error) {
	key := statsCacheKey(ownerID)

	if s.cache != nil {
		var cached TaskStatsResponse
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("[tasks] Cache error for stats owner=%s: %v", ownerID, err)
		}
		if found {
			return &cached, nil
		}
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		byStatus, err := s.repo.CountByStatus(ownerID)
		if err != nil {
			return nil, err
		}
		byPriority, err := s.repo.CountByPriority(ownerID)
		if err != nil {
			return nil, err
		}

		stats := &TaskStatsResponse{
			Status:   make(map[string]int64, len(byStatus)),
			Priority: make(map[string]int64, len(byPriority)),
		}
		for k, n := range byStatus {
			stats.Status[string(k)] = n
		}
		for k, n := range byPriority {
			stats.Priority[string(k)] = n
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	stats := val.(*TaskStatsResponse)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats); err != nil {
			log.Printf("[tasks] Failed to cache stats owner=%s: %v", ownerID, err)
		}
	}
	return stats, nil
}

// invalidateStats drops the cached stats for an owner after a mutation.
func (s *TaskService) invalidateStats(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey(ownerID)); err != nil {
		log.Printf("[tasks] Failed to invalidate stats cache owner=%s: %v", ownerID, err)
	}
}

func statsCacheKey(ownerID string) string {
	return "stats:" + ownerID
}

// normalizeDueDate maps the request's due date (nil, "", "null", or a
// date) to the stored form and validates it against the due-date
// policy. Returns the normalized value and a field message on failure.
func normalizeDueDate(raw *string, now time.Time) (string, string) {
	if raw == nil {
		return "", ""
	}
	if err := domain.ValidateDueDate(*raw, now); err != nil {
		switch {
		case errors.Is(err, domain.ErrPastDueDate):
			return "", "Due date cannot be in the past"
		default:
			return "", "Due date must be a valid date"
		}
	}
	due, _ := domain.NormalizeDueDate(*raw)
	return due, ""
}
