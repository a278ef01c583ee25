package tasks

import (
	"errors"
	"fmt"

	domain "github.com/anjaya02/task-based-web-app/domain/task"
)

// ErrInvalidQuery is returned when list criteria contain values outside
// the known enums or an out-of-range page window. Invalid criteria are
// rejected, never silently dropped from the filter.
var ErrInvalidQuery = errors.New("invalid query")

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ListQuery carries caller-supplied list criteria. OwnerID comes from
// the authenticated request, never from client input; all other fields
// are optional (zero value = not set).
type ListQuery struct {
	OwnerID  string
	Search   string
	Status   string
	Priority string
	SortBy   string
	Page     int
	Limit    int
}

// Pagination describes the page window actually returned together with
// the total match count for the filter.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// TaskPage is one page of tasks plus its pagination metadata.
type TaskPage struct {
	Tasks      []domain.Task
	Pagination Pagination
}

// Planner turns list criteria into repository queries: it builds the
// filter predicate, picks the sort strategy, and computes pagination
// metadata. Total always comes from Count over the same filter used
// for the page fetch, whichever sort strategy was chosen.
type Planner struct {
	repo *TaskRepository
}

// NewPlanner creates a new Planner over the given repository.
func NewPlanner(repo *TaskRepository) *Planner {
	return &Planner{repo: repo}
}

// List returns the requested page of the owner's tasks. The read has
// no side effects.
func (p *Planner) List(q ListQuery) (*TaskPage, error) {
	filter, sort, page, limit, err := p.plan(q)
	if err != nil {
		return nil, err
	}

	tasks, err := p.repo.Find(filter, sort, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	total, err := p.repo.Count(filter)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return &TaskPage{
		Tasks: tasks,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// plan validates the criteria and resolves defaults. Owner is always
// part of the filter; it is the one field that cannot be absent.
func (p *Planner) plan(q ListQuery) (Filter, SortKey, int, int, error) {
	if q.OwnerID == "" {
		return Filter{}, "", 0, 0, fmt.Errorf("%w: owner is required", ErrInvalidQuery)
	}

	filter := Filter{
		OwnerID: q.OwnerID,
		Search:  q.Search,
	}

	if q.Status != "" {
		s := domain.Status(q.Status)
		if !domain.ValidStatus(s) {
			return Filter{}, "", 0, 0, fmt.Errorf("%w: unknown status %q", ErrInvalidQuery, q.Status)
		}
		filter.Status = s
	}

	if q.Priority != "" {
		pr := domain.Priority(q.Priority)
		if !domain.ValidPriority(pr) {
			return Filter{}, "", 0, 0, fmt.Errorf("%w: unknown priority %q", ErrInvalidQuery, q.Priority)
		}
		filter.Priority = pr
	}

	sort := SortCreatedAt
	switch SortKey(q.SortBy) {
	case "", SortCreatedAt:
	case SortTitle:
		sort = SortTitle
	case SortPriority:
		sort = SortPriority
	default:
		return Filter{}, "", 0, 0, fmt.Errorf("%w: unknown sortBy %q", ErrInvalidQuery, q.SortBy)
	}

	page := q.Page
	if page == 0 {
		page = defaultPage
	}
	if page < 1 {
		return Filter{}, "", 0, 0, fmt.Errorf("%w: page must be positive", ErrInvalidQuery)
	}

	limit := q.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 {
		return Filter{}, "", 0, 0, fmt.Errorf("%w: limit must be positive", ErrInvalidQuery)
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return filter, sort, page, limit, nil
}
