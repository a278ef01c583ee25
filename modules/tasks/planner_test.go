package tasks

import (
	"errors"
	"fmt"
	"testing"
	"time"

	domain "github.com/anjaya02/task-based-web-app/domain/task"
)

func TestPlanner_PaginationMetadata(t *testing.T) {
	repo := setupTestRepo(t)
	planner := NewPlanner(repo)
	base := time.Now()

	for i := 0; i < 25; i++ {
		seedTask(t, repo, "owner-1", fmt.Sprintf("task %02d", i), domain.StatusPending, domain.PriorityMedium, base.Add(time.Duration(i)*time.Second))
	}

	page, err := planner.List(ListQuery{OwnerID: "owner-1", Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(page.Tasks) != 5 {
		t.Errorf("page 3 has %d tasks, want 5", len(page.Tasks))
	}
	want := Pagination{Page: 3, Limit: 10, Total: 25, Pages: 3}
	if page.Pagination != want {
		t.Errorf("Pagination = %+v, want %+v", page.Pagination, want)
	}
}

func TestPlanner_Defaults(t *testing.T) {
	repo := setupTestRepo(t)
	planner := NewPlanner(repo)
	base := time.Now()

	for i := 0; i < 12; i++ {
		seedTask(t, repo, "owner-1", fmt.Sprintf("task %02d", i), domain.StatusPending, domain.PriorityMedium, base.Add(time.Duration(i)*time.Second))
	}

	page, err := planner.List(ListQuery{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(page.Tasks) != 10 {
		t.Errorf("default page has %d tasks, want 10", len(page.Tasks))
	}
	if page.Pagination.Page != 1 || page.Pagination.Limit != 10 {
		t.Errorf("Pagination = %+v, want page=1 limit=10", page.Pagination)
	}
	if page.Pagination.Total != 12 || page.Pagination.Pages != 2 {
		t.Errorf("Pagination = %+v, want total=12 pages=2", page.Pagination)
	}

	// Default sort is newest first.
	if page.Tasks[0].Title != "task 11" {
		t.Errorf("first task = %q, want newest (task 11)", page.Tasks[0].Title)
	}
}

// Total must be a function of the filter alone: the categorical
// priority sort runs a different fetch path and must not change it.
func TestPlanner_TotalIndependentOfSortStrategy(t *testing.T) {
	repo := setupTestRepo(t)
	planner := NewPlanner(repo)
	base := time.Now()

	priorities := []domain.Priority{domain.PriorityLow, domain.PriorityHigh, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityLow}
	for i, p := range priorities {
		seedTask(t, repo, "owner-1", fmt.Sprintf("report %d", i), domain.StatusPending, p, base.Add(time.Duration(i)*time.Second))
	}
	seedTask(t, repo, "owner-1", "unrelated", domain.StatusCompleted, domain.PriorityHigh, base)
	seedTask(t, repo, "owner-2", "report other", domain.StatusPending, domain.PriorityHigh, base)

	query := ListQuery{OwnerID: "owner-1", Search: "report", Status: "pending", Page: 1, Limit: 2}

	var totals []int64
	for _, sortBy := range []string{"", "createdAt", "title", "priority"} {
		q := query
		q.SortBy = sortBy
		page, err := planner.List(q)
		if err != nil {
			t.Fatalf("List(sortBy=%q) error = %v", sortBy, err)
		}
		totals = append(totals, page.Pagination.Total)
		if page.Pagination.Pages != 3 {
			t.Errorf("List(sortBy=%q) pages = %d, want 3", sortBy, page.Pagination.Pages)
		}
	}

	for _, total := range totals {
		if total != 5 {
			t.Fatalf("totals across sort strategies = %v, want all 5", totals)
		}
	}
}

func TestPlanner_PriorityPaginationStable(t *testing.T) {
	repo := setupTestRepo(t)
	planner := NewPlanner(repo)
	base := time.Now()

	// 4 high, 4 medium, 4 low.
	for i := 0; i < 4; i++ {
		seedTask(t, repo, "owner-1", fmt.Sprintf("h%d", i), domain.StatusPending, domain.PriorityHigh, base.Add(time.Duration(i)*time.Second))
		seedTask(t, repo, "owner-1", fmt.Sprintf("m%d", i), domain.StatusPending, domain.PriorityMedium, base.Add(time.Duration(i+10)*time.Second))
		seedTask(t, repo, "owner-1", fmt.Sprintf("l%d", i), domain.StatusPending, domain.PriorityLow, base.Add(time.Duration(i+20)*time.Second))
	}

	var seen []domain.Priority
	for p := 1; p <= 3; p++ {
		page, err := planner.List(ListQuery{OwnerID: "owner-1", SortBy: "priority", Page: p, Limit: 4})
		if err != nil {
			t.Fatalf("List(page=%d) error = %v", p, err)
		}
		if page.Pagination.Total != 12 || page.Pagination.Pages != 3 {
			t.Errorf("page %d pagination = %+v, want total=12 pages=3", p, page.Pagination)
		}
		for _, task := range page.Tasks {
			seen = append(seen, task.Priority)
		}
	}

	if len(seen) != 12 {
		t.Fatalf("saw %d tasks across pages, want 12", len(seen))
	}
	for i := 0; i < 4; i++ {
		if seen[i] != domain.PriorityHigh || seen[i+4] != domain.PriorityMedium || seen[i+8] != domain.PriorityLow {
			t.Fatalf("cross-page priority order = %v", seen)
		}
	}
}

func TestPlanner_InvalidCriteria(t *testing.T) {
	repo := setupTestRepo(t)
	planner := NewPlanner(repo)

	tests := []struct {
		name  string
		query ListQuery
	}{
		{name: "unknown status", query: ListQuery{OwnerID: "o", Status: "done"}},
		{name: "unknown priority", query: ListQuery{OwnerID: "o", Priority: "urgent"}},
		{name: "unknown sortBy", query: ListQuery{OwnerID: "o", SortBy: "dueDate"}},
		{name: "negative page", query: ListQuery{OwnerID: "o", Page: -1}},
		{name: "negative limit", query: ListQuery{OwnerID: "o", Limit: -5}},
		{name: "missing owner", query: ListQuery{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := planner.List(tt.query)
			if !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("List() error = %v, want ErrInvalidQuery", err)
			}
		})
	}
}

func TestPlanner_LimitCap(t *testing.T) {
	repo := setupTestRepo(t)
	planner := NewPlanner(repo)

	page, err := planner.List(ListQuery{OwnerID: "owner-1", Limit: 5000})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Pagination.Limit != maxLimit {
		t.Errorf("limit = %d, want capped at %d", page.Pagination.Limit, maxLimit)
	}
}
