package tasks

import (
	"errors"
	"testing"
	"time"

	domain "github.com/anjaya02/task-based-web-app/domain/task"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRepo creates a TaskRepository over an in-memory SQLite database.
func setupTestRepo(t *testing.T) *TaskRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewTaskRepository(db)
}

// seedTask inserts a task with the given attributes and returns it.
func seedTask(t *testing.T, repo *TaskRepository, owner, title string, status domain.Status, priority domain.Priority, createdAt time.Time) *domain.Task {
	t.Helper()

	task := &domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    status,
		Priority:  priority,
		OwnerID:   owner,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := repo.Create(task); err != nil {
		t.Fatalf("failed to seed task %q: %v", title, err)
	}
	return task
}

func TestTaskRepository_PriorityCategoricalOrder(t *testing.T) {
	repo := setupTestRepo(t)
	base := time.Now()

	// Deliberately created in an order where both creation order and
	// lexical priority order differ from the categorical order.
	seedTask(t, repo, "owner-1", "first", domain.StatusPending, domain.PriorityMedium, base)
	seedTask(t, repo, "owner-1", "second", domain.StatusPending, domain.PriorityLow, base.Add(time.Second))
	seedTask(t, repo, "owner-1", "third", domain.StatusPending, domain.PriorityHigh, base.Add(2*time.Second))
	seedTask(t, repo, "owner-1", "fourth", domain.StatusPending, domain.PriorityLow, base.Add(3*time.Second))
	seedTask(t, repo, "owner-1", "fifth", domain.StatusPending, domain.PriorityHigh, base.Add(4*time.Second))

	got, err := repo.Find(Filter{OwnerID: "owner-1"}, SortPriority, 0, 10)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Find() returned %d tasks, want 5", len(got))
	}

	lastRank := domain.PriorityHigh.Rank() + 1
	for _, task := range got {
		r := task.Priority.Rank()
		if r > lastRank {
			t.Fatalf("priority order violated: %q (rank %d) after rank %d", task.Priority, r, lastRank)
		}
		lastRank = r
	}

	if got[0].Priority != domain.PriorityHigh || got[4].Priority != domain.PriorityLow {
		t.Errorf("expected high first and low last, got %q ... %q", got[0].Priority, got[4].Priority)
	}
}

func TestTaskRepository_CountIndependentOfSort(t *testing.T) {
	repo := setupTestRepo(t)
	base := time.Now()

	for i, p := range []domain.Priority{domain.PriorityLow, domain.PriorityHigh, domain.PriorityMedium, domain.PriorityHigh} {
		seedTask(t, repo, "owner-1", "task", domain.StatusPending, p, base.Add(time.Duration(i)*time.Second))
	}
	seedTask(t, repo, "owner-2", "task", domain.StatusPending, domain.PriorityHigh, base)

	filter := Filter{OwnerID: "owner-1", Priority: domain.PriorityHigh}

	want, err := repo.Count(filter)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if want != 2 {
		t.Fatalf("Count() = %d, want 2", want)
	}

	for _, sort := range []SortKey{SortCreatedAt, SortTitle, SortPriority} {
		got, err := repo.Find(filter, sort, 0, 10)
		if err != nil {
			t.Fatalf("Find(sort=%s) error = %v", sort, err)
		}
		if int64(len(got)) != want {
			t.Errorf("Find(sort=%s) returned %d tasks, Count() = %d", sort, len(got), want)
		}
	}
}

func TestTaskRepository_SearchCaseInsensitiveSubstring(t *testing.T) {
	repo := setupTestRepo(t)
	now := time.Now()

	seedTask(t, repo, "owner-1", "Buy Milk", domain.StatusPending, domain.PriorityMedium, now)
	seedTask(t, repo, "owner-1", "Walk dog", domain.StatusPending, domain.PriorityMedium, now)

	withDesc := seedTask(t, repo, "owner-1", "Errands", domain.StatusPending, domain.PriorityMedium, now)
	withDesc.Description = "pick up the MILK order"
	if err := repo.Save(withDesc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tests := []struct {
		search string
		want   int
	}{
		{search: "milk", want: 2},
		{search: "MILK", want: 2},
		{search: "uy Mi", want: 1},
		{search: "dog", want: 1},
		{search: "nothing-matches", want: 0},
	}

	for _, tt := range tests {
		got, err := repo.Find(Filter{OwnerID: "owner-1", Search: tt.search}, SortCreatedAt, 0, 10)
		if err != nil {
			t.Fatalf("Find(search=%q) error = %v", tt.search, err)
		}
		if len(got) != tt.want {
			t.Errorf("Find(search=%q) returned %d tasks, want %d", tt.search, len(got), tt.want)
		}

		n, err := repo.Count(Filter{OwnerID: "owner-1", Search: tt.search})
		if err != nil {
			t.Fatalf("Count(search=%q) error = %v", tt.search, err)
		}
		if int(n) != tt.want {
			t.Errorf("Count(search=%q) = %d, want %d", tt.search, n, tt.want)
		}
	}
}

func TestTaskRepository_StatusFilter(t *testing.T) {
	repo := setupTestRepo(t)
	now := time.Now()

	seedTask(t, repo, "owner-1", "a", domain.StatusPending, domain.PriorityMedium, now)
	seedTask(t, repo, "owner-1", "b", domain.StatusCompleted, domain.PriorityMedium, now)
	seedTask(t, repo, "owner-2", "c", domain.StatusPending, domain.PriorityMedium, now)

	got, err := repo.Find(Filter{OwnerID: "owner-1", Status: domain.StatusPending}, SortCreatedAt, 0, 10)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Find() returned %d tasks, want 1", len(got))
	}
	if got[0].Status != domain.StatusPending || got[0].OwnerID != "owner-1" {
		t.Errorf("got task status=%q owner=%q, want pending task of owner-1", got[0].Status, got[0].OwnerID)
	}
}

func TestTaskRepository_SortOrders(t *testing.T) {
	repo := setupTestRepo(t)
	base := time.Now()

	seedTask(t, repo, "owner-1", "banana", domain.StatusPending, domain.PriorityMedium, base)
	seedTask(t, repo, "owner-1", "Apple", domain.StatusPending, domain.PriorityMedium, base.Add(time.Second))
	seedTask(t, repo, "owner-1", "cherry", domain.StatusPending, domain.PriorityMedium, base.Add(2*time.Second))

	t.Run("created at newest first", func(t *testing.T) {
		got, err := repo.Find(Filter{OwnerID: "owner-1"}, SortCreatedAt, 0, 10)
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got[0].Title != "cherry" || got[2].Title != "banana" {
			t.Errorf("createdAt order = [%s %s %s], want [cherry Apple banana]", got[0].Title, got[1].Title, got[2].Title)
		}
	})

	t.Run("title ascending case-insensitive", func(t *testing.T) {
		got, err := repo.Find(Filter{OwnerID: "owner-1"}, SortTitle, 0, 10)
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		// Case-sensitive ASCII order would put "Apple" before both
		// lowercase titles but also "Zebra" before "apple"; the
		// case-insensitive collation orders by letter.
		if got[0].Title != "Apple" || got[1].Title != "banana" || got[2].Title != "cherry" {
			t.Errorf("title order = [%s %s %s], want [Apple banana cherry]", got[0].Title, got[1].Title, got[2].Title)
		}
	})
}

func TestTaskRepository_OwnerScoping(t *testing.T) {
	repo := setupTestRepo(t)
	now := time.Now()

	task := seedTask(t, repo, "owner-a", "private", domain.StatusPending, domain.PriorityMedium, now)

	if _, err := repo.FindByID(task.ID, "owner-b"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("FindByID() as other owner = %v, want ErrTaskNotFound", err)
	}

	stolen := *task
	stolen.OwnerID = "owner-b"
	stolen.Title = "stolen"
	if err := repo.Save(&stolen); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Save() as other owner = %v, want ErrTaskNotFound", err)
	}

	if err := repo.Delete(task.ID, "owner-b"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Delete() as other owner = %v, want ErrTaskNotFound", err)
	}

	// The task is untouched and still invisible to owner-b's queries.
	got, err := repo.Find(Filter{OwnerID: "owner-b"}, SortCreatedAt, 0, 10)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("owner-b sees %d tasks, want 0", len(got))
	}

	mine, err := repo.FindByID(task.ID, "owner-a")
	if err != nil {
		t.Fatalf("FindByID() as owner = %v", err)
	}
	if mine.Title != "private" {
		t.Errorf("task title = %q, want %q", mine.Title, "private")
	}
}

func TestTaskRepository_CountsGrouped(t *testing.T) {
	repo := setupTestRepo(t)
	now := time.Now()

	seedTask(t, repo, "owner-1", "a", domain.StatusPending, domain.PriorityHigh, now)
	seedTask(t, repo, "owner-1", "b", domain.StatusPending, domain.PriorityLow, now)
	seedTask(t, repo, "owner-1", "c", domain.StatusCompleted, domain.PriorityHigh, now)
	seedTask(t, repo, "owner-2", "d", domain.StatusPending, domain.PriorityHigh, now)

	byStatus, err := repo.CountByStatus("owner-1")
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if byStatus[domain.StatusPending] != 2 || byStatus[domain.StatusCompleted] != 1 {
		t.Errorf("CountByStatus() = %v, want pending=2 completed=1", byStatus)
	}

	byPriority, err := repo.CountByPriority("owner-1")
	if err != nil {
		t.Fatalf("CountByPriority() error = %v", err)
	}
	if byPriority[domain.PriorityHigh] != 2 || byPriority[domain.PriorityLow] != 1 {
		t.Errorf("CountByPriority() = %v, want high=2 low=1", byPriority)
	}
}
