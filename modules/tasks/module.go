package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	domain "github.com/anjaya02/task-based-web-app/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TasksModule provides task services.
type TasksModule struct {
	db      *gorm.DB
	service *TaskService
	cache   StatsCache
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*TasksModule)(nil)
var _ mono.ServiceProviderModule = (*TasksModule)(nil)
var _ mono.HealthCheckableModule = (*TasksModule)(nil)

// NewModule creates a new TasksModule backed by the given SQLite path.
func NewModule(dbPath string) *TasksModule {
	return &TasksModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TasksModule) Name() string {
	return "tasks"
}

// SetCache wires the optional stats cache. Safe to call after Start,
// which is when the cache module has a connected client to hand out.
func (m *TasksModule) SetCache(c StatsCache) {
	m.cache = c
	if m.service != nil {
		m.service.cache = c
	}
}

// sqliteDSN appends the connection parameters every module uses: a
// busy timeout and WAL, so writers from other modules sharing the file
// wait instead of failing with "database is locked".
func sqliteDSN(path string) string {
	return path + "?_busy_timeout=5000&_journal_mode=WAL"
}

// Start initializes the tasks module.
func (m *TasksModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(m.dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewTaskService(NewTaskRepository(db), m.cache)

	log.Printf("[tasks] Module started (database: %s, cache: %v)", m.dbPath, m.cache != nil)
	return nil
}

// Stop shuts down the module.
func (m *TasksModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[tasks] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TasksModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
			"cached":   m.cache != nil,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TasksModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"list-tasks": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-tasks", json.Unmarshal, json.Marshal, m.handleList)
		},
		"create-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "create-task", json.Unmarshal, json.Marshal, m.handleCreate)
		},
		"get-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "get-task", json.Unmarshal, json.Marshal, m.handleGet)
		},
		"update-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "update-task", json.Unmarshal, json.Marshal, m.handleUpdate)
		},
		"delete-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "delete-task", json.Unmarshal, json.Marshal, m.handleDelete)
		},
		"task-stats": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "task-stats", json.Unmarshal, json.Marshal, m.handleStats)
		},
	}

	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[tasks] Registered services: list-tasks, create-task, get-task, update-task, delete-task, task-stats")
	return nil
}

// handleList handles task listing with filtering, sorting, and pagination.
func (m *TasksModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	resp, err := m.service.List(ctx, req)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return *resp, nil
}

// handleCreate handles task creation.
func (m *TasksModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.Create(ctx, req)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: toDTO(t, time.Now())}, nil
}

// handleGet handles fetching a single task.
func (m *TasksModule) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.Get(ctx, req)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: toDTO(t, time.Now())}, nil
}

// handleUpdate handles task mutation.
func (m *TasksModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.Update(ctx, req)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: toDTO(t, time.Now())}, nil
}

// handleDelete handles task deletion.
func (m *TasksModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// handleStats handles aggregate task counts.
func (m *TasksModule) handleStats(ctx context.Context, req TaskStatsRequest, _ *mono.Msg) (TaskStatsResponse, error) {
	stats, err := m.service.Stats(ctx, req.OwnerID)
	if err != nil {
		return TaskStatsResponse{}, err
	}
	return *stats, nil
}
