package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort defines the interface for task operations. This is the port
// the HTTP edge uses to reach the tasks module.
type TaskPort interface {
	List(ctx context.Context, req ListTasksRequest) (*ListTasksResponse, error)
	Create(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error)
	Get(ctx context.Context, req GetTaskRequest) (*TaskResponse, error)
	Update(ctx context.Context, req UpdateTaskRequest) (*TaskResponse, error)
	Delete(ctx context.Context, req DeleteTaskRequest) (*DeleteTaskResponse, error)
	Stats(ctx context.Context, ownerID string) (*TaskStatsResponse, error)
}

// TaskAdapter implements TaskPort using the service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new TaskAdapter.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{
		container: container,
	}
}

func (a *TaskAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}

// List returns one page of the owner's tasks.
func (a *TaskAdapter) List(ctx context.Context, req ListTasksRequest) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := a.call(ctx, "list-tasks", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create creates a task.
func (a *TaskAdapter) Create(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := a.call(ctx, "create-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get fetches one task.
func (a *TaskAdapter) Get(ctx context.Context, req GetTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := a.call(ctx, "get-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update mutates a task.
func (a *TaskAdapter) Update(ctx context.Context, req UpdateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := a.call(ctx, "update-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a task.
func (a *TaskAdapter) Delete(ctx context.Context, req DeleteTaskRequest) (*DeleteTaskResponse, error) {
	var resp DeleteTaskResponse
	if err := a.call(ctx, "delete-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats returns aggregate counts for an owner.
func (a *TaskAdapter) Stats(ctx context.Context, ownerID string) (*TaskStatsResponse, error) {
	req := TaskStatsRequest{OwnerID: ownerID}
	var resp TaskStatsResponse
	if err := a.call(ctx, "task-stats", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
