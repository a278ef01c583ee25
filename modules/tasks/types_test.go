package tasks

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	domain "github.com/anjaya02/task-based-web-app/domain/task"
)

func TestTaskDTO_WireShape(t *testing.T) {
	now := time.Now()
	task := &domain.Task{
		ID:        "task-1",
		Title:     "t",
		Status:    domain.StatusPending,
		Priority:  domain.PriorityMedium,
		OwnerID:   "owner-1",
		CreatedAt: now,
		UpdatedAt: now,
	}

	raw, err := json.Marshal(toDTO(task, now))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	body := string(raw)

	// Description is part of the shape even when empty; only dueDate is
	// optional. The owner reference never appears.
	if !strings.Contains(body, `"description":""`) {
		t.Errorf("body = %s, want empty description serialized", body)
	}
	if strings.Contains(body, "dueDate") {
		t.Errorf("body = %s, want dueDate omitted when absent", body)
	}
	if !strings.Contains(body, `"_id":"task-1"`) {
		t.Errorf("body = %s, want _id field", body)
	}
	if strings.Contains(body, "owner") {
		t.Errorf("body = %s, leaks owner reference", body)
	}
}
