package main

import (
	"testing"

	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/store"
)

func TestLoadAllTasks(t *testing.T) {
	s := store.NewMemoryStore[record.Envelope[record.TaskPayload]]()
	_ = s.Put("1-task-a", record.Envelope[record.TaskPayload]{Payload: record.TaskPayload{ID: "1-task-a", Title: "a"}})
	_ = s.Put("2-task-b", record.Envelope[record.TaskPayload]{Payload: record.TaskPayload{ID: "2-task-b", Title: "b"}})

	tasks, err := loadAllTasks(s)
	if err != nil {
		t.Fatalf("loadAllTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
}

func TestLoadAllCycles_Empty(t *testing.T) {
	s := store.NewMemoryStore[record.Envelope[record.CyclePayload]]()
	cycles, err := loadAllCycles(s)
	if err != nil {
		t.Fatalf("loadAllCycles: %v", err)
	}
	if len(cycles) != 0 {
		t.Errorf("got %d cycles, want 0", len(cycles))
	}
}
