package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gitgovernance/core/internal/projector"
	"github.com/gitgovernance/core/internal/record"
)

func TestJSONLFormatter_Extension(t *testing.T) {
	jf := NewJSONLFormatter()
	if jf.Extension() != ".jsonl" {
		t.Errorf("Extension() = %q, want .jsonl", jf.Extension())
	}
}

func TestJSONLFormatter_FormatTasks_OneLinePerTask(t *testing.T) {
	jf := NewJSONLFormatter()
	tasks := []projector.TaskView{
		{TaskPayload: record.TaskPayload{ID: "1-task-a", Title: "a"}},
		{TaskPayload: record.TaskPayload{ID: "2-task-b", Title: "b"}},
	}

	var buf bytes.Buffer
	if err := jf.FormatTasks(&buf, tasks); err != nil {
		t.Fatalf("FormatTasks: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	var decoded projector.TaskView
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("line 0 not valid JSON: %v", err)
	}
	if decoded.ID != "1-task-a" {
		t.Errorf("decoded.ID = %q, want 1-task-a", decoded.ID)
	}
}

func TestJSONLFormatter_FormatCycles(t *testing.T) {
	jf := NewJSONLFormatter()
	cycles := []projector.CycleView{
		{CyclePayload: record.CyclePayload{ID: "cycle-1", Title: "Sprint 1"}, TaskCount: 3},
	}

	var buf bytes.Buffer
	if err := jf.FormatCycles(&buf, cycles); err != nil {
		t.Fatalf("FormatCycles: %v", err)
	}
	if !strings.Contains(buf.String(), `"cycle-1"`) {
		t.Errorf("output missing cycle id: %q", buf.String())
	}
}

func TestJSONLFormatter_FormatHealth(t *testing.T) {
	jf := NewJSONLFormatter()
	health := projector.HealthMetrics{TotalTasks: 10, DoneTasks: 5, DoneRatio: 0.5}

	var buf bytes.Buffer
	if err := jf.FormatHealth(&buf, health); err != nil {
		t.Fatalf("FormatHealth: %v", err)
	}
	var decoded projector.HealthMetrics
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("not valid JSON: %v", err)
	}
	if decoded.TotalTasks != 10 || decoded.DoneRatio != 0.5 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestJSONLFormatter_Pretty(t *testing.T) {
	jf := &JSONLFormatter{Pretty: true}
	var buf bytes.Buffer
	err := jf.FormatTasks(&buf, []projector.TaskView{{TaskPayload: record.TaskPayload{ID: "x"}}})
	if err != nil {
		t.Fatalf("FormatTasks: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("expected indented output, got %q", buf.String())
	}
}

func TestJSONLFormatter_EmptyInput(t *testing.T) {
	jf := NewJSONLFormatter()
	var buf bytes.Buffer
	if err := jf.FormatTasks(&buf, nil); err != nil {
		t.Fatalf("FormatTasks: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty input, got %q", buf.String())
	}
}
