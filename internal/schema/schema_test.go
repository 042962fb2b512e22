package schema

import "testing"

func TestCompileCacheReferenceEquality(t *testing.T) {
	r := NewRegistry()
	v1 := r.Compile(taskSchema)
	v2 := r.Compile(taskSchema)
	if v1 != v2 {
		t.Fatal("expected identical validator pointer on second compile")
	}
	if got := r.Stats(); got.CompiledSchemas != 1 || got.CacheHits != 1 {
		t.Fatalf("stats = %+v, want 1 compile / 1 hit", got)
	}
}

func TestClearCache(t *testing.T) {
	r := NewRegistry()
	r.Compile(taskSchema)
	r.ClearCache()
	if got := r.Stats(); got.CompiledSchemas != 0 {
		t.Fatalf("stats after clear = %+v, want 0 compiled", got)
	}
}

func TestTaskSchema_ValidDocument(t *testing.T) {
	doc := map[string]any{
		"id":          "1-task-t",
		"title":       "Fix it",
		"description": "a description that is long enough",
		"status":      "draft",
		"priority":    "medium",
	}
	v := Default.Compile(taskSchema)
	if errs := v.Validate(doc); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestTaskSchema_ReportsEveryError(t *testing.T) {
	doc := map[string]any{
		"title":    "ab",
		"status":   "bogus",
		"priority": "urgent",
	}
	v := Default.Compile(taskSchema)
	errs := v.Validate(doc)
	if len(errs) < 4 {
		t.Fatalf("expected at least 4 accumulated errors, got %d: %v", len(errs), errs)
	}
}
