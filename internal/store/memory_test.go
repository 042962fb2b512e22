package store

import "testing"

func TestMemoryStore_DeepCloneIsolatesCaller(t *testing.T) {
	s := NewMemoryStore[fixture]()
	v := fixture{Name: "original"}
	if err := s.Put("x", v); err != nil {
		t.Fatalf("put: %v", err)
	}

	v.Name = "mutated-after-put"

	got, err := s.Get("x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "original" {
		t.Fatalf("store observed caller mutation: got %q", got.Name)
	}

	got.Name = "mutated-after-get"
	got2, _ := s.Get("x")
	if got2.Name != "original" {
		t.Fatalf("store was mutated via returned pointer: got %q", got2.Name)
	}
}

func TestMemoryStore_NoDeepClone(t *testing.T) {
	s := NewMemoryStore[fixture](WithDeepClone[fixture](false))
	_ = s.Put("x", fixture{Name: "v1"})
	got, _ := s.Get("x")
	got.Name = "v2"
	got2, _ := s.Get("x")
	if got2.Name != "v2" {
		t.Fatalf("expected shared reference without deep clone, got %q", got2.Name)
	}
}

func TestMemoryStore_ClearSizeSnapshot(t *testing.T) {
	s := NewMemoryStore[fixture]()
	_ = s.Put("a", fixture{Name: "a"})
	_ = s.Put("b", fixture{Name: "b"})

	if s.Size() != 2 {
		t.Fatalf("size = %d, want 2", s.Size())
	}
	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot len = %d, want 2", len(snap))
	}

	s.Clear()
	if s.Size() != 0 {
		t.Fatalf("size after clear = %d, want 0", s.Size())
	}
}
