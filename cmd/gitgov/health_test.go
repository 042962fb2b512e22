package main

import (
	"path/filepath"
	"testing"
)

func TestHealthDirAndHistoryPath(t *testing.T) {
	root := "/tmp/project"
	if got, want := healthDir(root), filepath.Join(root, ".gitgov", "health"); got != want {
		t.Errorf("healthDir = %q, want %q", got, want)
	}
	if got, want := healthHistoryPath(root), filepath.Join(root, ".gitgov", "health", "history.jsonl"); got != want {
		t.Errorf("healthHistoryPath = %q, want %q", got, want)
	}
}
