// Package project locates a GitGovernance project root: the nearest
// ancestor directory containing a .gitgov directory, the same way a git
// client walks up looking for .git.
package project

import (
	"os"
	"path/filepath"
)

// MarkerDir is the directory name that marks a project root.
const MarkerDir = ".gitgov"

// DetectRoot walks up from startDir (or the current working directory, if
// startDir is empty) looking for a .gitgov directory. Returns the directory
// containing it, or "" if none is found before reaching the filesystem root.
func DetectRoot(startDir string) string {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return ""
		}
	}

	dir := startDir
	for {
		marker := filepath.Join(dir, MarkerDir)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// IsInProject reports whether dir is within a GitGovernance project.
func IsInProject(dir string) bool {
	return DetectRoot(dir) != ""
}

// StorePath returns the path a given record type's store directory lives at
// under a project root, e.g. StorePath(root, "tasks") -> root/.gitgov/tasks.
func StorePath(root, recordTypeDir string) string {
	return filepath.Join(root, MarkerDir, recordTypeDir)
}
