package utils

import (
	"path/filepath"
	"strings"
)

// IsPathWithin returns true if the given path is inside the root directory.
// Tracked-file lists come from an external tool, so paths escaping the
// repository root are treated as hostile and skipped by callers.
func IsPathWithin(path, root string) bool {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	absPath, err := filepath.Abs(resolved)
	if err != nil {
		return false
	}
	rResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		rResolved = root
	}
	absRoot, err := filepath.Abs(rResolved)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
