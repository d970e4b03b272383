package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/schema"
)

// AllocateRun reserves the next run directory for a project under root.
// The id is one past the highest id already on disk for the same normalized
// project name, or 1 when there is none. Entries that do not follow the
// run_<id>_<name> convention are ignored.
func AllocateRun(root, projectPath string) (schema.Run, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return schema.Run{}, fmt.Errorf("failed to create output root %s: %w", root, err)
	}

	normalized := schema.NormalizeProjectName(projectPath)
	nextID, err := nextRunID(root, normalized)
	if err != nil {
		return schema.Run{}, err
	}

	dir, err := reserveRunDir(root, normalized, nextID)
	if err != nil {
		return schema.Run{}, err
	}
	return schema.Run{ID: nextID, ProjectPath: projectPath, Dir: dir}, nil
}

// reserveRunDir creates the directory of run id. It never reuses an existing directory.
func reserveRunDir(root, normalized string, id int) (string, error) {
	dir := filepath.Join(root, schema.RunDirName(id, normalized))
	if err := os.Mkdir(dir, 0o755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", &contract.DirectoryConflictError{Path: dir}
		}
		return "", fmt.Errorf("failed to create run directory %s: %w", dir, err)
	}
	return dir, nil
}

// nextRunID scans root for runs of the normalized project and returns max + 1.
func nextRunID(root, normalized string) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, fmt.Errorf("failed to list output root %s: %w", root, err)
	}

	maxID := 0
	for _, entry := range entries {
		if id, ok := schema.ParseRunDirName(entry.Name(), normalized); ok && id > maxID {
			maxID = id
		}
	}
	return maxID + 1, nil
}
