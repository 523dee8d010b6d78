package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/models"
)

// TaskRepo persists the whole task mapping to a single JSON file. The file is
// rewritten in full on every save; the write goes to a temp file first and is
// renamed into place so a crash mid-write cannot truncate the store.
type TaskRepo struct {
	path string
}

func NewTaskRepo(path string) *TaskRepo {
	return &TaskRepo{path: path}
}

// Load reads the task mapping from disk. An absent file is an empty store.
func (r *TaskRepo) Load() (map[string]*models.Task, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return map[string]*models.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read task file %s: %w", r.path, err)
	}

	tasks := map[string]*models.Task{}
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task file %s: %w", r.path, err)
	}
	return tasks, nil
}

// Save writes the full mapping, pretty-printed, atomically.
func (r *TaskRepo) Save(tasks map[string]*models.Task) error {
	data, err := json.MarshalIndent(tasks, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp task file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp task file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace task file %s: %w", r.path, err)
	}
	return nil
}
