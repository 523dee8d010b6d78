package repositories

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/models"
)

func TestLoadMissingFileIsEmptyStore(t *testing.T) {
	repo := NewTaskRepo(filepath.Join(t.TempDir(), "tasks.json"))

	tasks, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0", len(tasks))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewTaskRepo(filepath.Join(dir, "tasks.json"))

	tasks := map[string]*models.Task{
		"1": {
			ID: "1", Title: "pay rent", Desc: "before the 5th",
			Priority: models.PriorityHigh, Category: "Finance",
			DueDate: "2025-03-13 09:00", Status: models.StatusPending,
			CreatedAt: "2025-03-12 08:00:00",
			Extra:     map[string]json.RawMessage{"pinned": json.RawMessage("true")},
		},
		"2": {
			ID: "2", Title: "walk the dog", Desc: models.DefaultDesc,
			Priority: models.PriorityLow, Category: models.DefaultCategory,
			DueDate: models.NoDueDate, Status: models.StatusPending,
			CreatedAt: "2025-03-12 08:01:00",
		},
	}
	if err := repo.Save(tasks); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("len(loaded) = %d, want 2", len(loaded))
	}
	got := loaded["1"]
	if got.Title != "pay rent" || got.DueDate != "2025-03-13 09:00" || got.CreatedAt != "2025-03-12 08:00:00" {
		t.Errorf("loaded task 1 = %+v", got)
	}
	if string(got.Extra["pinned"]) != "true" {
		t.Errorf("loaded extra pinned = %s, want true", got.Extra["pinned"])
	}

	// No temp files left behind by the atomic write.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "tasks.json" {
		t.Errorf("dir contents = %v, want only tasks.json", entries)
	}
}

func TestSaveWritesPrettyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	repo := NewTaskRepo(path)

	if err := repo.Save(map[string]*models.Task{"1": {ID: "1", Title: "x"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !json.Valid(data) {
		t.Fatal("saved file is not valid JSON")
	}
	if !containsIndentedLine(data) {
		t.Error("saved file is not pretty-printed")
	}
}

func containsIndentedLine(data []byte) bool {
	for i := 0; i+4 < len(data); i++ {
		if data[i] == '\n' && string(data[i+1:i+5]) == "    " {
			return true
		}
	}
	return false
}
