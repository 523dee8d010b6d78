package models

import (
	"encoding/json"
	"testing"
)

func TestTaskJSONFoldsExtraKeys(t *testing.T) {
	data := []byte(`{"id":"1","title":"pay rent","desc":"d","priority":"High","category":"Finance","due_date":"2025-03-13","status":"Pending","created_at":"2025-03-12 08:00:00","labels":["home"]}`)

	var task Task
	if err := json.Unmarshal(data, &task); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if task.Title != "pay rent" || task.Priority != "High" {
		t.Errorf("task = %+v", task)
	}
	if string(task.Extra["labels"]) != `["home"]` {
		t.Errorf("extra labels = %s", task.Extra["labels"])
	}

	out, err := json.Marshal(&task)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if m["title"] != "pay rent" {
		t.Errorf("marshalled title = %v", m["title"])
	}
	if labels, ok := m["labels"].([]any); !ok || len(labels) != 1 {
		t.Errorf("marshalled labels = %v", m["labels"])
	}
}

func TestMergeNonStringKnownKeyWinsOnMarshal(t *testing.T) {
	task := Task{ID: "1", Priority: PriorityLow}
	task.Merge(map[string]json.RawMessage{"priority": json.RawMessage("5")})

	out, err := json.Marshal(&task)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The value arrived as a number and must serialize back as one.
	if m["priority"] != float64(5) {
		t.Errorf("priority = %v (%T), want 5", m["priority"], m["priority"])
	}
}

func TestMergeStringValueReclaimsKnownKey(t *testing.T) {
	task := Task{}
	task.Merge(map[string]json.RawMessage{"priority": json.RawMessage("5")})
	task.Merge(map[string]json.RawMessage{"priority": json.RawMessage(`"High"`)})

	if task.Priority != "High" {
		t.Errorf("priority = %q, want High", task.Priority)
	}
	if _, ok := task.Extra["priority"]; ok {
		t.Error("stale extra entry left behind for a known key")
	}
}
