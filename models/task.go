package models

import "encoding/json"

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

const (
	StatusPending = "Pending"

	NoDueDate = "No Due Date"

	DefaultDesc     = "No description provided."
	DefaultCategory = "Personal"
)

// Layouts for the string-typed date fields carried by Task.
const (
	DateLayout      = "2006-01-02"
	DateTimeLayout  = "2006-01-02 15:04"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Categories a task can belong to. The model collaborator is asked to pick
// one of these, but stored values are not validated against the list.
var Categories = []string{"Work", "Personal", "Study", "Health", "Finance", "Home", "Shopping", "Other"}

// Priorities in ascending urgency. Same caveat as Categories.
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Task is the sole entity of the service. Updates may carry keys outside the
// known schema; those are kept verbatim in Extra and folded back into the
// JSON representation, so a record survives a save/load round trip unchanged.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Desc      string `json:"desc"`
	Priority  string `json:"priority"`
	Category  string `json:"category"`
	DueDate   string `json:"due_date"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`

	Extra map[string]json.RawMessage `json:"-"`
}

// knownKeys are the schema fields handled by the struct itself.
var knownKeys = map[string]bool{
	"id": true, "title": true, "desc": true, "priority": true,
	"category": true, "due_date": true, "status": true, "created_at": true,
}

func (t *Task) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"id":         t.ID,
		"title":      t.Title,
		"desc":       t.Desc,
		"priority":   t.Priority,
		"category":   t.Category,
		"due_date":   t.DueDate,
		"status":     t.Status,
		"created_at": t.CreatedAt,
	}
	// Extra wins on key collision: a non-string value stored under a known
	// key via update must serialize back exactly as it arrived.
	for k, v := range t.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Merge(raw)
	return nil
}

// Merge applies a decoded JSON object onto the task. Known keys with string
// values land in the struct fields; everything else is kept in Extra.
func (t *Task) Merge(fields map[string]json.RawMessage) {
	for k, v := range fields {
		var s string
		if knownKeys[k] && json.Unmarshal(v, &s) == nil {
			switch k {
			case "id":
				t.ID = s
			case "title":
				t.Title = s
			case "desc":
				t.Desc = s
			case "priority":
				t.Priority = s
			case "category":
				t.Category = s
			case "due_date":
				t.DueDate = s
			case "status":
				t.Status = s
			case "created_at":
				t.CreatedAt = s
			}
			delete(t.Extra, k)
			continue
		}
		if t.Extra == nil {
			t.Extra = make(map[string]json.RawMessage)
		}
		t.Extra[k] = v
	}
}
