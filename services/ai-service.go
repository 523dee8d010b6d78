package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/logging"
	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/models"
)

// ErrModelReply tags a model reply that survived cleanup but is still not the
// JSON object the prompt asked for. Creation aborts on it; no task is stored.
var ErrModelReply = errors.New("model reply is not valid JSON")

// Generator is the generative-model collaborator. maxTokens caps the reply
// length; 0 means the client default.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Output-token budgets per call site.
const (
	createTokens    = 150
	summarizeTokens = 250
)

// TaskDetails are the four fields the model is asked to produce at creation.
type TaskDetails struct {
	Desc     string `json:"desc"`
	Priority string `json:"priority"`
	Category string `json:"category"`
	DueDate  string `json:"due_date"`
}

// AIService builds the prompt for each AI-assisted operation, forwards it to
// the model and shapes the reply. It holds no task state.
type AIService struct {
	model Generator
}

func NewAIService(model Generator) *AIService {
	return &AIService{model: model}
}

// GenerateTaskDetails asks the model for description, priority, category and
// due date for a new task. An empty reply falls back to default details; a
// malformed one returns ErrModelReply together with the raw reply so the
// handler can surface it. A model due date of "No Due Date" never overrides
// a real one extracted from the title.
func (a *AIService) GenerateTaskDetails(ctx context.Context, cleanTitle, dueDate string) (TaskDetails, string, error) {
	prompt := fmt.Sprintf(`Generate task details for the following title: %q.
Provide a description, select a priority from Low, Medium, High, or Urgent,
and choose a category from Work, Personal, Study, Health, Finance, Home, Shopping, or Other.
Use the due date %q extracted from the title if applicable, otherwise return "No Due Date".
Return exactly one JSON object with only the following keys:
  - "desc": A task description.
  - "priority": One of Low, Medium, High, or Urgent.
  - "category": One of Work, Personal, Study, Health, Finance, Home, Shopping, or Other.
  - "due_date": A due date in the format "YYYY-MM-DD" or "YYYY-MM-DD HH:MM", or "No Due Date" if not applicable.
Do not include any additional text or formatting.`, cleanTitle, dueDate)

	raw, err := a.model.Generate(ctx, prompt, createTokens)
	if err != nil {
		return TaskDetails{}, "", err
	}
	logging.Logger.Infof("Event ID: AI_RAW_REPLY, Description: Model reply for task creation: %q", raw)

	cleaned := CleanModelReply(raw)
	if cleaned == "" {
		return defaultTaskDetails(dueDate), raw, nil
	}

	details, err := ParseTaskDetails(cleaned)
	if err != nil {
		logging.Logger.Warnf("Event ID: AI_REPLY_PARSE_FAILED, Description: %v, raw reply: %q", err, cleaned)
		return TaskDetails{}, cleaned, err
	}

	if details.Desc == "" {
		details.Desc = models.DefaultDesc
	}
	if details.Priority == "" {
		details.Priority = models.PriorityLow
	}
	if details.Category == "" {
		details.Category = models.DefaultCategory
	}
	if details.DueDate == "" {
		details.DueDate = models.NoDueDate
	}
	if details.DueDate == models.NoDueDate && dueDate != models.NoDueDate {
		details.DueDate = dueDate
	}
	return details, raw, nil
}

func defaultTaskDetails(dueDate string) TaskDetails {
	return TaskDetails{
		Desc:     models.DefaultDesc,
		Priority: models.PriorityLow,
		Category: models.DefaultCategory,
		DueDate:  dueDate,
	}
}

// CleanModelReply strips a Markdown code fence and a leading "json" label
// from a raw model reply, leaving what should be the bare JSON object.
func CleanModelReply(raw string) string {
	reply := strings.TrimSpace(raw)

	if strings.HasPrefix(reply, "```") {
		parts := strings.Split(reply, "```")
		if len(parts) >= 3 {
			reply = strings.TrimSpace(parts[1])
		} else {
			reply = strings.TrimSpace(strings.ReplaceAll(reply, "```", ""))
		}
	}
	if strings.HasPrefix(strings.ToLower(reply), "json") {
		reply = strings.TrimSpace(reply[4:])
	}
	return reply
}

// ParseTaskDetails decodes a cleaned model reply into the four expected
// fields, or fails with ErrModelReply.
func ParseTaskDetails(cleaned string) (TaskDetails, error) {
	var details TaskDetails
	if err := json.Unmarshal([]byte(cleaned), &details); err != nil {
		return TaskDetails{}, fmt.Errorf("%w: %v", ErrModelReply, err)
	}
	return details, nil
}

// Prioritize asks the model for a single-word priority for an existing task.
func (a *AIService) Prioritize(ctx context.Context, task *models.Task) (string, error) {
	desc := task.Desc
	if desc == "" {
		desc = "No description"
	}
	dueDate := task.DueDate
	if dueDate == "" {
		dueDate = models.NoDueDate
	}
	prompt := fmt.Sprintf(`Based on this task, assign a priority (Low, Medium, High, Urgent):
Title: %s
Description: %s
Due Date: %s
Provide only the priority level as a single word.`, task.Title, desc, dueDate)

	return a.model.Generate(ctx, prompt, 0)
}

// Summarize produces a plain-text summary over the full task list.
func (a *AIService) Summarize(ctx context.Context, tasks []*models.Task) (string, error) {
	dump, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks for summary: %w", err)
	}
	prompt := fmt.Sprintf(`Summarize the following tasks. Provide a concise summary that includes the total number of pending and completed tasks, the number of high-priority tasks, and any upcoming due dates. Return only the summary in plain text.

%s`, dump)

	return a.model.Generate(ctx, prompt, summarizeTokens)
}

// EnhanceDescription rewrites a task description as an objective plus steps.
func (a *AIService) EnhanceDescription(ctx context.Context, desc string) (string, error) {
	prompt := fmt.Sprintf(`Improve the task description below. Return a concise, enhanced description in a clean roman number list format that includes one clear objective and three key steps. Do not include any extra commentary or multiple options.

Current description: %q`, desc)

	return a.model.Generate(ctx, prompt, 0)
}

// SuggestPriority proposes a priority for a not-yet-created task.
func (a *AIService) SuggestPriority(ctx context.Context, title, desc string) (string, error) {
	prompt := fmt.Sprintf(`Suggest a priority for this task: %q - %q
Choose from: Low, Medium, High, Urgent.`, title, desc)

	return a.model.Generate(ctx, prompt, 0)
}

// SuggestCategory proposes a category for a not-yet-created task.
func (a *AIService) SuggestCategory(ctx context.Context, title, desc string) (string, error) {
	prompt := fmt.Sprintf(`Categorize this task: %q - %q
Choose from: Work, Personal, Study, Health, Finance, Home, Shopping, Other.`, title, desc)

	return a.model.Generate(ctx, prompt, 0)
}
