package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/logging"
	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/services"
)

// AIHandler serves the endpoints that delegate to the model collaborator for
// an existing or prospective task.
type AIHandler struct {
	service *services.TaskService
	ai      *services.AIService
}

func NewAIHandler(service *services.TaskService, ai *services.AIService) *AIHandler {
	return &AIHandler{service: service, ai: ai}
}

type taskIDRequest struct {
	TaskID string `json:"task_id"`
}

type titleDescRequest struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// Prioritize asks the model for a priority and stores it on the task.
func (h *AIHandler) Prioritize(w http.ResponseWriter, r *http.Request) {
	var body taskIDRequest
	json.NewDecoder(r.Body).Decode(&body)

	task, err := h.service.Get(body.TaskID)
	if errors.Is(err, services.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	priority, err := h.ai.Prioritize(r.Context(), task)
	if err != nil {
		logging.Logger.Errorf("Event ID: AI_CALL_FAILED, Description: Prioritize call failed for task %s: %v", body.TaskID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	updated, err := h.service.SetPriority(body.TaskID, priority)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Priority updated", "task": updated})
}

// Summarize returns a model-written summary of all tasks. An empty store
// short-circuits to a canned message without calling the model.
func (h *AIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	tasks := h.service.List()
	if len(tasks) == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"summary": "No tasks available."})
		return
	}

	summary, err := h.ai.Summarize(r.Context(), tasks)
	if err != nil {
		logging.Logger.Errorf("Event ID: AI_CALL_FAILED, Description: Summarize call failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// EnhanceDescription rewrites the task description via the model and stores
// the result.
func (h *AIHandler) EnhanceDescription(w http.ResponseWriter, r *http.Request) {
	var body taskIDRequest
	json.NewDecoder(r.Body).Decode(&body)

	task, err := h.service.Get(body.TaskID)
	if errors.Is(err, services.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	desc, err := h.ai.EnhanceDescription(r.Context(), task.Desc)
	if err != nil {
		logging.Logger.Errorf("Event ID: AI_CALL_FAILED, Description: Enhance-description call failed for task %s: %v", body.TaskID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	updated, err := h.service.SetDesc(body.TaskID, desc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Description updated", "task": updated})
}

// SuggestPriority proposes a priority for a task that does not exist yet.
func (h *AIHandler) SuggestPriority(w http.ResponseWriter, r *http.Request) {
	var body titleDescRequest
	json.NewDecoder(r.Body).Decode(&body)
	if body.Title == "" {
		writeError(w, http.StatusBadRequest, "Title required")
		return
	}

	priority, err := h.ai.SuggestPriority(r.Context(), body.Title, body.Desc)
	if err != nil {
		logging.Logger.Errorf("Event ID: AI_CALL_FAILED, Description: Suggest-priority call failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"suggested_priority": priority})
}

// SuggestCategory proposes a category for a task that does not exist yet.
func (h *AIHandler) SuggestCategory(w http.ResponseWriter, r *http.Request) {
	var body titleDescRequest
	json.NewDecoder(r.Body).Decode(&body)
	if body.Title == "" {
		writeError(w, http.StatusBadRequest, "Title required")
		return
	}

	category, err := h.ai.SuggestCategory(r.Context(), body.Title, body.Desc)
	if err != nil {
		logging.Logger.Errorf("Event ID: AI_CALL_FAILED, Description: Suggest-category call failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"suggested_category": category})
}
