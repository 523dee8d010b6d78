package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/logging"
	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/models"
	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/services"
)

// TaskHandler serves the CRUD, pagination and search endpoints. Creation
// also talks to the model collaborator for the generated task details.
type TaskHandler struct {
	service *services.TaskService
	ai      *services.AIService
}

func NewTaskHandler(service *services.TaskService, ai *services.AIService) *TaskHandler {
	return &TaskHandler{service: service, ai: ai}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// CreateTask accepts only a title; every other field comes from the title
// parser and the model collaborator.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" {
		writeError(w, http.StatusBadRequest, "Title required")
		return
	}

	processed := services.ProcessTitle(body.Title)

	details, raw, err := h.ai.GenerateTaskDetails(r.Context(), processed.CleanTitle, processed.DueDate)
	if errors.Is(err, services.ErrModelReply) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":        "AI generation failed: " + err.Error(),
			"raw_response": raw,
		})
		return
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: AI_CALL_FAILED, Description: Model call failed during task creation: %v", err)
		writeError(w, http.StatusInternalServerError, "AI generation failed: "+err.Error())
		return
	}

	task, err := h.service.Create(&models.Task{
		Title:    processed.CleanTitle,
		Desc:     details.Desc,
		Priority: details.Priority,
		Category: details.Category,
		DueDate:  details.DueDate,
		Status:   models.StatusPending,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": "Task added", "task": task})
}

// GetTasks returns one page of the insertion-ordered task list.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	page, pageSize := 1, 10
	var err error
	if v := r.URL.Query().Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid pagination parameters")
			return
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if pageSize, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid pagination parameters")
			return
		}
	}

	tasks := h.service.List()
	if len(tasks) == 0 {
		writeError(w, http.StatusNotFound, "No tasks available.")
		return
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start < 0 || start > len(tasks) {
		start = len(tasks)
	}
	if end < start {
		end = start
	}
	if end > len(tasks) {
		end = len(tasks)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tasks":       tasks[start:end],
		"page":        page,
		"page_size":   pageSize,
		"total_tasks": len(tasks),
	})
}

// UpdateTask merges the request body into the record verbatim.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.service.Update(taskID, fields)
	if errors.Is(err, services.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Task updated", "task": task})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	err := h.service.Delete(taskID)
	if errors.Is(err, services.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Task %s deleted!", taskID)})
}

// SearchTasks backs both /task-search and /ai-search; the two endpoints are
// equivalent.
func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Search query required")
		return
	}

	query := strings.TrimSpace(body.Query)
	if query == "" {
		writeError(w, http.StatusBadRequest, "Search query required")
		return
	}

	matches := h.service.Search(query)
	if len(matches) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":        "No matching tasks found.",
			"matching_tasks": map[string]*models.Task{},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"matching_tasks": matches,
		"total_matches":  len(matches),
	})
}
