package handlers

import (
	"html/template"
	"net/http"

	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/logging"
)

// PageHandler renders the two HTML pages. These routes are exempt from the
// rate limit.
type PageHandler struct {
	templates *template.Template
}

func NewPageHandler(templates *template.Template) *PageHandler {
	return &PageHandler{templates: templates}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index.html")
}

func (h *PageHandler) Info(w http.ResponseWriter, r *http.Request) {
	h.render(w, "info.html")
}

func (h *PageHandler) render(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, nil); err != nil {
		logging.Logger.Errorf("Event ID: TEMPLATE_RENDER_FAILED, Description: Failed to render %s: %v", name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
