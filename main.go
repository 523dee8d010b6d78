package main

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"

	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/gemini"
	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/handlers"
	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/logging"
	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/middleware"
	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/repositories"
	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/services"
)

const requestsPerMinute = 15

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting AI task manager service...")

	// The env file is optional; the key itself is not.
	if err := godotenv.Load("credentials.env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: credentials.env not loaded: %v", err)
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: Missing GEMINI_API_KEY. Set it in credentials.env.")
	}
	logging.Logger.Info("Event ID: CONFIG_LOADED, Description: API key loaded")

	geminiBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	geminiClient := gemini.NewClient(apiKey, geminiBreaker)

	tasksFile := os.Getenv("TASKS_FILE")
	if tasksFile == "" {
		tasksFile = "tasks.json"
	}
	taskRepo := repositories.NewTaskRepo(tasksFile)

	taskService, err := services.NewTaskService(taskRepo)
	if err != nil {
		logging.Logger.Fatalf("Event ID: STORE_LOAD_FAILED, Description: Failed to load task store: %v", err)
	}
	logging.Logger.Infof("Event ID: STORE_LOADED, Description: Loaded %d task(s) from %s", taskService.Count(), tasksFile)

	aiService := services.NewAIService(geminiClient)

	taskHandler := handlers.NewTaskHandler(taskService, aiService)
	aiHandler := handlers.NewAIHandler(taskService, aiService)

	templates, err := template.ParseGlob("templates/*.html")
	if err != nil {
		logging.Logger.Fatalf("Event ID: TEMPLATE_LOAD_FAILED, Description: Failed to parse templates: %v", err)
	}
	pageHandler := handlers.NewPageHandler(templates)

	limiter := middleware.NewRateLimiter(requestsPerMinute)

	r := mux.NewRouter()

	r.HandleFunc("/tasks", limiter.LimitFunc(taskHandler.GetTasks)).Methods(http.MethodGet)
	r.HandleFunc("/tasks", limiter.LimitFunc(taskHandler.CreateTask)).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{taskID}", limiter.LimitFunc(taskHandler.UpdateTask)).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{taskID}", limiter.LimitFunc(taskHandler.DeleteTask)).Methods(http.MethodDelete)

	r.HandleFunc("/task-search", limiter.LimitFunc(taskHandler.SearchTasks)).Methods(http.MethodPost)
	r.HandleFunc("/ai-search", limiter.LimitFunc(taskHandler.SearchTasks)).Methods(http.MethodPost)

	r.HandleFunc("/ai-prioritize", limiter.LimitFunc(aiHandler.Prioritize)).Methods(http.MethodPost)
	r.HandleFunc("/ai-summarize", limiter.LimitFunc(aiHandler.Summarize)).Methods(http.MethodPost)
	r.HandleFunc("/ai-enhance-description", limiter.LimitFunc(aiHandler.EnhanceDescription)).Methods(http.MethodPost)
	r.HandleFunc("/ai-suggest-priority", limiter.LimitFunc(aiHandler.SuggestPriority)).Methods(http.MethodPost)
	r.HandleFunc("/ai-suggest-category", limiter.LimitFunc(aiHandler.SuggestCategory)).Methods(http.MethodPost)

	// Page renders are not rate limited.
	r.HandleFunc("/", pageHandler.Index).Methods(http.MethodGet)
	r.HandleFunc("/info", pageHandler.Info).Methods(http.MethodGet)

	corsRouter := middleware.EnableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "5000"
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
