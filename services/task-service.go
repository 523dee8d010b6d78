package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/models"
	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/repositories"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskService owns the in-memory task mapping and mirrors it to the
// repository after every mutation. All access goes through the mutex, so
// concurrent handlers cannot interleave a read-modify-write.
//
// Ids are stringified integers from a counter seeded at load with the highest
// id present, not the record count, so deleting tasks never causes an id to
// be handed out twice within a process lifetime.
type TaskService struct {
	mu     sync.Mutex
	repo   *repositories.TaskRepo
	tasks  map[string]*models.Task
	nextID int
}

func NewTaskService(repo *repositories.TaskRepo) (*TaskService, error) {
	tasks, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load task store: %w", err)
	}

	nextID := 1
	for id := range tasks {
		if n, err := strconv.Atoi(id); err == nil && n >= nextID {
			nextID = n + 1
		}
	}

	return &TaskService{repo: repo, tasks: tasks, nextID: nextID}, nil
}

// Create assigns the next id and creation timestamp, stores the record and
// persists the full mapping.
func (s *TaskService) Create(task *models.Task) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = strconv.Itoa(s.nextID)
	task.CreatedAt = time.Now().Format(models.TimestampLayout)

	s.tasks[task.ID] = task
	if err := s.repo.Save(s.tasks); err != nil {
		delete(s.tasks, task.ID)
		return nil, err
	}
	s.nextID++
	return task, nil
}

func (s *TaskService) Get(id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// List returns all tasks in insertion order. Ids are monotonic, so numeric
// id order is insertion order.
func (s *TaskService) List() []*models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

func (s *TaskService) listLocked() []*models.Task {
	tasks := make([]*models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		a, errA := strconv.Atoi(tasks[i].ID)
		b, errB := strconv.Atoi(tasks[j].ID)
		if errA != nil || errB != nil {
			return tasks[i].ID < tasks[j].ID
		}
		return a < b
	})
	return tasks
}

func (s *TaskService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Update merges the decoded JSON fields into the record verbatim. Unknown
// keys are accepted and stored; no schema validation happens here.
func (s *TaskService) Update(id string, fields map[string]json.RawMessage) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}

	task.Merge(fields)
	if err := s.repo.Save(s.tasks); err != nil {
		return nil, err
	}
	return task, nil
}

// SetPriority overwrites a single field and persists, for the AI prioritize
// endpoint.
func (s *TaskService) SetPriority(id, priority string) (*models.Task, error) {
	return s.setField(id, func(t *models.Task) { t.Priority = priority })
}

// SetDesc overwrites the description and persists, for the AI enhance
// endpoint.
func (s *TaskService) SetDesc(id, desc string) (*models.Task, error) {
	return s.setField(id, func(t *models.Task) { t.Desc = desc })
}

func (s *TaskService) setField(id string, apply func(*models.Task)) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}

	apply(task)
	if err := s.repo.Save(s.tasks); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}

	delete(s.tasks, id)
	if err := s.repo.Save(s.tasks); err != nil {
		s.tasks[id] = task
		return err
	}
	return nil
}

// Search does a case-insensitive substring match of the query against title,
// priority, category and due date, returning matches keyed by id.
func (s *TaskService) Search(query string) map[string]*models.Task {
	query = strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	matches := map[string]*models.Task{}
	for id, task := range s.tasks {
		if strings.Contains(strings.ToLower(task.Title), query) ||
			strings.Contains(strings.ToLower(task.Priority), query) ||
			strings.Contains(strings.ToLower(task.Category), query) ||
			strings.Contains(strings.ToLower(task.DueDate), query) {
			matches[id] = task
		}
	}
	return matches
}
