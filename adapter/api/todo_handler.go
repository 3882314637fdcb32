package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/todo/application/commands"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/application/queries"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/value_objects"
	"github.com/google/uuid"
)

// TodoHandler handles todo CRUD requests.
type TodoHandler struct {
	createTodo *commands.CreateTodoHandler
	updateTodo *commands.UpdateTodoHandler
	toggleTodo *commands.ToggleTodoHandler
	deleteTodo *commands.DeleteTodoHandler
	listTodos  *queries.ListTodosHandler
	logger     *slog.Logger
}

// TodoHandlerConfig holds dependencies for the todo handler.
type TodoHandlerConfig struct {
	CreateTodo *commands.CreateTodoHandler
	UpdateTodo *commands.UpdateTodoHandler
	ToggleTodo *commands.ToggleTodoHandler
	DeleteTodo *commands.DeleteTodoHandler
	ListTodos  *queries.ListTodosHandler
	Logger     *slog.Logger
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(cfg TodoHandlerConfig) *TodoHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &TodoHandler{
		createTodo: cfg.CreateTodo,
		updateTodo: cfg.UpdateTodo,
		toggleTodo: cfg.ToggleTodo,
		deleteTodo: cfg.DeleteTodo,
		listTodos:  cfg.ListTodos,
		logger:     cfg.Logger,
	}
}

type todoRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
	Priority    string     `json:"priority"`
	Categories  []string   `json:"categories"`
}

// List handles GET /api/v1/todos
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	params := r.URL.Query()
	query := queries.ListTodosQuery{
		OwnerID: session.UserID,
		Criteria: queries.Criteria{
			Search:   params.Get("search"),
			Status:   params.Get("status"),
			Priority: params.Get("priority"),
			SortBy:   params.Get("sort"),
		},
	}

	result, err := h.listTodos.Handle(r.Context(), query)
	if err != nil {
		h.logger.Error("failed to list todos", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /api/v1/todos
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.createTodo.Handle(r.Context(), commands.CreateTodoCommand{
		OwnerID:     session.UserID,
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
		Priority:    req.Priority,
		Categories:  req.Categories,
	})
	if err != nil {
		h.writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, queries.ToDTO(result.Todo, time.Now()))
}

// Update handles PUT /api/v1/todos/{todoID}
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	todoID, err := uuid.Parse(r.PathValue("todoID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.updateTodo.Handle(r.Context(), commands.UpdateTodoCommand{
		ID:          todoID,
		OwnerID:     session.UserID,
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
		Priority:    req.Priority,
		Categories:  req.Categories,
	})
	if err != nil {
		h.writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, queries.ToDTO(result.Todo, time.Now()))
}

// ToggleComplete handles PATCH /api/v1/todos/{todoID}/complete
func (h *TodoHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	todoID, err := uuid.Parse(r.PathValue("todoID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	var req struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.toggleTodo.Handle(r.Context(), commands.ToggleTodoCommand{
		ID:        todoID,
		OwnerID:   session.UserID,
		Completed: req.Completed,
	})
	if err != nil {
		h.writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, queries.ToDTO(result.Todo, time.Now()))
}

// Delete handles DELETE /api/v1/todos/{todoID}
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	todoID, err := uuid.Parse(r.PathValue("todoID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	if err := h.deleteTodo.Handle(r.Context(), commands.DeleteTodoCommand{
		ID:      todoID,
		OwnerID: session.UserID,
	}); err != nil {
		h.writeTodoError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeTodoError maps todo mutation failures onto status codes. The
// underlying message is surfaced unmodified.
func (h *TodoHandler) writeTodoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, todo.ErrEmptyTitle), errors.Is(err, value_objects.ErrInvalidPriority):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, todo.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, todo.ErrTodoNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("todo mutation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
