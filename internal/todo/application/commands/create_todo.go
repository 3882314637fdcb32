package commands

import (
	"context"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/value_objects"
	"github.com/google/uuid"
)

// CreateTodoCommand contains the data needed to create a todo.
type CreateTodoCommand struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	DueAt       *time.Time
	Priority    string
	Categories  []string
}

// CreateTodoResult contains the result of creating a todo.
type CreateTodoResult struct {
	Todo *todo.Todo
}

// CreateTodoHandler handles the CreateTodoCommand.
type CreateTodoHandler struct {
	todoRepo todo.Repository
}

// NewCreateTodoHandler creates a new CreateTodoHandler.
func NewCreateTodoHandler(todoRepo todo.Repository) *CreateTodoHandler {
	return &CreateTodoHandler{todoRepo: todoRepo}
}

// Handle executes the CreateTodoCommand.
func (h *CreateTodoHandler) Handle(ctx context.Context, cmd CreateTodoCommand) (*CreateTodoResult, error) {
	t, err := todo.NewTodo(cmd.OwnerID, cmd.Title)
	if err != nil {
		return nil, err
	}

	if cmd.Description != "" {
		t.SetDescription(cmd.Description)
	}

	if cmd.Priority != "" {
		priority, err := value_objects.ParsePriority(cmd.Priority)
		if err != nil {
			return nil, err
		}
		t.SetPriority(priority)
	}

	if cmd.DueAt != nil {
		t.SetDueAt(cmd.DueAt)
	}

	if len(cmd.Categories) > 0 {
		t.SetCategories(cmd.Categories)
	}

	if err := h.todoRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	return &CreateTodoResult{Todo: t}, nil
}
