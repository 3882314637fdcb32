package commands

import (
	"context"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/value_objects"
	"github.com/google/uuid"
)

// UpdateTodoCommand contains the full replacement state for an edit. The
// owner must match the record's owner or the update is rejected.
type UpdateTodoCommand struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	DueAt       *time.Time
	Priority    string
	Categories  []string
}

// UpdateTodoResult contains the updated todo.
type UpdateTodoResult struct {
	Todo *todo.Todo
}

// UpdateTodoHandler handles the UpdateTodoCommand.
type UpdateTodoHandler struct {
	todoRepo todo.Repository
}

// NewUpdateTodoHandler creates a new UpdateTodoHandler.
func NewUpdateTodoHandler(todoRepo todo.Repository) *UpdateTodoHandler {
	return &UpdateTodoHandler{todoRepo: todoRepo}
}

// Handle executes the UpdateTodoCommand.
func (h *UpdateTodoHandler) Handle(ctx context.Context, cmd UpdateTodoCommand) (*UpdateTodoResult, error) {
	t, err := h.todoRepo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if !t.IsOwnedBy(cmd.OwnerID) {
		return nil, todo.ErrNotOwner
	}

	if err := t.SetTitle(cmd.Title); err != nil {
		return nil, err
	}
	t.SetDescription(cmd.Description)
	t.SetDueAt(cmd.DueAt)

	priority := value_objects.PriorityNone
	if cmd.Priority != "" {
		priority, err = value_objects.ParsePriority(cmd.Priority)
		if err != nil {
			return nil, err
		}
	}
	t.SetPriority(priority)
	t.SetCategories(cmd.Categories)

	if err := h.todoRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	return &UpdateTodoResult{Todo: t}, nil
}
