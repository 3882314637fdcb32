package commands

import (
	"context"

	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"github.com/google/uuid"
)

// ToggleTodoCommand flips the completion flag of a todo. Only the completed
// flag and the update timestamp change.
type ToggleTodoCommand struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Completed bool
}

// ToggleTodoResult contains the toggled todo.
type ToggleTodoResult struct {
	Todo *todo.Todo
}

// ToggleTodoHandler handles the ToggleTodoCommand.
type ToggleTodoHandler struct {
	todoRepo todo.Repository
}

// NewToggleTodoHandler creates a new ToggleTodoHandler.
func NewToggleTodoHandler(todoRepo todo.Repository) *ToggleTodoHandler {
	return &ToggleTodoHandler{todoRepo: todoRepo}
}

// Handle executes the ToggleTodoCommand.
func (h *ToggleTodoHandler) Handle(ctx context.Context, cmd ToggleTodoCommand) (*ToggleTodoResult, error) {
	t, err := h.todoRepo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if !t.IsOwnedBy(cmd.OwnerID) {
		return nil, todo.ErrNotOwner
	}

	t.SetCompleted(cmd.Completed)

	if err := h.todoRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	return &ToggleTodoResult{Todo: t}, nil
}
