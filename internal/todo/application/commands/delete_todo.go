package commands

import (
	"context"

	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"github.com/google/uuid"
)

// DeleteTodoCommand removes a todo. The delete is owner-scoped at the store
// level, so a mismatched owner deletes nothing.
type DeleteTodoCommand struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

// DeleteTodoHandler handles the DeleteTodoCommand.
type DeleteTodoHandler struct {
	todoRepo todo.Repository
}

// NewDeleteTodoHandler creates a new DeleteTodoHandler.
func NewDeleteTodoHandler(todoRepo todo.Repository) *DeleteTodoHandler {
	return &DeleteTodoHandler{todoRepo: todoRepo}
}

// Handle executes the DeleteTodoCommand.
func (h *DeleteTodoHandler) Handle(ctx context.Context, cmd DeleteTodoCommand) error {
	return h.todoRepo.Delete(ctx, cmd.ID, cmd.OwnerID)
}
