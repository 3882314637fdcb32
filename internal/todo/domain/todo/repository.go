package todo

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTodoNotFound is returned when no todo matches the requested id (or the
// owner scope on owner-scoped operations).
var ErrTodoNotFound = errors.New("todo not found")

// Repository defines the interface for todo persistence. Update and delete
// are scoped by owner at the store level; the ownership predicate in the
// application layer is not the security boundary on its own.
type Repository interface {
	Save(ctx context.Context, t *Todo) error
	FindByID(ctx context.Context, id uuid.UUID) (*Todo, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Todo, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
