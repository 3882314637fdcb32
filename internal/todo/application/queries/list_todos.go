package queries

import (
	"context"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TodoDTO is a data transfer object for todos.
type TodoDTO struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Categories  []string   `json:"categories"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListTodosQuery contains the parameters for listing todos.
type ListTodosQuery struct {
	OwnerID  uuid.UUID
	Criteria Criteria
	Now      time.Time // reference instant; zero means "current time"
}

// ListTodosHandler handles the ListTodosQuery.
type ListTodosHandler struct {
	todoRepo todo.Repository
	locale   language.Tag
}

// NewListTodosHandler creates a new ListTodosHandler. The locale controls
// collation for title sorting.
func NewListTodosHandler(todoRepo todo.Repository, locale language.Tag) *ListTodosHandler {
	return &ListTodosHandler{todoRepo: todoRepo, locale: locale}
}

// Handle executes the ListTodosQuery. The repository returns the owner's
// todos ordered by creation time descending; the derivation pipeline then
// applies the caller's criteria.
func (h *ListTodosHandler) Handle(ctx context.Context, query ListTodosQuery) ([]TodoDTO, error) {
	todos, err := h.todoRepo.FindByOwner(ctx, query.OwnerID)
	if err != nil {
		return nil, err
	}

	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}

	// A collator is not safe for concurrent use, so build one per request.
	derived := Derive(todos, query.Criteria, now, collate.New(h.locale))

	return toTodoDTOs(derived, now), nil
}

// ToDTO converts a single todo for API responses.
func ToDTO(t *todo.Todo, now time.Time) TodoDTO {
	categories := t.Categories()
	if categories == nil {
		categories = []string{}
	}
	return TodoDTO{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      t.StatusAt(now).String(),
		Priority:    t.Priority().String(),
		DueAt:       t.DueAt(),
		Categories:  categories,
		Completed:   t.IsCompleted(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func toTodoDTOs(todos []*todo.Todo, now time.Time) []TodoDTO {
	dtos := make([]TodoDTO, len(todos))
	for i, t := range todos {
		dtos[i] = ToDTO(t, now)
	}
	return dtos
}
