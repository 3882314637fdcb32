package todo

import (
	"errors"
	"strings"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/shared/domain"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/value_objects"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle = errors.New("todo title cannot be empty")
	ErrNotOwner   = errors.New("todo belongs to a different owner")
)

// Status is the derived lifecycle state of a todo. It is computed from the
// record, never stored.
type Status int

const (
	StatusInProgress Status = iota
	StatusOverdue
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in-progress"
	case StatusOverdue:
		return "overdue"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// ParseStatus creates a Status from a string.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in-progress":
		return StatusInProgress, true
	case "overdue":
		return StatusOverdue, true
	case "done":
		return StatusDone, true
	}
	return StatusInProgress, false
}

// Todo represents a single work item owned by exactly one user.
type Todo struct {
	domain.BaseEntity
	ownerID     uuid.UUID
	title       string
	description string
	dueAt       *time.Time
	priority    value_objects.Priority
	categories  []string
	completed   bool
}

// NewTodo creates a new todo with the given title.
func NewTodo(ownerID uuid.UUID, title string) (*Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	return &Todo{
		BaseEntity: domain.NewBaseEntity(),
		ownerID:    ownerID,
		title:      title,
		priority:   value_objects.PriorityNone,
	}, nil
}

// Rehydrate recreates a todo from persisted state.
func Rehydrate(
	id, ownerID uuid.UUID,
	title, description string,
	dueAt *time.Time,
	priority value_objects.Priority,
	categories []string,
	completed bool,
	createdAt, updatedAt time.Time,
) *Todo {
	return &Todo{
		BaseEntity:  domain.RehydrateBaseEntity(id, createdAt, updatedAt),
		ownerID:     ownerID,
		title:       title,
		description: description,
		dueAt:       dueAt,
		priority:    priority,
		categories:  categories,
		completed:   completed,
	}
}

// Getters

func (t *Todo) OwnerID() uuid.UUID                  { return t.ownerID }
func (t *Todo) Title() string                       { return t.title }
func (t *Todo) Description() string                 { return t.description }
func (t *Todo) DueAt() *time.Time                   { return t.dueAt }
func (t *Todo) Priority() value_objects.Priority    { return t.priority }
func (t *Todo) Categories() []string                { return t.categories }
func (t *Todo) IsCompleted() bool                   { return t.completed }
func (t *Todo) IsOwnedBy(ownerID uuid.UUID) bool    { return t.ownerID == ownerID }

// StatusAt derives the status with respect to an explicit reference instant.
// Every todo maps to exactly one status.
func (t *Todo) StatusAt(ref time.Time) Status {
	if t.completed {
		return StatusDone
	}
	if t.dueAt != nil && t.dueAt.Before(ref) {
		return StatusOverdue
	}
	return StatusInProgress
}

// SetTitle updates the todo title.
func (t *Todo) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	t.title = title
	t.Touch()
	return nil
}

// SetDescription updates the todo description.
func (t *Todo) SetDescription(description string) {
	t.description = strings.TrimSpace(description)
	t.Touch()
}

// SetDueAt updates the due timestamp. A nil value clears the deadline.
func (t *Todo) SetDueAt(dueAt *time.Time) {
	t.dueAt = dueAt
	t.Touch()
}

// SetPriority updates the priority.
func (t *Todo) SetPriority(priority value_objects.Priority) {
	t.priority = priority
	t.Touch()
}

// SetCategories replaces the category labels, dropping blanks and duplicates
// while preserving insertion order.
func (t *Todo) SetCategories(categories []string) {
	seen := make(map[string]struct{}, len(categories))
	cleaned := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cleaned = append(cleaned, c)
	}
	t.categories = cleaned
	t.Touch()
}

// SetCompleted toggles the completion flag.
func (t *Todo) SetCompleted(completed bool) {
	t.completed = completed
	t.Touch()
}
