package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/value_objects"
	"github.com/google/uuid"
)

// SQLiteTodoRepository implements todo.Repository using SQLite. Categories
// are stored as a JSON array and timestamps as RFC3339 strings.
type SQLiteTodoRepository struct {
	dbConn *sql.DB
}

// NewSQLiteTodoRepository creates a new SQLite todo repository.
func NewSQLiteTodoRepository(dbConn *sql.DB) *SQLiteTodoRepository {
	return &SQLiteTodoRepository{dbConn: dbConn}
}

// Save persists a todo, inserting or updating as needed.
func (r *SQLiteTodoRepository) Save(ctx context.Context, t *todo.Todo) error {
	var description sql.NullString
	if t.Description() != "" {
		description = sql.NullString{String: t.Description(), Valid: true}
	}

	var dueAt sql.NullString
	if t.DueAt() != nil {
		dueAt = sql.NullString{String: t.DueAt().UTC().Format(time.RFC3339), Valid: true}
	}

	categories, err := json.Marshal(t.Categories())
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}

	query := `
		INSERT INTO todos (
			id, owner_id, title, description, due_at, priority,
			categories, completed, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			due_at = excluded.due_at,
			priority = excluded.priority,
			categories = excluded.categories,
			completed = excluded.completed,
			updated_at = excluded.updated_at
		WHERE todos.owner_id = excluded.owner_id
	`

	_, err = r.dbConn.ExecContext(ctx, query,
		t.ID().String(),
		t.OwnerID().String(),
		t.Title(),
		description,
		dueAt,
		t.Priority().String(),
		string(categories),
		t.IsCompleted(),
		t.CreatedAt().UTC().Format(time.RFC3339),
		t.UpdatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

// FindByID retrieves a todo by its ID.
func (r *SQLiteTodoRepository) FindByID(ctx context.Context, id uuid.UUID) (*todo.Todo, error) {
	query := `
		SELECT id, owner_id, title, description, due_at, priority,
		       categories, completed, created_at, updated_at
		FROM todos
		WHERE id = ?
	`

	t, err := r.scanTodo(r.dbConn.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, todo.ErrTodoNotFound
		}
		return nil, err
	}
	return t, nil
}

// FindByOwner retrieves all todos for an owner, newest first.
func (r *SQLiteTodoRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*todo.Todo, error) {
	query := `
		SELECT id, owner_id, title, description, due_at, priority,
		       categories, completed, created_at, updated_at
		FROM todos
		WHERE owner_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.dbConn.QueryContext(ctx, query, ownerID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []*todo.Todo
	for rows.Next() {
		t, err := r.scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}

// Delete removes a todo scoped by id and owner.
func (r *SQLiteTodoRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result, err := r.dbConn.ExecContext(ctx,
		`DELETE FROM todos WHERE id = ? AND owner_id = ?`,
		id.String(), ownerID.String(),
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return todo.ErrTodoNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteTodoRepository) scanTodo(row rowScanner) (*todo.Todo, error) {
	var (
		idStr, ownerStr, title, priorityStr string
		description, dueAtStr               sql.NullString
		categoriesJSON                      string
		completed                           bool
		createdAtStr, updatedAtStr          string
	)

	if err := row.Scan(
		&idStr, &ownerStr, &title, &description, &dueAtStr,
		&priorityStr, &categoriesJSON, &completed, &createdAtStr, &updatedAtStr,
	); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid todo id %q: %w", idStr, err)
	}
	ownerID, err := uuid.Parse(ownerStr)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id %q: %w", ownerStr, err)
	}

	var dueAt *time.Time
	if dueAtStr.Valid {
		parsed, err := time.Parse(time.RFC3339, dueAtStr.String)
		if err != nil {
			return nil, fmt.Errorf("invalid due_at %q: %w", dueAtStr.String, err)
		}
		dueAt = &parsed
	}

	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAtStr, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at %q: %w", updatedAtStr, err)
	}

	var categories []string
	if categoriesJSON != "" {
		if err := json.Unmarshal([]byte(categoriesJSON), &categories); err != nil {
			return nil, fmt.Errorf("invalid categories %q: %w", categoriesJSON, err)
		}
	}

	priority, err := value_objects.ParsePriority(priorityStr)
	if err != nil {
		priority = value_objects.PriorityNone
	}

	return todo.Rehydrate(
		id, ownerID, title, description.String, dueAt,
		priority, categories, completed, createdAt, updatedAt,
	), nil
}
