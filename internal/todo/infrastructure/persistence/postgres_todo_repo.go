package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/value_objects"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgresTodoRepository implements todo.Repository using PostgreSQL.
type PostgresTodoRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTodoRepository creates a new PostgreSQL todo repository.
func NewPostgresTodoRepository(pool *pgxpool.Pool) *PostgresTodoRepository {
	return &PostgresTodoRepository{pool: pool}
}

type todoRow struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description *string
	DueAt       *time.Time
	Priority    string
	Categories  []string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Save persists a todo, inserting or updating as needed. Updates are scoped
// by owner so a save can never cross an ownership boundary.
func (r *PostgresTodoRepository) Save(ctx context.Context, t *todo.Todo) error {
	var description *string
	if t.Description() != "" {
		desc := t.Description()
		description = &desc
	}

	query := `
		INSERT INTO todos (
			id, owner_id, title, description, due_at, priority,
			categories, completed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			due_at = EXCLUDED.due_at,
			priority = EXCLUDED.priority,
			categories = EXCLUDED.categories,
			completed = EXCLUDED.completed,
			updated_at = EXCLUDED.updated_at
		WHERE todos.owner_id = EXCLUDED.owner_id
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID(),
		t.OwnerID(),
		t.Title(),
		description,
		t.DueAt(),
		t.Priority().String(),
		pq.Array(t.Categories()),
		t.IsCompleted(),
		t.CreatedAt(),
		t.UpdatedAt(),
	)
	return err
}

// FindByID retrieves a todo by its ID.
func (r *PostgresTodoRepository) FindByID(ctx context.Context, id uuid.UUID) (*todo.Todo, error) {
	query := `
		SELECT id, owner_id, title, description, due_at, priority,
		       categories, completed, created_at, updated_at
		FROM todos
		WHERE id = $1
	`

	var row todoRow
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.OwnerID,
		&row.Title,
		&row.Description,
		&row.DueAt,
		&row.Priority,
		pq.Array(&row.Categories),
		&row.Completed,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, todo.ErrTodoNotFound
		}
		return nil, err
	}

	return rowToTodo(row), nil
}

// FindByOwner retrieves all todos for an owner, newest first.
func (r *PostgresTodoRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*todo.Todo, error) {
	query := `
		SELECT id, owner_id, title, description, due_at, priority,
		       categories, completed, created_at, updated_at
		FROM todos
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []*todo.Todo
	for rows.Next() {
		var row todoRow
		if err := rows.Scan(
			&row.ID,
			&row.OwnerID,
			&row.Title,
			&row.Description,
			&row.DueAt,
			&row.Priority,
			pq.Array(&row.Categories),
			&row.Completed,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, rowToTodo(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}

// Delete removes a todo scoped by id and owner.
func (r *PostgresTodoRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return todo.ErrTodoNotFound
	}
	return nil
}

func rowToTodo(row todoRow) *todo.Todo {
	description := ""
	if row.Description != nil {
		description = *row.Description
	}

	priority, err := value_objects.ParsePriority(row.Priority)
	if err != nil {
		priority = value_objects.PriorityNone
	}

	return todo.Rehydrate(
		row.ID,
		row.OwnerID,
		row.Title,
		description,
		row.DueAt,
		priority,
		row.Categories,
		row.Completed,
		row.CreatedAt,
		row.UpdatedAt,
	)
}
