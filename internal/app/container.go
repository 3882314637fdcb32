// Package app wires the application together.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	assistApp "github.com/Swacker3927/ai-todo-manager/internal/assist/application"
	assistDomain "github.com/Swacker3927/ai-todo-manager/internal/assist/domain"
	"github.com/Swacker3927/ai-todo-manager/internal/assist/infrastructure/generation"
	identityApp "github.com/Swacker3927/ai-todo-manager/internal/identity/application"
	"github.com/Swacker3927/ai-todo-manager/internal/shared/infrastructure/migrations"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/application/commands"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/application/queries"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/infrastructure/persistence"
	"github.com/Swacker3927/ai-todo-manager/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/language"

	_ "modernc.org/sqlite"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database (one of the two is set, per DATABASE_DRIVER)
	PgPool   *pgxpool.Pool
	SQLiteDB *sql.DB

	// Repositories
	TodoRepo todo.Repository

	// Todo handlers
	CreateTodoHandler *commands.CreateTodoHandler
	UpdateTodoHandler *commands.UpdateTodoHandler
	ToggleTodoHandler *commands.ToggleTodoHandler
	DeleteTodoHandler *commands.DeleteTodoHandler
	ListTodosHandler  *queries.ListTodosHandler

	// Assist
	Generator           assistDomain.Generator
	ExtractTaskHandler  *assistApp.ExtractTaskHandler
	AnalyzeTodosHandler *assistApp.AnalyzeTodosHandler

	// Identity
	SessionVerifier *identityApp.SessionVerifier
}

// NewContainer creates and initializes all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	switch cfg.DatabaseDriver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		c.PgPool = pool
		c.TodoRepo = persistence.NewPostgresTodoRepository(pool)
	case "sqlite":
		dbConn, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := dbConn.PingContext(ctx); err != nil {
			_ = dbConn.Close()
			return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
		}
		// SQLite is the zero-setup local path, so keep its schema current.
		if err := migrations.RunSQLiteMigrations(ctx, dbConn); err != nil {
			_ = dbConn.Close()
			return nil, fmt.Errorf("failed to run sqlite migrations: %w", err)
		}
		c.SQLiteDB = dbConn
		c.TodoRepo = persistence.NewSQLiteTodoRepository(dbConn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	verifier, err := identityApp.NewSessionVerifier(cfg.SessionSecret)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create session verifier: %w", err)
	}
	c.SessionVerifier = verifier

	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, AI endpoints will report a configuration error")
		c.Generator = generation.Unconfigured()
	} else {
		generator, err := generation.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create generator: %w", err)
		}
		c.Generator = generation.WithTimeout(generator, cfg.GeminiTimeout)
	}

	c.CreateTodoHandler = commands.NewCreateTodoHandler(c.TodoRepo)
	c.UpdateTodoHandler = commands.NewUpdateTodoHandler(c.TodoRepo)
	c.ToggleTodoHandler = commands.NewToggleTodoHandler(c.TodoRepo)
	c.DeleteTodoHandler = commands.NewDeleteTodoHandler(c.TodoRepo)
	c.ListTodosHandler = queries.NewListTodosHandler(c.TodoRepo, language.Make(cfg.Locale))

	c.ExtractTaskHandler = assistApp.NewExtractTaskHandler(c.Generator, cfg.ExtractMinInputLen, cfg.ExtractMaxInputLen)
	c.AnalyzeTodosHandler = assistApp.NewAnalyzeTodosHandler(c.TodoRepo, c.Generator)

	return c, nil
}

// Migrate applies the schema migrations for the configured driver.
func (c *Container) Migrate(ctx context.Context) error {
	switch {
	case c.PgPool != nil:
		return migrations.RunPostgresMigrations(ctx, c.PgPool)
	case c.SQLiteDB != nil:
		return migrations.RunSQLiteMigrations(ctx, c.SQLiteDB)
	default:
		return fmt.Errorf("no database configured")
	}
}

// Close releases all resources.
func (c *Container) Close() {
	if c.PgPool != nil {
		c.PgPool.Close()
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Error("failed to close sqlite database", "error", err)
		}
	}
}
