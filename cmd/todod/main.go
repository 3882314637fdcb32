package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Swacker3927/ai-todo-manager/adapter/api"
	"github.com/Swacker3927/ai-todo-manager/internal/app"
	"github.com/Swacker3927/ai-todo-manager/pkg/config"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	rootCmd := &cobra.Command{
		Use:   "todod",
		Short: "AI-assisted todo service",
	}
	rootCmd.AddCommand(serveCmd(logger), migrateCmd(logger))

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func setup(ctx context.Context, logger *slog.Logger) (*app.Container, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, logger, err
	}

	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, logger, err
	}
	return container, logger, nil
}

func serveCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			container, logger, err := setup(ctx, logger)
			if err != nil {
				return err
			}
			defer container.Close()

			todoHandler := api.NewTodoHandler(api.TodoHandlerConfig{
				CreateTodo: container.CreateTodoHandler,
				UpdateTodo: container.UpdateTodoHandler,
				ToggleTodo: container.ToggleTodoHandler,
				DeleteTodo: container.DeleteTodoHandler,
				ListTodos:  container.ListTodosHandler,
				Logger:     logger,
			})
			assistHandler := api.NewAssistHandler(container.ExtractTaskHandler, container.AnalyzeTodosHandler, logger)
			auth := api.NewAuthMiddleware(container.SessionVerifier, logger)

			server := api.NewServer(api.ServerConfig{
				Addr:         container.Config.ServerAddr,
				ReadTimeout:  container.Config.ServerReadTimeout,
				WriteTimeout: container.Config.ServerWriteTimeout,
				IdleTimeout:  container.Config.ServerIdleTimeout,
			}, todoHandler, assistHandler, auth, logger)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("received signal, shutting down", "signal", sig)
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer shutdownCancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}

func migrateCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			container, logger, err := setup(ctx, logger)
			if err != nil {
				return err
			}
			defer container.Close()

			if err := container.Migrate(ctx); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}
