package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/assist/domain"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTodoRepo struct {
	mock.Mock
}

func (m *mockTodoRepo) Save(ctx context.Context, t *todo.Todo) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTodoRepo) FindByID(ctx context.Context, id uuid.UUID) (*todo.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *mockTodoRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*todo.Todo, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*todo.Todo), args.Error(1)
}

func (m *mockTodoRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

var analyzeRef = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) // a Friday

func TestAnalyzeTodosHandler_Handle(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("rejects an unknown period before touching the repository", func(t *testing.T) {
		repo := new(mockTodoRepo)
		gen := &fakeGenerator{}
		handler := NewAnalyzeTodosHandler(repo, gen)

		_, err := handler.Handle(ctx, AnalyzeTodosCommand{OwnerID: ownerID, Period: "month", Now: analyzeRef})

		var assistErr *domain.Error
		require.ErrorAs(t, err, &assistErr)
		assert.Equal(t, domain.KindValidation, assistErr.Kind)
		repo.AssertNotCalled(t, "FindByOwner")
	})

	t.Run("empty period skips the model entirely", func(t *testing.T) {
		nextMonth := time.Date(2024, 4, 20, 9, 0, 0, 0, time.UTC)
		outside := buildTodo(statsSpec{title: "far away", dueAt: &nextMonth})

		repo := new(mockTodoRepo)
		repo.On("FindByOwner", ctx, ownerID).Return([]*todo.Todo{outside}, nil)
		gen := &fakeGenerator{}
		handler := NewAnalyzeTodosHandler(repo, gen)

		result, err := handler.Handle(ctx, AnalyzeTodosCommand{OwnerID: ownerID, Period: "today", Now: analyzeRef})

		require.NoError(t, err)
		assert.Contains(t, result.Summary, "No todos were found")
		assert.Empty(t, result.UrgentTasks)
		assert.NotEmpty(t, result.Insights)
		assert.NotEmpty(t, result.Recommendations)
		assert.Empty(t, gen.analyzeCalls)
	})

	t.Run("undated todos belong to every period", func(t *testing.T) {
		undated := buildTodo(statsSpec{title: "undated"})

		repo := new(mockTodoRepo)
		repo.On("FindByOwner", ctx, ownerID).Return([]*todo.Todo{undated}, nil)
		gen := &fakeGenerator{analyzeResult: &domain.AnalysisResult{Summary: "busy day"}}
		handler := NewAnalyzeTodosHandler(repo, gen)

		result, err := handler.Handle(ctx, AnalyzeTodosCommand{OwnerID: ownerID, Period: "today", Now: analyzeRef})

		require.NoError(t, err)
		assert.Equal(t, "busy day", result.Summary)
		require.Len(t, gen.analyzeCalls, 1)
		assert.Contains(t, gen.analyzeCalls[0], "undated")
	})

	t.Run("normalizes a partial model response", func(t *testing.T) {
		urgent := buildTodo(statsSpec{title: "ship release", dueAt: ts(15, 16)})

		repo := new(mockTodoRepo)
		repo.On("FindByOwner", ctx, ownerID).Return([]*todo.Todo{urgent}, nil)
		gen := &fakeGenerator{analyzeResult: &domain.AnalysisResult{}}
		handler := NewAnalyzeTodosHandler(repo, gen)

		result, err := handler.Handle(ctx, AnalyzeTodosCommand{OwnerID: ownerID, Period: "today", Now: analyzeRef})

		require.NoError(t, err)
		assert.Equal(t, "Analysis completed.", result.Summary)
		// Locally computed urgency backfills the missing urgent list.
		assert.Equal(t, []string{"ship release"}, result.UrgentTasks)
		assert.NotNil(t, result.Insights)
		assert.NotNil(t, result.Recommendations)
	})

	t.Run("wraps repository failures", func(t *testing.T) {
		repo := new(mockTodoRepo)
		repo.On("FindByOwner", ctx, ownerID).Return(nil, errors.New("db down"))
		gen := &fakeGenerator{}
		handler := NewAnalyzeTodosHandler(repo, gen)

		_, err := handler.Handle(ctx, AnalyzeTodosCommand{OwnerID: ownerID, Period: "week", Now: analyzeRef})

		var assistErr *domain.Error
		require.ErrorAs(t, err, &assistErr)
		assert.Equal(t, domain.KindUnknown, assistErr.Kind)
		assert.Empty(t, gen.analyzeCalls)
	})

	t.Run("propagates classified model failures", func(t *testing.T) {
		td := buildTodo(statsSpec{title: "task", dueAt: ts(15, 16)})
		repo := new(mockTodoRepo)
		repo.On("FindByOwner", ctx, ownerID).Return([]*todo.Todo{td}, nil)
		gen := &fakeGenerator{err: domain.NewError(domain.KindRateLimited, "slow down")}
		handler := NewAnalyzeTodosHandler(repo, gen)

		_, err := handler.Handle(ctx, AnalyzeTodosCommand{OwnerID: ownerID, Period: "today", Now: analyzeRef})

		var assistErr *domain.Error
		require.ErrorAs(t, err, &assistErr)
		assert.Equal(t, domain.KindRateLimited, assistErr.Kind)
	})

	t.Run("week prompt covers the whole week", func(t *testing.T) {
		monday := buildTodo(statsSpec{title: "monday task", dueAt: ts(11, 10)})
		sunday := buildTodo(statsSpec{title: "sunday task", dueAt: ts(17, 10)})

		repo := new(mockTodoRepo)
		repo.On("FindByOwner", ctx, ownerID).Return([]*todo.Todo{monday, sunday}, nil)
		gen := &fakeGenerator{analyzeResult: &domain.AnalysisResult{Summary: "solid week"}}
		handler := NewAnalyzeTodosHandler(repo, gen)

		_, err := handler.Handle(ctx, AnalyzeTodosCommand{OwnerID: ownerID, Period: "week", Now: analyzeRef})

		require.NoError(t, err)
		require.Len(t, gen.analyzeCalls, 1)
		assert.Contains(t, gen.analyzeCalls[0], "monday task")
		assert.Contains(t, gen.analyzeCalls[0], "sunday task")
	})
}
