package application

import (
	"context"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/assist/domain"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"github.com/google/uuid"
)

// AnalyzeTodosCommand requests an AI summary over one period of the caller's
// todos. Now is the reference instant; zero means "current time".
type AnalyzeTodosCommand struct {
	OwnerID uuid.UUID
	Period  string
	Now     time.Time
}

// AnalyzeTodosHandler handles the AnalyzeTodosCommand. The two periods are
// fully independent; a failure for one never affects the other.
type AnalyzeTodosHandler struct {
	todoRepo todo.Repository
	gen      domain.Generator
}

// NewAnalyzeTodosHandler creates a new AnalyzeTodosHandler.
func NewAnalyzeTodosHandler(todoRepo todo.Repository, gen domain.Generator) *AnalyzeTodosHandler {
	return &AnalyzeTodosHandler{todoRepo: todoRepo, gen: gen}
}

// Handle computes local statistics for the period and asks the model for a
// summary. With zero matching todos the model is never called and a canned
// result is returned instead.
func (h *AnalyzeTodosHandler) Handle(ctx context.Context, cmd AnalyzeTodosCommand) (*domain.AnalysisResult, error) {
	period, err := ParsePeriod(cmd.Period)
	if err != nil {
		return nil, err
	}

	now := cmd.Now
	if now.IsZero() {
		now = time.Now()
	}

	todos, err := h.todoRepo.FindByOwner(ctx, cmd.OwnerID)
	if err != nil {
		return nil, domain.WrapError(domain.KindUnknown, "failed to load todos", err)
	}

	window := WindowFor(period, now)
	matching := filterWindow(todos, window)
	if len(matching) == 0 {
		return emptyPeriodResult(period), nil
	}

	stats := ComputeStats(matching, now, period == PeriodWeek)

	previous := filterWindow(todos, PreviousWindow(period, now))
	prevRate := completionRateOf(previous)

	prompt := BuildAnalysisPrompt(period, now, stats, prevRate, matching)

	result, err := h.gen.AnalyzeTodos(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return normalizeAnalysis(result, stats), nil
}

// filterWindow keeps todos whose due time falls inside the window. Undated
// todos belong to every period.
func filterWindow(todos []*todo.Todo, w Window) []*todo.Todo {
	var matching []*todo.Todo
	for _, t := range todos {
		if t.DueAt() == nil || w.Contains(*t.DueAt()) {
			matching = append(matching, t)
		}
	}
	return matching
}

func completionRateOf(todos []*todo.Todo) float64 {
	completed := 0
	for _, t := range todos {
		if t.IsCompleted() {
			completed++
		}
	}
	return completionRate(completed, len(todos))
}

// emptyPeriodResult is the deterministic response for a period with no
// matching todos.
func emptyPeriodResult(period Period) *domain.AnalysisResult {
	scope := "today"
	if period == PeriodWeek {
		scope = "this week"
	}
	return &domain.AnalysisResult{
		Summary:         "No todos were found for " + scope + ".",
		UrgentTasks:     []string{},
		Insights:        []string{"You have a clean slate for " + scope + "."},
		Recommendations: []string{"Add a task to start planning " + scope + "."},
	}
}

// normalizeAnalysis repairs an untrusted model response so the caller always
// receives a well-formed result.
func normalizeAnalysis(raw *domain.AnalysisResult, stats *PeriodStats) *domain.AnalysisResult {
	out := &domain.AnalysisResult{}
	if raw != nil {
		*out = *raw
	}
	if out.Summary == "" {
		out.Summary = "Analysis completed."
	}
	if out.UrgentTasks == nil {
		out.UrgentTasks = stats.UrgentTitles
	}
	if out.UrgentTasks == nil {
		out.UrgentTasks = []string{}
	}
	if out.Insights == nil {
		out.Insights = []string{}
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	return out
}
