package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/assist/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator records prompts and returns canned results.
type fakeGenerator struct {
	extractResult *domain.ExtractionResult
	analyzeResult *domain.AnalysisResult
	err           error

	extractCalls []string
	analyzeCalls []string
}

func (f *fakeGenerator) ExtractTask(ctx context.Context, prompt string) (*domain.ExtractionResult, error) {
	f.extractCalls = append(f.extractCalls, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return f.extractResult, nil
}

func (f *fakeGenerator) AnalyzeTodos(ctx context.Context, prompt string) (*domain.AnalysisResult, error) {
	f.analyzeCalls = append(f.analyzeCalls, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return f.analyzeResult, nil
}

var extractRef = time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC) // a Monday

func TestExtractTaskHandler_Validation(t *testing.T) {
	ctx := context.Background()

	assertValidation := func(t *testing.T, gen *fakeGenerator, err error) {
		t.Helper()
		var assistErr *domain.Error
		require.ErrorAs(t, err, &assistErr)
		assert.Equal(t, domain.KindValidation, assistErr.Kind)
		assert.Empty(t, gen.extractCalls)
	}

	t.Run("empty input", func(t *testing.T) {
		gen := &fakeGenerator{}
		handler := NewExtractTaskHandler(gen, 2, 500)
		_, err := handler.Handle(ctx, ExtractTaskCommand{Text: "   ", Now: extractRef})
		assertValidation(t, gen, err)
	})

	t.Run("too short", func(t *testing.T) {
		gen := &fakeGenerator{}
		handler := NewExtractTaskHandler(gen, 2, 500)
		_, err := handler.Handle(ctx, ExtractTaskCommand{Text: "a", Now: extractRef})
		assertValidation(t, gen, err)
	})

	t.Run("too long", func(t *testing.T) {
		gen := &fakeGenerator{}
		handler := NewExtractTaskHandler(gen, 2, 500)
		_, err := handler.Handle(ctx, ExtractTaskCommand{
			Text: strings.Repeat("a", 501),
			Now:  extractRef,
		})
		assertValidation(t, gen, err)
	})

	t.Run("length is measured after whitespace collapse", func(t *testing.T) {
		gen := &fakeGenerator{extractResult: &domain.ExtractionResult{Title: "ok"}}
		handler := NewExtractTaskHandler(gen, 2, 500)

		// 150 two-rune words padded with wide gaps exceed 500 characters raw
		// but collapse to within bounds.
		words := make([]string, 150)
		for i := range words {
			words[i] = "ab"
		}
		_, err := handler.Handle(ctx, ExtractTaskCommand{
			Text: strings.Join(words, "     "),
			Now:  extractRef,
		})
		require.NoError(t, err)
	})

	t.Run("too many emoji", func(t *testing.T) {
		gen := &fakeGenerator{}
		handler := NewExtractTaskHandler(gen, 2, 500)
		_, err := handler.Handle(ctx, ExtractTaskCommand{
			Text: "party " + strings.Repeat("\U0001F389", 11),
			Now:  extractRef,
		})
		assertValidation(t, gen, err)
	})

	t.Run("a few emoji are fine", func(t *testing.T) {
		gen := &fakeGenerator{extractResult: &domain.ExtractionResult{Title: "ok"}}
		handler := NewExtractTaskHandler(gen, 2, 500)
		_, err := handler.Handle(ctx, ExtractTaskCommand{
			Text: "plan party \U0001F389\U0001F389",
			Now:  extractRef,
		})
		require.NoError(t, err)
	})
}

func TestExtractTaskHandler_PromptContainsPreprocessedText(t *testing.T) {
	gen := &fakeGenerator{extractResult: &domain.ExtractionResult{Title: "ok"}}
	handler := NewExtractTaskHandler(gen, 2, 500)

	_, err := handler.Handle(context.Background(), ExtractTaskCommand{
		Text: "  buy   milk\ttomorrow  ",
		Now:  extractRef,
	})
	require.NoError(t, err)

	require.Len(t, gen.extractCalls, 1)
	prompt := gen.extractCalls[0]
	assert.Contains(t, prompt, "buy milk tomorrow")
	assert.NotContains(t, prompt, "buy   milk")
	assert.Contains(t, prompt, "2024-01-01")
	assert.Contains(t, prompt, "2024-01-02") // tomorrow
	assert.Contains(t, prompt, "Monday")
}

func TestExtractTaskHandler_NormalizesModelOutput(t *testing.T) {
	gen := &fakeGenerator{extractResult: &domain.ExtractionResult{
		Title:    "",
		DueDate:  "2023-12-25", // before the reference day
		DueTime:  "25:99",
		Priority: "URGENT",
	}}
	handler := NewExtractTaskHandler(gen, 2, 500)

	result, err := handler.Handle(context.Background(), ExtractTaskCommand{
		Text: "do the thing",
		Now:  extractRef,
	})
	require.NoError(t, err)

	assert.Equal(t, "Untitled task", result.Title)
	assert.Equal(t, "2024-01-01", result.DueDate)
	assert.Equal(t, "09:00", result.DueTime)
	assert.Equal(t, "medium", result.Priority)
	assert.Equal(t, []string{"other"}, result.Category)
}

func TestExtractTaskHandler_PropagatesGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: domain.NewError(domain.KindRateLimited, "slow down")}
	handler := NewExtractTaskHandler(gen, 2, 500)

	_, err := handler.Handle(context.Background(), ExtractTaskCommand{
		Text: "do the thing",
		Now:  extractRef,
	})

	var assistErr *domain.Error
	require.ErrorAs(t, err, &assistErr)
	assert.Equal(t, domain.KindRateLimited, assistErr.Kind)
}
