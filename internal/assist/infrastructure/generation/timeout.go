package generation

import (
	"context"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/assist/domain"
)

type timeoutGenerator struct {
	inner   domain.Generator
	timeout time.Duration
}

// WithTimeout bounds every model call with a deadline. A zero or negative
// timeout returns the generator unchanged.
func WithTimeout(inner domain.Generator, timeout time.Duration) domain.Generator {
	if timeout <= 0 {
		return inner
	}
	return &timeoutGenerator{inner: inner, timeout: timeout}
}

func (g *timeoutGenerator) ExtractTask(ctx context.Context, prompt string) (*domain.ExtractionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.inner.ExtractTask(ctx, prompt)
}

func (g *timeoutGenerator) AnalyzeTodos(ctx context.Context, prompt string) (*domain.AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.inner.AnalyzeTodos(ctx, prompt)
}
