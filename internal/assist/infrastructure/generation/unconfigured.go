package generation

import (
	"context"

	"github.com/Swacker3927/ai-todo-manager/internal/assist/domain"
)

type unconfiguredGenerator struct{}

// Unconfigured returns a generator that fails every call with a
// configuration error. It stands in when no API key is set, so the
// service can still run its non-AI routes.
func Unconfigured() domain.Generator {
	return unconfiguredGenerator{}
}

func (unconfiguredGenerator) ExtractTask(ctx context.Context, prompt string) (*domain.ExtractionResult, error) {
	return nil, domain.NewError(domain.KindConfiguration, "GEMINI_API_KEY is not configured")
}

func (unconfiguredGenerator) AnalyzeTodos(ctx context.Context, prompt string) (*domain.AnalysisResult, error) {
	return nil, domain.NewError(domain.KindConfiguration, "GEMINI_API_KEY is not configured")
}
