package domain

import "context"

// Generator invokes a hosted model with a schema-constrained output. The
// returned values are untrusted model output; callers normalize them before
// use. Implementations perform no automatic retries.
type Generator interface {
	ExtractTask(ctx context.Context, prompt string) (*ExtractionResult, error)
	AnalyzeTodos(ctx context.Context, prompt string) (*AnalysisResult, error)
}
