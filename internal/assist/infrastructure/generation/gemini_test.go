package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/assist/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewGeminiGenerator_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", "gemini-2.0-flash")

	var assistErr *domain.Error
	require.ErrorAs(t, err, &assistErr)
	assert.Equal(t, domain.KindConfiguration, assistErr.Kind)
}

func TestGeminiGenerator_ClassifyError(t *testing.T) {
	g := &GeminiGenerator{model: "gemini-2.0-flash"}

	kindOf := func(t *testing.T, err error) (domain.Kind, string) {
		t.Helper()
		var assistErr *domain.Error
		require.ErrorAs(t, err, &assistErr)
		return assistErr.Kind, assistErr.Message
	}

	t.Run("structured codes win", func(t *testing.T) {
		cases := []struct {
			code int
			want domain.Kind
		}{
			{401, domain.KindUpstreamAuth},
			{403, domain.KindUpstreamAuth},
			{404, domain.KindNotFound},
			{429, domain.KindRateLimited},
			{400, domain.KindValidation},
		}
		for _, tc := range cases {
			kind, _ := kindOf(t, g.classifyError(genai.APIError{Code: tc.code, Message: "upstream"}))
			assert.Equal(t, tc.want, kind, tc.code)
		}
	})

	t.Run("not found names the model", func(t *testing.T) {
		_, msg := kindOf(t, g.classifyError(genai.APIError{Code: 404, Message: "gone"}))
		assert.Contains(t, msg, "gemini-2.0-flash")
	})

	t.Run("substring fallback without a code", func(t *testing.T) {
		kind, _ := kindOf(t, g.classifyError(errors.New("API key not valid")))
		assert.Equal(t, domain.KindUpstreamAuth, kind)

		kind, _ = kindOf(t, g.classifyError(errors.New("rate limit exceeded")))
		assert.Equal(t, domain.KindRateLimited, kind)
	})

	t.Run("unmatched errors stay unknown", func(t *testing.T) {
		kind, _ := kindOf(t, g.classifyError(errors.New("connection reset by peer")))
		assert.Equal(t, domain.KindUnknown, kind)
	})

	t.Run("already classified errors pass through", func(t *testing.T) {
		orig := domain.NewError(domain.KindConfiguration, "no key")
		assert.Same(t, orig, g.classifyError(orig))
	})
}

func TestUnconfigured(t *testing.T) {
	gen := Unconfigured()

	_, err := gen.ExtractTask(context.Background(), "prompt")
	var assistErr *domain.Error
	require.ErrorAs(t, err, &assistErr)
	assert.Equal(t, domain.KindConfiguration, assistErr.Kind)

	_, err = gen.AnalyzeTodos(context.Background(), "prompt")
	require.ErrorAs(t, err, &assistErr)
	assert.Equal(t, domain.KindConfiguration, assistErr.Kind)
}

type deadlineProbe struct {
	sawDeadline bool
}

func (p *deadlineProbe) ExtractTask(ctx context.Context, prompt string) (*domain.ExtractionResult, error) {
	_, p.sawDeadline = ctx.Deadline()
	return &domain.ExtractionResult{}, nil
}

func (p *deadlineProbe) AnalyzeTodos(ctx context.Context, prompt string) (*domain.AnalysisResult, error) {
	_, p.sawDeadline = ctx.Deadline()
	return &domain.AnalysisResult{}, nil
}

func TestWithTimeout(t *testing.T) {
	t.Run("applies a deadline", func(t *testing.T) {
		probe := &deadlineProbe{}
		gen := WithTimeout(probe, time.Minute)

		_, err := gen.ExtractTask(context.Background(), "prompt")
		require.NoError(t, err)
		assert.True(t, probe.sawDeadline)

		probe.sawDeadline = false
		_, err = gen.AnalyzeTodos(context.Background(), "prompt")
		require.NoError(t, err)
		assert.True(t, probe.sawDeadline)
	})

	t.Run("zero timeout is a no-op", func(t *testing.T) {
		probe := &deadlineProbe{}
		assert.Equal(t, domain.Generator(probe), WithTimeout(probe, 0))
	})
}
