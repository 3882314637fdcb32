// Package generation implements the hosted-model boundary using the Google
// Gemini API with schema-constrained output.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Swacker3927/ai-todo-manager/internal/assist/domain"
	"google.golang.org/genai"
)

// GeminiGenerator implements domain.Generator against the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator. A missing API key is
// a configuration error, detected before any model call.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, domain.NewError(domain.KindConfiguration, "GEMINI_API_KEY is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, domain.WrapError(domain.KindConfiguration, "failed to create Gemini client", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

var extractionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":       {Type: genai.TypeString, Description: "Concise task title"},
		"description": {Type: genai.TypeString, Description: "Optional details"},
		"due_date":    {Type: genai.TypeString, Description: "Calendar date, YYYY-MM-DD"},
		"due_time":    {Type: genai.TypeString, Description: "24-hour time, HH:MM"},
		"priority":    {Type: genai.TypeString, Description: "high, medium or low"},
		"category":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"title"},
}

var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary":         {Type: genai.TypeString},
		"urgentTasks":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"insights":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"recommendations": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"summary", "urgentTasks", "insights", "recommendations"},
}

// ExtractTask asks the model for a structured todo draft.
func (g *GeminiGenerator) ExtractTask(ctx context.Context, prompt string) (*domain.ExtractionResult, error) {
	var result domain.ExtractionResult
	if err := g.generate(ctx, prompt, extractionSchema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeTodos asks the model for a period summary.
func (g *GeminiGenerator) AnalyzeTodos(ctx context.Context, prompt string) (*domain.AnalysisResult, error) {
	var result domain.AnalysisResult
	if err := g.generate(ctx, prompt, analysisSchema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// generate performs a single schema-constrained call. There is no retry; a
// failed call is surfaced to the user, classified.
func (g *GeminiGenerator) generate(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr[float32](0.2),
	})
	if err != nil {
		return g.classifyError(err)
	}

	text := resp.Text()
	if text == "" {
		return domain.NewError(domain.KindUnknown, "model returned no content")
	}

	// The response nominally conforms to the requested schema, but it is
	// still untrusted input; callers run the full normalization pass on it.
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return domain.WrapError(domain.KindUnknown, "model returned malformed JSON", err)
	}

	return nil
}

// classifyError maps a Gemini client failure onto the assist taxonomy. The
// structured API error code is preferred; the substring table is the
// fallback for errors without one.
func (g *GeminiGenerator) classifyError(err error) error {
	var assistErr *domain.Error
	if errors.As(err, &assistErr) {
		return assistErr
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.WrapError(domain.KindUpstreamAuth, "model authentication failed", err)
		case http.StatusNotFound:
			return domain.WrapError(domain.KindNotFound, fmt.Sprintf("model %q not found", g.model), err)
		case http.StatusTooManyRequests:
			return domain.WrapError(domain.KindRateLimited, "model rate limit exceeded, try again later", err)
		case http.StatusBadRequest:
			return domain.WrapError(domain.KindValidation, "model rejected the request", err)
		}
	}

	kind := domain.ClassifyMessage(err.Error())
	switch kind {
	case domain.KindUpstreamAuth:
		return domain.WrapError(kind, "model authentication failed", err)
	case domain.KindNotFound:
		return domain.WrapError(kind, "model not found", err)
	case domain.KindRateLimited:
		return domain.WrapError(kind, "model rate limit exceeded, try again later", err)
	case domain.KindValidation:
		return domain.WrapError(kind, "model rejected the request", err)
	default:
		return domain.WrapError(domain.KindUnknown, "model request failed", err)
	}
}
