package application

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Swacker3927/ai-todo-manager/internal/assist/domain"
	"golang.org/x/text/unicode/norm"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
	maxPictographs    = 10
)

// ExtractTaskCommand contains the free-text instruction to turn into a todo
// draft. Now is the reference instant; zero means "current time".
type ExtractTaskCommand struct {
	Text string
	Now  time.Time
}

// ExtractTaskHandler handles the ExtractTaskCommand.
type ExtractTaskHandler struct {
	gen    domain.Generator
	minLen int
	maxLen int
}

// NewExtractTaskHandler creates a new ExtractTaskHandler with the given
// input length bounds.
func NewExtractTaskHandler(gen domain.Generator, minLen, maxLen int) *ExtractTaskHandler {
	return &ExtractTaskHandler{gen: gen, minLen: minLen, maxLen: maxLen}
}

// Handle preprocesses and validates the input, asks the model for a
// structured draft and normalizes whatever comes back. The returned draft is
// always well formed, no matter what the model produced.
func (h *ExtractTaskHandler) Handle(ctx context.Context, cmd ExtractTaskCommand) (*domain.ExtractionResult, error) {
	now := cmd.Now
	if now.IsZero() {
		now = time.Now()
	}

	text := preprocessInput(cmd.Text)
	if err := h.validateInput(text); err != nil {
		return nil, err
	}

	raw, err := h.gen.ExtractTask(ctx, BuildExtractionPrompt(text, now))
	if err != nil {
		return nil, err
	}

	return NormalizeExtraction(raw, now), nil
}

// preprocessInput trims, collapses internal whitespace runs to single spaces
// and applies Unicode canonical normalization.
func preprocessInput(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

func (h *ExtractTaskHandler) validateInput(text string) error {
	if text == "" {
		return domain.NewError(domain.KindValidation, "input text cannot be empty")
	}

	length := len([]rune(text))
	if length < h.minLen {
		return domain.NewError(domain.KindValidation,
			fmt.Sprintf("input is too short (minimum %d characters)", h.minLen))
	}
	if length > h.maxLen {
		return domain.NewError(domain.KindValidation,
			fmt.Sprintf("input is too long (maximum %d characters)", h.maxLen))
	}

	if countPictographs(text) > maxPictographs {
		return domain.NewError(domain.KindValidation, "input contains too many emoji")
	}

	return nil
}

// pictographs covers the common emoji and symbol blocks. This is a sanity
// guard against nonsense input, not a content filter.
var pictographs = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1}, // miscellaneous symbols
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1}, // dingbats
	},
	R32: []unicode.Range32{
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // symbols and pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport and map
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1}, // supplemental symbols
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1}, // symbols extended-A
	},
}

func countPictographs(s string) int {
	count := 0
	for _, r := range s {
		if unicode.Is(pictographs, r) {
			count++
		}
	}
	return count
}
