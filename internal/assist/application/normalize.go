package application

import (
	"regexp"
	"strings"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/assist/domain"
)

var dueTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var validPriorities = map[string]struct{}{
	"high":   {},
	"medium": {},
	"low":    {},
}

// NormalizeExtraction repairs a raw extraction so every field is well
// formed, regardless of what the model returned. The result never has an
// empty title, a due date before the reference day, a malformed due time, an
// unknown priority or an empty category list.
func NormalizeExtraction(raw *domain.ExtractionResult, now time.Time) *domain.ExtractionResult {
	out := &domain.ExtractionResult{}
	if raw != nil {
		*out = *raw
	}

	out.Title = strings.TrimSpace(out.Title)
	if out.Title == "" {
		out.Title = "Untitled task"
	}
	out.Title = truncate(out.Title, maxTitleLen)

	out.Description = truncate(strings.TrimSpace(out.Description), maxDescriptionLen)

	today := startOfDay(now)
	due, err := time.ParseInLocation(dateLayout, out.DueDate, now.Location())
	if err != nil || due.Before(today) {
		out.DueDate = today.Format(dateLayout)
	}

	if !dueTimePattern.MatchString(out.DueTime) {
		out.DueTime = "09:00"
	}

	out.Priority = strings.ToLower(strings.TrimSpace(out.Priority))
	if _, ok := validPriorities[out.Priority]; !ok {
		out.Priority = "medium"
	}

	categories := make([]string, 0, len(out.Category))
	for _, c := range out.Category {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	if len(categories) == 0 {
		categories = []string{"other"}
	}
	out.Category = categories

	return out
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
