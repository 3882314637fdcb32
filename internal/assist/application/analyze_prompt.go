package application

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
)

// BuildAnalysisPrompt builds the analysis instruction. Every statistic is
// embedded verbatim so the model comments on numbers instead of inventing
// them.
func BuildAnalysisPrompt(period Period, now time.Time, stats *PeriodStats, prevRate float64, todos []*todo.Todo) string {
	scope := "today"
	prevScope := "yesterday"
	if period == PeriodWeek {
		scope = "this week"
		prevScope = "last week"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "You are a productivity coach. Analyze the user's todos for %s (reference date %s).\n\n", scope, now.Format(dateLayout))

	b.WriteString("Statistics (already computed, use these numbers as-is):\n")
	fmt.Fprintf(&b, "- Total: %d, completed: %d, completion rate: %.1f%%\n", stats.Total, stats.Completed, stats.CompletionRate)
	fmt.Fprintf(&b, "- Completion rate %s: %.1f%% (change: %+.1f points)\n", prevScope, prevRate, stats.CompletionRate-prevRate)
	for _, bucket := range priorityBuckets {
		pc := stats.PerPriority[bucket]
		fmt.Fprintf(&b, "- Priority %s: %d total, %d completed\n", bucket, pc.Total, pc.Completed)
	}
	fmt.Fprintf(&b, "- On-time completion rate among %d dated todos: %.1f%%\n", stats.DatedTotal, stats.OnTimeRate)
	fmt.Fprintf(&b, "- Overdue: %d\n", stats.OverdueCount)
	fmt.Fprintf(&b, "- Urgent (high priority or due within a day): %s\n", joinOrNone(stats.UrgentTitles))
	for _, bucket := range timeOfDayBuckets {
		fmt.Fprintf(&b, "- Due times in %s: %d\n", bucket, stats.TimeOfDay[bucket])
	}
	if stats.Weekly {
		weekdays := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
		for i, name := range weekdays {
			wc := stats.Weekdays[i]
			fmt.Fprintf(&b, "- %s: %d total, %d completed\n", name, wc.Total, wc.Completed)
		}
	}
	fmt.Fprintf(&b, "- Categories: %s\n", formatCounts(stats.CategoryCounts))
	fmt.Fprintf(&b, "- Among completed: %.1f%% high priority, %.1f categories on average, %.1f%% with a description\n",
		stats.CompletedHighPriorityRate, stats.CompletedAvgCategories, stats.CompletedWithDescription)
	fmt.Fprintf(&b, "- Postponed by priority: %s\n", formatCounts(stats.PostponedByPriority))
	fmt.Fprintf(&b, "- Postponed by category: %s\n\n", formatCounts(stats.PostponedByCategory))

	b.WriteString("Todos:\n")
	for _, t := range todos {
		status := t.StatusAt(now)
		due := "no due date"
		if t.DueAt() != nil {
			due = t.DueAt().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(&b, "- %q [%s, priority %s, due %s, categories: %s]\n",
			t.Title(), status, t.Priority(), due, joinOrNone(t.Categories()))
	}
	b.WriteString("\n")

	b.WriteString("Respond with JSON only:\n")
	fmt.Fprintf(&b, "- summary: one natural paragraph that mentions the completion rate and the change versus %s.\n", prevScope)
	b.WriteString("- urgentTasks: array of todo titles needing attention first; you may add beyond the urgent list above if justified.\n")
	b.WriteString("- insights: 3 to 5 observations covering completion rate, time management, productivity patterns and one piece of positive reinforcement.\n")
	b.WriteString("- recommendations: 3 to 4 actionable suggestions covering time management, priority adjustment, workload distribution and planning the next period.\n")

	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// formatCounts renders a count map in stable key order.
func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}
