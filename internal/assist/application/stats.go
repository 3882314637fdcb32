package application

import (
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
)

// Priority buckets reported in statistics. "unset" covers todos without an
// explicit priority.
var priorityBuckets = []string{"high", "medium", "low", "unset"}

// Time-of-day buckets for due times. "none" covers undated todos.
var timeOfDayBuckets = []string{"morning", "afternoon", "evening", "night", "none"}

// PriorityCount holds total and completed counts for one bucket.
type PriorityCount struct {
	Total     int
	Completed int
}

// WeekdayCount holds total and completed counts for one weekday among dated
// todos (0 = Sunday .. 6 = Saturday).
type WeekdayCount struct {
	Total     int
	Completed int
}

// PeriodStats are the locally computed statistics fed verbatim into the
// analysis prompt. The model never recomputes these.
type PeriodStats struct {
	Total          int
	Completed      int
	CompletionRate float64 // percent

	PerPriority map[string]PriorityCount

	DatedTotal int
	OnTimeRate float64 // percent, among dated todos

	OverdueCount int
	UrgentTitles []string

	TimeOfDay map[string]int

	Weekly   bool
	Weekdays [7]WeekdayCount

	CategoryCounts map[string]int

	// Heuristics over completed todos.
	CompletedHighPriorityRate float64 // percent
	CompletedAvgCategories    float64
	CompletedWithDescription  float64 // percent

	// Patterns over overdue todos.
	PostponedByPriority map[string]int
	PostponedByCategory map[string]int
}

// CompletionRate computes a percentage, zero when the denominator is zero.
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// ComputeStats derives all analysis statistics over the todos of one period
// relative to an explicit reference instant. Weekday breakdowns are only
// populated for weekly periods.
func ComputeStats(todos []*todo.Todo, now time.Time, weekly bool) *PeriodStats {
	stats := &PeriodStats{
		Total:               len(todos),
		PerPriority:         make(map[string]PriorityCount, len(priorityBuckets)),
		TimeOfDay:           make(map[string]int, len(timeOfDayBuckets)),
		Weekly:              weekly,
		CategoryCounts:      make(map[string]int),
		PostponedByPriority: make(map[string]int),
		PostponedByCategory: make(map[string]int),
	}
	for _, b := range priorityBuckets {
		stats.PerPriority[b] = PriorityCount{}
	}
	for _, b := range timeOfDayBuckets {
		stats.TimeOfDay[b] = 0
	}

	today := startOfDay(now)

	var onTime int
	var completedHigh, completedCategories, completedWithDescription int

	for _, t := range todos {
		completed := t.IsCompleted()
		if completed {
			stats.Completed++
		}

		bucket := priorityBucket(t)
		pc := stats.PerPriority[bucket]
		pc.Total++
		if completed {
			pc.Completed++
		}
		stats.PerPriority[bucket] = pc

		if due := t.DueAt(); due != nil {
			stats.DatedTotal++
			if completed && !t.UpdatedAt().After(*due) {
				onTime++
			}

			if !completed && due.Before(today) {
				stats.OverdueCount++
				stats.PostponedByPriority[bucket]++
				for _, c := range t.Categories() {
					stats.PostponedByCategory[c]++
				}
			}

			stats.TimeOfDay[timeOfDayBucket(due.Hour())]++

			if weekly {
				wd := int(due.Weekday())
				stats.Weekdays[wd].Total++
				if completed {
					stats.Weekdays[wd].Completed++
				}
			}
		} else {
			stats.TimeOfDay["none"]++
		}

		if isUrgent(t, today) {
			stats.UrgentTitles = append(stats.UrgentTitles, t.Title())
		}

		for _, c := range t.Categories() {
			stats.CategoryCounts[c]++
		}

		if completed {
			if bucket == "high" {
				completedHigh++
			}
			completedCategories += len(t.Categories())
			if t.Description() != "" {
				completedWithDescription++
			}
		}
	}

	stats.CompletionRate = completionRate(stats.Completed, stats.Total)
	stats.OnTimeRate = completionRate(onTime, stats.DatedTotal)
	stats.CompletedHighPriorityRate = completionRate(completedHigh, stats.Completed)
	stats.CompletedWithDescription = completionRate(completedWithDescription, stats.Completed)
	if stats.Completed > 0 {
		stats.CompletedAvgCategories = float64(completedCategories) / float64(stats.Completed)
	}

	return stats
}

// isUrgent applies the local urgency heuristic: not completed, and either
// high priority or due within one day of today (inclusive).
func isUrgent(t *todo.Todo, today time.Time) bool {
	if t.IsCompleted() {
		return false
	}
	if t.Priority().String() == "high" {
		return true
	}
	due := t.DueAt()
	if due == nil {
		return false
	}
	dueDay := startOfDay(*due)
	days := int(dueDay.Sub(today).Hours() / 24)
	return days >= 0 && days <= 1
}

func priorityBucket(t *todo.Todo) string {
	if !t.Priority().IsSet() {
		return "unset"
	}
	return t.Priority().String()
}

// timeOfDayBucket maps an hour to its bucket: morning 09-12, afternoon
// 12-18, evening 18-21, night for everything else.
func timeOfDayBucket(hour int) string {
	switch {
	case hour >= 9 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 18:
		return "afternoon"
	case hour >= 18 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}
