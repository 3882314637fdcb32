package queries

import (
	"sort"
	"strings"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys accepted by Derive.
const (
	SortByPriority    = "priority"
	SortByDueDate     = "due-date"
	SortByCreatedDate = "created-date"
	SortByTitle       = "title"
)

// Criteria describes the filter and sort parameters applied to a list of
// todos. Empty or "all" values disable the corresponding filter.
type Criteria struct {
	Search   string
	Status   string // "all", "in-progress", "done", "overdue"
	Priority string // "all", "high", "medium", "low"
	SortBy   string // "priority", "due-date", "created-date", "title"
}

// Derive applies search, status filter, priority filter and sort, in that
// order, to the given todos. The input slice is never mutated and the result
// is always a subset of the input. The reference instant drives status
// classification; the collator drives locale-aware title ordering.
func Derive(todos []*todo.Todo, c Criteria, now time.Time, col *collate.Collator) []*todo.Todo {
	if col == nil {
		col = collate.New(language.English)
	}

	result := make([]*todo.Todo, 0, len(todos))
	result = append(result, todos...)

	if q := strings.ToLower(strings.TrimSpace(c.Search)); q != "" {
		result = filterSearch(result, q)
	}
	if c.Status != "" && c.Status != "all" {
		result = filterStatus(result, c.Status, now)
	}
	if c.Priority != "" && c.Priority != "all" {
		result = filterPriority(result, c.Priority)
	}

	sortTodos(result, c.SortBy, col)

	return result
}

// filterSearch keeps todos whose title or description contains the query,
// case-insensitively. An absent description never matches.
func filterSearch(todos []*todo.Todo, query string) []*todo.Todo {
	filtered := todos[:0]
	for _, t := range todos {
		if strings.Contains(strings.ToLower(t.Title()), query) {
			filtered = append(filtered, t)
			continue
		}
		if d := t.Description(); d != "" && strings.Contains(strings.ToLower(d), query) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func filterStatus(todos []*todo.Todo, status string, now time.Time) []*todo.Todo {
	want, ok := todo.ParseStatus(status)
	if !ok {
		return todos
	}
	filtered := todos[:0]
	for _, t := range todos {
		if t.StatusAt(now) == want {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// filterPriority keeps todos whose priority matches exactly. Todos with an
// unset priority are excluded from every specific-priority filter.
func filterPriority(todos []*todo.Todo, priority string) []*todo.Todo {
	filtered := todos[:0]
	for _, t := range todos {
		if t.Priority().IsSet() && t.Priority().String() == priority {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func sortTodos(todos []*todo.Todo, sortBy string, col *collate.Collator) {
	switch sortBy {
	case SortByDueDate:
		// Ascending; undated todos sort after every dated one.
		sort.SliceStable(todos, func(i, j int) bool {
			di, dj := todos[i].DueAt(), todos[j].DueAt()
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return di.Before(*dj)
		})
	case SortByCreatedDate:
		// Most recent first.
		sort.SliceStable(todos, func(i, j int) bool {
			return todos[i].CreatedAt().After(todos[j].CreatedAt())
		})
	case SortByTitle:
		sort.SliceStable(todos, func(i, j int) bool {
			return col.CompareString(todos[i].Title(), todos[j].Title()) < 0
		})
	case SortByPriority, "":
		// Descending weight; unset priority ranks the same as low.
		sort.SliceStable(todos, func(i, j int) bool {
			return todos[i].Priority().Weight() > todos[j].Priority().Weight()
		})
	}
}
