package queries

import (
	"testing"
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/todo"
	"github.com/Swacker3927/ai-todo-manager/internal/todo/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var ref = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

type todoSpec struct {
	title       string
	description string
	dueAt       *time.Time
	priority    value_objects.Priority
	completed   bool
	createdAt   time.Time
}

func makeTodo(t *testing.T, spec todoSpec) *todo.Todo {
	t.Helper()
	created := spec.createdAt
	if created.IsZero() {
		created = ref.Add(-24 * time.Hour)
	}
	return todo.Rehydrate(uuid.New(), uuid.New(), spec.title, spec.description,
		spec.dueAt, spec.priority, nil, spec.completed, created, created)
}

func titles(todos []*todo.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Title()
	}
	return out
}

func englishCollator() *collate.Collator {
	return collate.New(language.English)
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	input := []*todo.Todo{
		makeTodo(t, todoSpec{title: "b"}),
		makeTodo(t, todoSpec{title: "a"}),
		makeTodo(t, todoSpec{title: "c"}),
	}

	_ = Derive(input, Criteria{Search: "a", SortBy: SortByTitle}, ref, englishCollator())

	assert.Equal(t, []string{"b", "a", "c"}, titles(input))
}

func TestDerive_ResultIsSubset(t *testing.T) {
	input := []*todo.Todo{
		makeTodo(t, todoSpec{title: "write report", priority: value_objects.PriorityHigh}),
		makeTodo(t, todoSpec{title: "buy milk", completed: true}),
		makeTodo(t, todoSpec{title: "report bug"}),
	}

	result := Derive(input, Criteria{Search: "report"}, ref, englishCollator())

	require.Len(t, result, 2)
	for _, r := range result {
		assert.Contains(t, input, r)
	}
}

func TestDerive_Idempotent(t *testing.T) {
	input := []*todo.Todo{
		makeTodo(t, todoSpec{title: "c", priority: value_objects.PriorityLow}),
		makeTodo(t, todoSpec{title: "a", priority: value_objects.PriorityHigh}),
		makeTodo(t, todoSpec{title: "b", priority: value_objects.PriorityMedium}),
	}
	criteria := Criteria{SortBy: SortByPriority}

	once := Derive(input, criteria, ref, englishCollator())
	twice := Derive(once, criteria, ref, englishCollator())

	assert.Equal(t, titles(once), titles(twice))
}

func TestDerive_Search(t *testing.T) {
	input := []*todo.Todo{
		makeTodo(t, todoSpec{title: "Write REPORT"}),
		makeTodo(t, todoSpec{title: "buy milk", description: "for the report meeting"}),
		makeTodo(t, todoSpec{title: "walk dog"}),
	}

	t.Run("matches title and description case-insensitively", func(t *testing.T) {
		result := Derive(input, Criteria{Search: "report"}, ref, englishCollator())
		assert.ElementsMatch(t, []string{"Write REPORT", "buy milk"}, titles(result))
	})

	t.Run("blank query matches everything", func(t *testing.T) {
		result := Derive(input, Criteria{Search: "   "}, ref, englishCollator())
		assert.Len(t, result, 3)
	})
}

func TestDerive_StatusFilter(t *testing.T) {
	past := ref.Add(-time.Hour)
	future := ref.Add(time.Hour)
	input := []*todo.Todo{
		makeTodo(t, todoSpec{title: "done past due", dueAt: &past, completed: true}),
		makeTodo(t, todoSpec{title: "overdue", dueAt: &past}),
		makeTodo(t, todoSpec{title: "upcoming", dueAt: &future}),
	}

	tests := []struct {
		status string
		want   []string
	}{
		{"done", []string{"done past due"}},
		{"overdue", []string{"overdue"}},
		{"in-progress", []string{"upcoming"}},
		{"all", []string{"done past due", "overdue", "upcoming"}},
		{"", []string{"done past due", "overdue", "upcoming"}},
	}
	for _, tt := range tests {
		t.Run("status "+tt.status, func(t *testing.T) {
			result := Derive(input, Criteria{Status: tt.status}, ref, englishCollator())
			assert.ElementsMatch(t, tt.want, titles(result))
		})
	}
}

func TestDerive_PriorityFilter(t *testing.T) {
	input := []*todo.Todo{
		makeTodo(t, todoSpec{title: "high", priority: value_objects.PriorityHigh}),
		makeTodo(t, todoSpec{title: "low", priority: value_objects.PriorityLow}),
		makeTodo(t, todoSpec{title: "unset"}),
	}

	t.Run("exact match only", func(t *testing.T) {
		result := Derive(input, Criteria{Priority: "high"}, ref, englishCollator())
		assert.Equal(t, []string{"high"}, titles(result))
	})

	t.Run("unset priority never matches a specific filter", func(t *testing.T) {
		result := Derive(input, Criteria{Priority: "low"}, ref, englishCollator())
		assert.Equal(t, []string{"low"}, titles(result))
	})

	t.Run("all disables the filter", func(t *testing.T) {
		result := Derive(input, Criteria{Priority: "all"}, ref, englishCollator())
		assert.Len(t, result, 3)
	})
}

func TestDerive_SortByPriority(t *testing.T) {
	input := []*todo.Todo{
		makeTodo(t, todoSpec{title: "low", priority: value_objects.PriorityLow}),
		makeTodo(t, todoSpec{title: "high", priority: value_objects.PriorityHigh}),
		makeTodo(t, todoSpec{title: "unset"}),
		makeTodo(t, todoSpec{title: "medium", priority: value_objects.PriorityMedium}),
	}

	result := Derive(input, Criteria{SortBy: SortByPriority}, ref, englishCollator())

	// Unset ranks with low; within equal weight the original order holds.
	assert.Equal(t, []string{"high", "medium", "low", "unset"}, titles(result))
}

func TestDerive_SortByDueDate(t *testing.T) {
	early := ref.Add(time.Hour)
	late := ref.Add(48 * time.Hour)
	input := []*todo.Todo{
		makeTodo(t, todoSpec{title: "undated"}),
		makeTodo(t, todoSpec{title: "late", dueAt: &late}),
		makeTodo(t, todoSpec{title: "early", dueAt: &early}),
	}

	result := Derive(input, Criteria{SortBy: SortByDueDate}, ref, englishCollator())

	assert.Equal(t, []string{"early", "late", "undated"}, titles(result))
}

func TestDerive_SortByCreatedDate(t *testing.T) {
	input := []*todo.Todo{
		makeTodo(t, todoSpec{title: "oldest", createdAt: ref.Add(-72 * time.Hour)}),
		makeTodo(t, todoSpec{title: "newest", createdAt: ref.Add(-time.Hour)}),
		makeTodo(t, todoSpec{title: "middle", createdAt: ref.Add(-24 * time.Hour)}),
	}

	result := Derive(input, Criteria{SortBy: SortByCreatedDate}, ref, englishCollator())

	assert.Equal(t, []string{"newest", "middle", "oldest"}, titles(result))
}

func TestDerive_SortByTitle(t *testing.T) {
	input := []*todo.Todo{
		makeTodo(t, todoSpec{title: "banana"}),
		makeTodo(t, todoSpec{title: "Apple"}),
		makeTodo(t, todoSpec{title: "cherry"}),
	}

	result := Derive(input, Criteria{SortBy: SortByTitle}, ref, englishCollator())

	assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles(result))
}

func TestDerive_FiltersCompose(t *testing.T) {
	past := ref.Add(-time.Hour)
	input := []*todo.Todo{
		makeTodo(t, todoSpec{title: "report draft", dueAt: &past, priority: value_objects.PriorityHigh}),
		makeTodo(t, todoSpec{title: "report review", dueAt: &past, priority: value_objects.PriorityLow}),
		makeTodo(t, todoSpec{title: "report done", dueAt: &past, priority: value_objects.PriorityHigh, completed: true}),
		makeTodo(t, todoSpec{title: "groceries", dueAt: &past, priority: value_objects.PriorityHigh}),
	}

	result := Derive(input, Criteria{
		Search:   "report",
		Status:   "overdue",
		Priority: "high",
	}, ref, englishCollator())

	assert.Equal(t, []string{"report draft"}, titles(result))
}
