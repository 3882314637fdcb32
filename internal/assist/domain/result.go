package domain

// ExtractionResult is the structured draft produced by the task extractor.
// The raw model output is decoded into this shape and must pass the full
// normalization pass before any field is trusted.
type ExtractionResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     string   `json:"due_date"` // calendar date, YYYY-MM-DD
	DueTime     string   `json:"due_time"` // 24-hour HH:MM
	Priority    string   `json:"priority"` // high, medium or low
	Category    []string `json:"category"`
}

// AnalysisResult is the ephemeral outcome of one period analysis. It is
// produced fresh on every request and never cached or merged.
type AnalysisResult struct {
	Summary         string   `json:"summary"`
	UrgentTasks     []string `json:"urgentTasks"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}
