package application

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// BuildExtractionPrompt builds the natural-language instruction for turning
// free text into a structured todo draft. The temporal context and every
// resolution rule are spelled out so the model never has to guess the
// current date.
func BuildExtractionPrompt(text string, now time.Time) string {
	tomorrow := now.AddDate(0, 0, 1)
	dayAfter := now.AddDate(0, 0, 2)

	var b strings.Builder

	b.WriteString("You are a task extraction assistant. Convert the user's instruction into a single structured todo.\n\n")

	b.WriteString("Temporal context:\n")
	fmt.Fprintf(&b, "- Current date: %s (%s)\n", now.Format(dateLayout), now.Weekday())
	fmt.Fprintf(&b, "- Current time: %s\n", now.Format("15:04"))
	fmt.Fprintf(&b, "- Tomorrow: %s\n", tomorrow.Format(dateLayout))
	fmt.Fprintf(&b, "- Day after tomorrow: %s\n\n", dayAfter.Format(dateLayout))

	b.WriteString("Date resolution rules:\n")
	b.WriteString("- \"today\" means the current date above.\n")
	b.WriteString("- \"tomorrow\" means the tomorrow date above.\n")
	b.WriteString("- \"day after tomorrow\" means the date above.\n")
	b.WriteString("- \"this <weekday>\" means the next occurrence of that weekday in the current week; \"next <weekday>\" means the occurrence in the following week.\n")
	b.WriteString("- If no date is mentioned, use the current date.\n\n")

	b.WriteString("Time keyword mappings:\n")
	b.WriteString("- morning -> 09:00\n")
	b.WriteString("- noon -> 12:00\n")
	b.WriteString("- afternoon -> 14:00\n")
	b.WriteString("- evening -> 18:00\n")
	b.WriteString("- night -> 21:00\n")
	b.WriteString("- If no time is mentioned, use 09:00.\n\n")

	b.WriteString("Priority rules:\n")
	b.WriteString("- Words like \"urgent\", \"important\", \"asap\", \"critical\" mean high.\n")
	b.WriteString("- Words like \"whenever\", \"sometime\", \"low priority\", \"no rush\" mean low.\n")
	b.WriteString("- Otherwise use medium.\n\n")

	b.WriteString("Category rules (pick every bucket that applies):\n")
	b.WriteString("- work: meetings, clients, projects, reports, colleagues\n")
	b.WriteString("- personal: errands, shopping, family, friends, home\n")
	b.WriteString("- health: exercise, doctor, medication, sleep, diet\n")
	b.WriteString("- study: courses, reading, exams, homework, practice\n")
	b.WriteString("- If no bucket matches, make your best guess at a short lowercase label.\n\n")

	b.WriteString("Respond with JSON only: title (required, concise), description (optional), due_date (YYYY-MM-DD), due_time (24-hour HH:MM), priority (high, medium or low), category (array of labels).\n\n")

	fmt.Fprintf(&b, "User instruction: %s\n", text)

	return b.String()
}
