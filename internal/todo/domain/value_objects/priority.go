package value_objects

import (
	"errors"
	"strings"
)

// Priority represents todo urgency level.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

var (
	ErrInvalidPriority = errors.New("invalid priority value")
)

var priorityNames = map[Priority]string{
	PriorityNone:   "none",
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

var priorityValues = map[string]Priority{
	"none":   PriorityNone,
	"low":    PriorityLow,
	"medium": PriorityMedium,
	"high":   PriorityHigh,
}

// ParsePriority creates a Priority from a string.
func ParsePriority(s string) (Priority, error) {
	p, ok := priorityValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return PriorityNone, ErrInvalidPriority
	}
	return p, nil
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the priority is a valid value.
func (p Priority) IsValid() bool {
	_, ok := priorityNames[p]
	return ok
}

// IsSet returns true if the priority was explicitly assigned.
func (p Priority) IsSet() bool {
	return p != PriorityNone
}

// Weight returns a numeric weight for sorting (higher = more important).
// An unset priority ranks the same as low.
func (p Priority) Weight() int {
	if p == PriorityNone {
		return int(PriorityLow)
	}
	return int(p)
}
