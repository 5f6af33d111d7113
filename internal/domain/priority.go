package domain

import "strconv"

// Priority orders tasks; lower values are more urgent.
type Priority int

const (
	PriorityTop    Priority = 0
	PriorityHigh   Priority = 1
	PriorityNormal Priority = 2
	PriorityLow    Priority = 3
	PriorityLast   Priority = 4

	PriorityDefault = PriorityNormal
)

// ClampPriority limits p to [PriorityTop, PriorityLast]. Out-of-range values are not an error.
func ClampPriority(p Priority) Priority {
	return max(PriorityTop, min(p, PriorityLast))
}

// String returns the numeric form used on the command line and in listings.
func (p Priority) String() string {
	return strconv.Itoa(int(p))
}
