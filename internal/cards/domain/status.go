package domain

import (
	"strings"
	"time"
)

// ResolveStatus derives the lifecycle status of an event from its title
// markers and, failing those, its date relative to now. Explicit textual
// markers always win over the date heuristic, so a cancelled future event
// stays cancelled rather than reverting to planned.
func ResolveStatus(title, description string, eventDate, now time.Time) Status {
	switch {
	case strings.Contains(title, "✅") || strings.Contains(title, "UDFØRT"):
		return StatusCompleted
	case strings.Contains(title, "❌") || strings.Contains(title, "AFLYST"):
		return StatusCancelled
	case strings.Contains(title, "OMBOOKET") || containsFold(description, "rebook"):
		return StatusRebooked
	case eventDate.Before(now):
		// Past events without an explicit marker are assumed done.
		return StatusCompleted
	default:
		return StatusPlanned
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
