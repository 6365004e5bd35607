package enums

import "fmt"

// VisitStatus tracks the lifecycle of a property visit.
type VisitStatus string

const (
	VisitStatusScheduled  VisitStatus = "scheduled"
	VisitStatusConfirmed  VisitStatus = "confirmed"
	VisitStatusInProgress VisitStatus = "in_progress"
	VisitStatusCompleted  VisitStatus = "completed"
	VisitStatusCancelled  VisitStatus = "cancelled"
	VisitStatusNoShow     VisitStatus = "no_show"
)

var validVisitStatuses = []VisitStatus{
	VisitStatusScheduled,
	VisitStatusConfirmed,
	VisitStatusInProgress,
	VisitStatusCompleted,
	VisitStatusCancelled,
	VisitStatusNoShow,
}

// String implements fmt.Stringer.
func (s VisitStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known VisitStatus.
func (s VisitStatus) IsValid() bool {
	for _, candidate := range validVisitStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsActive reports whether the visit still occupies the agent's calendar.
func (s VisitStatus) IsActive() bool {
	switch s {
	case VisitStatusScheduled, VisitStatusConfirmed, VisitStatusInProgress:
		return true
	default:
		return false
	}
}

// ParseVisitStatus converts raw input into a VisitStatus.
func ParseVisitStatus(value string) (VisitStatus, error) {
	for _, candidate := range validVisitStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid visit status %q", value)
}
