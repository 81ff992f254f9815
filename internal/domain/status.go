package domain

import "fmt"

// Status is the lifecycle state of an application
type Status string

const (
	StatusPending    Status = "pending"    // Received, not yet reviewed
	StatusProcessing Status = "processing" // Picked up by a reviewer
	StatusApproved   Status = "approved"   // Terminal: credit line granted
	StatusRejected   Status = "rejected"   // Terminal: credit line declined
)

// transitions lists the legal next states for every non-terminal state
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusApproved, StatusRejected},
	StatusProcessing: {StatusApproved, StatusRejected},
}

// AllStatuses returns the status vocabulary in lifecycle order
func AllStatuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusApproved, StatusRejected}
}

// ParseStatus converts a raw string into a known Status
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", NewValidationError(fmt.Sprintf("unknown status %q", raw))
	}
	return s, nil
}

// Valid reports whether s belongs to the status vocabulary
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s accepts no further transitions
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether moving from s to next is a legal edge
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StatusMessage returns the applicant-facing text for a status
func StatusMessage(s Status) string {
	switch s {
	case StatusPending:
		return "Your application has been received and is waiting for processing."
	case StatusProcessing:
		return "Your application is currently being processed."
	case StatusApproved:
		return "Congratulations! Your credit application has been approved."
	case StatusRejected:
		return "We regret to inform you that your application has been declined."
	default:
		return "Application status unknown."
	}
}
