// Package moderation defines the job posting lifecycle state machine.
//
// Valid status graph:
//
//	pending ──► active ◄──► inactive
//	    │
//	    └─────► rejected
//
// Every state can be reset to pending by explicit administrative action;
// there are no automatic transitions out of rejected or inactive.
// "approved" is accepted as an input alias and normalized to active
// before anything is persisted.
package moderation

import "fmt"

// Status values mirror the job posting status column in PostgreSQL.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusRejected Status = "rejected"

	// aliasApproved is a transient input value, never stored.
	aliasApproved = "approved"
)

// validTransitions lists every allowed (from → to) pair. Resetting to
// pending is handled separately in IsTransitionAllowed.
var validTransitions = map[Status][]Status{
	StatusPending:  {StatusActive, StatusRejected},
	StatusActive:   {StatusInactive},
	StatusInactive: {StatusActive},
	// rejected has no outgoing transitions except the pending reset
}

// ParseTarget converts a raw request value to a stored Status, mapping the
// approved alias to active. Unknown values return an error and must cause
// the request to fail without a write.
func ParseTarget(s string) (Status, error) {
	if s == aliasApproved {
		return StatusActive, nil
	}
	st := Status(s)
	switch st {
	case StatusPending, StatusActive, StatusInactive, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by
// the state machine. Same-state writes are allowed as no-ops.
func IsTransitionAllowed(from, to Status) bool {
	if from == to {
		return true
	}
	if to == StatusPending {
		// Admin reset back into the moderation queue.
		return true
	}
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// VisibleFor returns the visibility a posting must have in the given
// status. The coupling is absolute: a posting can never be active and
// invisible, or inactive and visible, through a status transition.
func VisibleFor(s Status) bool {
	return s == StatusActive
}
