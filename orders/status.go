package orders

import (
	"errors"
	"strings"
)

// Status is the closed set of order lifecycle states. The stored field is a
// plain string; every write goes through ParseStatus/CanTransition so free
// text from callers or the gateway cannot invent states.
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusSubmitted Status = "SUBMITTED"
	StatusPaid      Status = "PAID"
	StatusFailed    Status = "FAILED"
	StatusCompleted Status = "COMPLETED"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// ParseStatus maps arbitrary caller input onto the closed set. Unknown
// values fall back to CREATED rather than being stored verbatim.
func ParseStatus(raw string) Status {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusSubmitted:
		return StatusSubmitted
	case StatusPaid:
		return StatusPaid
	case StatusFailed:
		return StatusFailed
	case StatusCompleted:
		return StatusCompleted
	default:
		return StatusCreated
	}
}

var transitions = map[Status][]Status{
	StatusCreated:   {StatusSubmitted, StatusPaid, StatusFailed},
	StatusSubmitted: {StatusPaid, StatusFailed},
	StatusPaid:      {StatusCompleted},
	StatusFailed:    {},
	StatusCompleted: {},
}

// CanTransition reports whether from → to is allowed. Webhooks may settle an
// order that never saw a SUBMITTED transition, so CREATED can jump straight
// to PAID or FAILED.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
