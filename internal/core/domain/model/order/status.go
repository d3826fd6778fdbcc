package order

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Status represents the lifecycle state of an order, persisted as text.
//
// State transitions:
//
//	pending ──> assigned ──> in_transit ──┬──> delivered
//	                                      └──> failed
//
// delivered and failed are terminal absorbing states: once reached, no
// further transition is modeled (an administrative override lives outside
// this core).
type Status string

const (
	// Pending is the initial status of an order before route assignment.
	Pending Status = "pending"

	// Assigned indicates the order has been placed on a route.
	Assigned Status = "assigned"

	// InTransit indicates the assigned driver has started the route.
	InTransit Status = "in_transit"

	// Delivered is the terminal status of a successfully completed stop.
	Delivered Status = "delivered"

	// Failed is the terminal status of an unsuccessful stop.
	Failed Status = "failed"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Pending:   {},
		Assigned:  {},
		InTransit: {},
		Delivered: {},
		Failed:    {},
	}
}

// StatusFromString converts a persisted text status into a Status,
// rejecting unknown values.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the status is one of the declared lifecycle states.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

// String returns the text form stored in the database.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status is delivered or failed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// CanTransitionTo reports whether the declared lifecycle permits moving
// from s to target. Used by the strict status-guard variant; the default
// completion path performs the literal unconditional write instead.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}

	switch s {
	case Pending:
		return target == Assigned
	case Assigned:
		return target == InTransit || target == Delivered || target == Failed
	case InTransit:
		return target == Delivered || target == Failed
	default:
		// delivered / failed are absorbing
		return false
	}
}
