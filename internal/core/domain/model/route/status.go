package route

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Status represents the lifecycle state of a route, persisted as text.
//
// draft ──> active ──> completed
//
// Note: the dispatch snapshot additionally filters routes by the literal
// status "pending", which is not part of this declared set. That filter is
// preserved verbatim in the query layer as an upstream convention.
type Status string

const (
	// Draft is a route still being planned.
	Draft Status = "draft"

	// Active is a route currently being worked by its driver.
	Active Status = "active"

	// Completed is a route with all stops resolved.
	Completed Status = "completed"
)

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
	switch s {
	case Draft, Active, Completed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid route status", string(s)))
	}
}

// String returns the text form stored in the database.
func (s Status) String() string {
	return string(s)
}
