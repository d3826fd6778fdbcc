// Package route provides the Route aggregate: a named set of stops worked
// by a single driver. Routes own orders through the orders' route_id
// back-reference and carry derived progress counters used by monitoring.
package route

import (
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

var (
	// ErrRouteIsNotConstructed is returned when a Route instance was not
	// created through NewRoute or RestoreRoute.
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute or RestoreRoute constructor")
)

// Route is the aggregate root for a driver's working set of stops.
//
// Route invariants:
//   - valid unique identifier and non-empty name
//   - status is one of draft, active, completed
//   - 0 <= completedStops <= totalStops
type Route struct {
	id       kernel.UUID
	name     string
	driverID *kernel.UUID
	status   Status

	// Derived counters, recomputed from order statuses by the progress
	// recount; never authoritative on their own.
	totalStops     int
	completedStops int

	isConstructed bool
}

// NewRoute creates a draft route with no driver and zero progress.
func NewRoute(id kernel.UUID, name string) (*Route, error) {
	r := &Route{
		status:        Draft,
		isConstructed: true,
	}

	if err := errors.Join(r.setID(id), r.setName(name)); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRoute reconstructs a Route from persistence.
func RestoreRoute(
	id kernel.UUID,
	name string,
	driverID *kernel.UUID,
	status Status,
	totalStops, completedStops int,
) (*Route, error) {
	r := &Route{
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setDriverID(driverID),
		r.setStatus(status),
		r.setProgress(totalStops, completedStops),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Route was built through a constructor.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

// IsEqual compares two routes by identifier.
func (r *Route) IsEqual(other *Route) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the route's unique identifier.
func (r *Route) ID() kernel.UUID {
	return r.id
}

// Name returns the route's display name.
func (r *Route) Name() string {
	return r.name
}

// DriverID returns the assigned driver's identifier, nil when unassigned.
func (r *Route) DriverID() *kernel.UUID {
	return r.driverID
}

// Status returns the route lifecycle status.
func (r *Route) Status() Status {
	return r.status
}

// TotalStops returns the derived count of stops on the route.
func (r *Route) TotalStops() int {
	return r.totalStops
}

// CompletedStops returns the derived count of terminally resolved stops.
func (r *Route) CompletedStops() int {
	return r.completedStops
}

// UpdateProgress replaces the derived counters, enforcing
// 0 <= completed <= total. Used by the periodic progress recount.
func (r *Route) UpdateProgress(totalStops, completedStops int) error {
	return r.setProgress(totalStops, completedStops)
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Route) setDriverID(driverID *kernel.UUID) error {
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
	}
	r.driverID = driverID
	return nil
}

func (r *Route) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Route) setProgress(totalStops, completedStops int) error {
	if totalStops < 0 {
		return errs.NewValueIsInvalidError("totalStops")
	}
	if completedStops < 0 || completedStops > totalStops {
		return errs.NewValueIsInvalidErrorWithCause("completedStops",
			fmt.Errorf("%d is not within [0, %d]", completedStops, totalStops))
	}

	r.totalStops = totalStops
	r.completedStops = completedStops
	return nil
}
