package services

import (
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/route"
)

// RouteProgress is a domain service that derives a route's progress
// counters from its orders. total_stops and completed_stops on a route are
// denormalized for monitoring; this service is the single place that
// defines how they are computed.
//
// A stop counts as completed when its order reached a terminal status
// (delivered or failed); a failed stop is resolved, not outstanding.
type RouteProgress struct{}

// NewRouteProgress creates a RouteProgress service.
func NewRouteProgress() RouteProgress {
	return RouteProgress{}
}

// Recount recomputes and applies the progress counters on r from the given
// orders. Orders not belonging to r are ignored, so callers may pass a
// broader working set.
func (RouteProgress) Recount(r *route.Route, orders []*order.Order) error {
	if err := r.Validate(); err != nil {
		return err
	}

	total, completed := 0, 0
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		if o.RouteID() == nil || !o.RouteID().IsEqual(r.ID()) {
			continue
		}

		total++
		if o.Status().IsTerminal() {
			completed++
		}
	}

	return r.UpdateProgress(total, completed)
}
