package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route aggregates.
type RouteRepository interface {
	// Add persists a new route aggregate. Used by dispatch tooling and tests.
	Add(ctx context.Context, aggregate *route.Route) error

	// Update persists changes to an existing route, including the derived
	// progress counters.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get retrieves a route by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// GetAllActive retrieves every route in active status, the working set
	// for the progress recount.
	GetAllActive(ctx context.Context) ([]*route.Route, error)
}
