package ports

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are created by the out-of-scope dispatch flow; within this core the
// only mutation is the status write, offered in two variants.
type OrderRepository interface {
	// Add persists a new order aggregate. Used by dispatch tooling and tests.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByRouteID retrieves every order assigned to the given route,
	// ordered by stop sequence.
	GetAllByRouteID(ctx context.Context, routeID kernel.UUID) ([]*order.Order, error)

	// UpdateStatus writes status and updated_at unconditionally, without
	// reading the current status first. Concurrent terminal transitions for
	// the same order therefore race and the last write wins. This is the
	// default completion behavior.
	UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status, updatedAt time.Time) error

	// UpdateStatusIfNotTerminal is the guarded variant: it writes only when
	// the current status is not delivered or failed, and returns
	// order.ErrOrderIsTerminal otherwise. Selecting this variant changes
	// observable behavior and is opt-in via configuration.
	UpdateStatusIfNotTerminal(ctx context.Context, id kernel.UUID, status order.Status, updatedAt time.Time) error
}
