// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"lastmile/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler names only the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RouteRepoFactory provides access to the route repository within a transaction.
	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	// PodRepoFactory provides access to the POD repository within a transaction.
	PodRepoFactory interface {
		PodRepository() ports.PodRepository
	}

	// StopEventRepoFactory provides access to the stop event repository within a transaction.
	StopEventRepoFactory interface {
		StopEventRepository() ports.StopEventRepository
	}

	// PositionRepoFactory provides access to the driver position repository within a transaction.
	PositionRepoFactory interface {
		DriverPositionRepository() ports.DriverPositionRepository
	}

	// DeliveryUoW manages transactions for the stop completion pipeline.
	// The completion handlers create several of these per submission: the
	// POD insert, the status update and the audit append are independent
	// atomic operations by default, not one transaction.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		PodRepoFactory
		StopEventRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// StopEventUoW manages transactions for audit-only operations.
	StopEventUoW interface {
		TxManager
		StopEventRepoFactory
	}

	// StopEventUoWFactory creates new audit unit of work instances.
	StopEventUoWFactory interface {
		Create() StopEventUoW
	}

	// PositionUoW manages transactions for driver position reports.
	PositionUoW interface {
		TxManager
		PositionRepoFactory
	}

	// PositionUoWFactory creates new position unit of work instances.
	PositionUoWFactory interface {
		Create() PositionUoW
	}

	// RouteProgressUoW manages transactions for the route progress recount,
	// which reads orders and writes route counters together.
	RouteProgressUoW interface {
		TxManager
		RouteRepoFactory
		OrderRepoFactory
	}

	// RouteProgressUoWFactory creates new recount unit of work instances.
	RouteProgressUoWFactory interface {
		Create() RouteProgressUoW
	}
)
