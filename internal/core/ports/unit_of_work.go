package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per business operation,
// keeping concurrent operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Client code
// manages the transaction lifecycle explicitly; repositories obtained from
// the unit of work are bound to its transaction once Begin has been called.
//
// The completion pipeline deliberately uses one unit of work per write by
// default: the POD insert and the status update are two independent atomic
// operations, not one transaction.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// RouteRepository returns a RouteRepository bound to the current transaction.
	RouteRepository() RouteRepository

	// PodRepository returns a PodRepository bound to the current transaction.
	PodRepository() PodRepository

	// StopEventRepository returns a StopEventRepository bound to the current transaction.
	StopEventRepository() StopEventRepository

	// DriverPositionRepository returns a DriverPositionRepository bound to the current transaction.
	DriverPositionRepository() DriverPositionRepository
}
