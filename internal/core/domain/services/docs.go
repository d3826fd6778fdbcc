// Package services provides domain services that work across multiple
// aggregates of the delivery core.
//
// The package includes:
//   - RouteProgress: recomputes a route's derived stop counters from the
//     statuses of its orders
//
// Domain services hold logic that does not naturally belong to a single
// aggregate root.
package services
