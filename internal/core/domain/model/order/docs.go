// Package order provides the Order aggregate of the delivery core: the
// customer-facing delivery target and the status lifecycle a stop moves
// through while a driver works a route.
//
// The package includes:
//   - Order: the aggregate root holding the delivery target and lifecycle state
//   - Status: the order lifecycle with its legal transitions
//
// Key business rules:
//   - Status follows pending -> assigned -> in_transit -> {delivered | failed}
//   - delivered and failed are terminal; no further transition is modeled
//   - The delivery target is immutable once the order exists; only status
//     (and updated_at) change through this core
package order
