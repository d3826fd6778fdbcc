// Package kernel provides the shared domain primitives of the delivery core.
//
// The package includes:
//   - UUID: a value object for entity identifiers with validation and comparison
//   - GeoPoint: a WGS84 coordinate pair with range validation
//
// These primitives enforce their invariants at construction time and are
// immutable afterwards, making them safe for concurrent use across the
// domain model.
package kernel
