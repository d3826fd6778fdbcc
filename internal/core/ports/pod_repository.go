package ports

import (
	"context"

	"lastmile/internal/core/domain/model/pod"
)

// PodRepository defines the persistence contract for proof-of-delivery
// records. PODs are insert-only: there is no update or delete path, and
// uniqueness per order is a caller convention rather than a constraint, so
// Add never rejects a second POD for the same order.
type PodRepository interface {
	// Add persists a new POD record.
	Add(ctx context.Context, aggregate *pod.POD) error
}
