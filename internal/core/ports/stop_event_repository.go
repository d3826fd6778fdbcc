package ports

import (
	"context"

	"lastmile/internal/core/domain/model/stopevent"
)

// StopEventRepository defines the persistence contract for the append-only
// stop audit trail.
type StopEventRepository interface {
	// Add appends one audit record. Multiple records per order are legal.
	Add(ctx context.Context, aggregate *stopevent.StopEvent) error
}
