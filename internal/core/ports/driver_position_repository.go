package ports

import (
	"context"

	"lastmile/internal/core/domain/model/driver"
)

// DriverPositionRepository defines the persistence contract for driver
// position reports: one row per driver, overwritten on every report.
type DriverPositionRepository interface {
	// Upsert inserts or replaces the driver's latest position.
	Upsert(ctx context.Context, aggregate *driver.Position) error
}
