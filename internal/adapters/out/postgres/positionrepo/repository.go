package positionrepo

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDriverPositionRepository implements DriverPositionRepository using
// GORM.
type GormDriverPositionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDriverPositionRepository creates a new GORM driver position repository.
func NewGormDriverPositionRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverPositionRepository {
	return &GormDriverPositionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Upsert inserts or replaces the driver's latest position. Last write wins.
func (r *GormDriverPositionRepository) Upsert(ctx context.Context, aggregate *driver.Position) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "driver_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"latitude":   dto.Latitude,
			"longitude":  dto.Longitude,
			"accuracy":   dto.Accuracy,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.DriverID(), aggregate)
	return nil
}
