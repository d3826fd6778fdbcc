package stopeventrepo

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/stopevent"

	"gorm.io/gorm"
)

// GormStopEventRepository implements StopEventRepository using GORM.
type GormStopEventRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStopEventRepository creates a new GORM stop event repository.
func NewGormStopEventRepository(db *gorm.DB, tracker aggregateTracker) *GormStopEventRepository {
	return &GormStopEventRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends one audit record.
func (r *GormStopEventRepository) Add(ctx context.Context, aggregate *stopevent.StopEvent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
