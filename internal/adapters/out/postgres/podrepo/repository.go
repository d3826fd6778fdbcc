package podrepo

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/pod"

	"gorm.io/gorm"
)

// GormPodRepository implements PodRepository using GORM.
type GormPodRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPodRepository creates a new GORM POD repository.
func NewGormPodRepository(db *gorm.DB, tracker aggregateTracker) *GormPodRepository {
	return &GormPodRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new POD record to the database.
func (r *GormPodRepository) Add(ctx context.Context, aggregate *pod.POD) error {
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
