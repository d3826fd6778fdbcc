package orderrepo

import (
	"context"
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByRouteID retrieves all orders assigned to the route, ordered by
// stop sequence with unsequenced stops last.
func (r *GormOrderRepository) GetAllByRouteID(ctx context.Context, routeID kernel.UUID) ([]*order.Order, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("route_id = ?", routeID.Bytes()).
		Order("stop_sequence ASC NULLS LAST").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// UpdateStatus writes status and updated_at without reading the current
// row first. Zero affected rows means the order does not exist.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context, id kernel.UUID, status order.Status, updatedAt time.Time,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{"status": status.String(), "updated_at": updatedAt})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

// UpdateStatusIfNotTerminal is the guarded variant: the write carries a
// status predicate so a terminal row is never overwritten. Zero affected
// rows is disambiguated with a follow-up read: a missing order is NotFound,
// an existing one must have been terminal.
func (r *GormOrderRepository) UpdateStatusIfNotTerminal(
	ctx context.Context, id kernel.UUID, status order.Status, updatedAt time.Time,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status NOT IN ?", id.Bytes(), []string{
			order.Delivered.String(), order.Failed.String(),
		}).
		Updates(map[string]any{"status": status.String(), "updated_at": updatedAt})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", id.Bytes()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		return order.ErrOrderIsTerminal
	}

	return nil
}
