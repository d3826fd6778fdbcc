// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Indexed by route for the snapshot and recount reads.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RouteID       *uuid.UUID `gorm:"type:uuid;index"`
	StopSequence  *int
	CustomerName  string
	CustomerEmail string
	Address       string
	City          string
	State         string
	Zip           string
	Phone         string
	Notes         string
	Latitude      *float64
	Longitude     *float64
	Status        string    `gorm:"index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var routeID *uuid.UUID
	if id := aggregate.RouteID(); id != nil {
		raw := id.Bytes()
		routeID = &raw
	}

	var lat, lng *float64
	if target := aggregate.Target(); target != nil {
		latValue, lngValue := target.Lat(), target.Lng()
		lat, lng = &latValue, &lngValue
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		RouteID:       routeID,
		StopSequence:  aggregate.StopSequence(),
		CustomerName:  aggregate.CustomerName(),
		CustomerEmail: aggregate.CustomerEmail(),
		Address:       aggregate.Address(),
		City:          aggregate.City(),
		State:         aggregate.State(),
		Zip:           aggregate.Zip(),
		Phone:         aggregate.Phone(),
		Notes:         aggregate.Notes(),
		Latitude:      lat,
		Longitude:     lng,
		Status:        aggregate.Status().String(),
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var routeID *kernel.UUID
	if dto.RouteID != nil {
		rID, routeErr := kernel.UUIDFromBytes((*dto.RouteID)[:])
		if routeErr != nil {
			return nil, routeErr
		}
		routeID = &rID
	}

	var target *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		target = &point
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.CustomerName, dto.CustomerEmail, dto.Address, dto.City, dto.State, dto.Zip,
		dto.Phone, dto.Notes,
		target,
		status,
		routeID,
		dto.StopSequence,
	)
}
