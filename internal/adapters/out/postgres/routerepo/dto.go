// Package routerepo provides data transfer objects and mapping functions for
// route persistence.
package routerepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO represents the database structure for persisting route
// aggregates. Progress counters are derived data rebuilt by the recount.
type RouteDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name           string
	DriverID       *uuid.UUID `gorm:"type:uuid;index"`
	Status         string     `gorm:"index"`
	TotalStops     int
	CompletedStops int
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides GORM's default naming convention to use "routes".
func (RouteDTO) TableName() string {
	return "routes"
}

func fromDomain(aggregate *route.Route) RouteDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return RouteDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		DriverID:       driverID,
		Status:         aggregate.Status().String(),
		TotalStops:     aggregate.TotalStops(),
		CompletedStops: aggregate.CompletedStops(),
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	status, err := route.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return route.RestoreRoute(id, dto.Name, driverID, status, dto.TotalStops, dto.CompletedStops)
}
