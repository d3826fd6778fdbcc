// Package positionrepo provides data transfer objects and mapping functions
// for driver position persistence. One row per driver, replaced on every
// report.
package positionrepo

import (
	"time"

	"lastmile/internal/core/domain/model/driver"

	"github.com/google/uuid"
)

// DriverPositionDTO represents the database structure for the latest known
// driver positions.
type DriverPositionDTO struct {
	DriverID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Latitude  float64
	Longitude float64
	Accuracy  *float64
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides GORM's default naming convention to use "driver_positions".
func (DriverPositionDTO) TableName() string {
	return "driver_positions"
}

func fromDomain(aggregate *driver.Position) DriverPositionDTO {
	return DriverPositionDTO{
		DriverID:  aggregate.DriverID().Bytes(),
		Latitude:  aggregate.Point().Lat(),
		Longitude: aggregate.Point().Lng(),
		Accuracy:  aggregate.Accuracy(),
	}
}
