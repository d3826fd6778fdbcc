// Package stopeventrepo provides data transfer objects and mapping
// functions for the append-only stop audit trail.
package stopeventrepo

import (
	"time"

	"lastmile/internal/core/domain/model/stopevent"

	"github.com/google/uuid"
)

// StopEventDTO represents the database structure for persisting stop audit
// records.
type StopEventDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	DriverID  uuid.UUID `gorm:"type:uuid"`
	EventType string
	Notes     string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides GORM's default naming convention to use "stop_events".
func (StopEventDTO) TableName() string {
	return "stop_events"
}

func fromDomain(aggregate *stopevent.StopEvent) StopEventDTO {
	return StopEventDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		DriverID:  aggregate.DriverID().Bytes(),
		EventType: aggregate.Type().String(),
		Notes:     aggregate.Notes(),
	}
}
