// Package podrepo provides data transfer objects and mapping functions for
// proof-of-delivery persistence. The table is insert-only.
package podrepo

import (
	"time"

	"lastmile/internal/core/domain/model/pod"

	"github.com/google/uuid"
)

// PodDTO represents the database structure for persisting POD records.
// order_id is indexed but deliberately not unique: a repeated submission
// produces a second row.
type PodDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	DriverID     uuid.UUID `gorm:"type:uuid"`
	PhotoURL     string
	SignatureURL string
	Notes        string
	DeliveredAt  time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName overrides GORM's default naming convention to use "pods".
func (PodDTO) TableName() string {
	return "pods"
}

func fromDomain(aggregate *pod.POD) PodDTO {
	return PodDTO{
		ID:           aggregate.ID().Bytes(),
		OrderID:      aggregate.OrderID().Bytes(),
		DriverID:     aggregate.DriverID().Bytes(),
		PhotoURL:     aggregate.PhotoURL(),
		SignatureURL: aggregate.SignatureURL(),
		Notes:        aggregate.Notes(),
		DeliveredAt:  aggregate.DeliveredAt(),
	}
}
