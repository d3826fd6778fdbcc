// Package driver provides the driver-facing state this core owns. Driver
// identity itself (Profile) belongs to the identity provider; the only
// driver state written here is the latest reported position, one row per
// driver with last-write-wins semantics and no history.
package driver

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

var (
	// ErrPositionIsNotConstructed is returned when a Position was not
	// created through NewPosition.
	ErrPositionIsNotConstructed = errors.New("Position must be created via NewPosition constructor")
)

// Position is a driver's latest coordinate report, keyed by driver. A new
// report overwrites the previous one entirely.
type Position struct {
	driverID kernel.UUID
	point    kernel.GeoPoint

	// accuracy is the reported GPS accuracy in meters, nil when the device
	// did not supply one
	accuracy *float64

	isConstructed bool
}

// NewPosition creates a validated position report. Accuracy, when present,
// must be non-negative.
func NewPosition(driverID kernel.UUID, point kernel.GeoPoint, accuracy *float64) (*Position, error) {
	p := &Position{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setDriverID(driverID),
		p.setPoint(point),
		p.setAccuracy(accuracy),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the position was built through the constructor.
func (p *Position) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPositionIsNotConstructed
	}
	return nil
}

// DriverID returns the reporting driver's identifier (the upsert key).
func (p *Position) DriverID() kernel.UUID {
	return p.driverID
}

// Point returns the reported coordinate.
func (p *Position) Point() kernel.GeoPoint {
	return p.point
}

// Accuracy returns the reported GPS accuracy in meters, nil when absent.
func (p *Position) Accuracy() *float64 {
	return p.accuracy
}

func (p *Position) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	p.driverID = driverID
	return nil
}

func (p *Position) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	p.point = point
	return nil
}

func (p *Position) setAccuracy(accuracy *float64) error {
	if accuracy != nil && *accuracy < 0 {
		return errs.NewValueIsInvalidError("accuracy")
	}
	p.accuracy = accuracy
	return nil
}
