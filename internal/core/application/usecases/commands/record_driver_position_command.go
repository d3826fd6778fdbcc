package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrRecordDriverPositionCommandIsNotConstructed = errors.New(
		"RecordDriverPositionCommand must be created via NewRecordDriverPositionCommand constructor",
	)
)

// RecordDriverPositionCommand represents a driver's location report. Each
// report replaces the driver's previous one; no movement history is kept.
type RecordDriverPositionCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	point    kernel.GeoPoint
	accuracy *float64

	guard guard.ConstructorGuard
}

// NewRecordDriverPositionCommand creates a location report. accuracy is the
// device-reported horizontal accuracy in meters, nil when not provided.
func NewRecordDriverPositionCommand(
	driverID kernel.UUID, point kernel.GeoPoint, accuracy *float64,
) (RecordDriverPositionCommand, error) {
	cmd := RecordDriverPositionCommand{
		accuracy: accuracy,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setPoint(point),
	); err != nil {
		return RecordDriverPositionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDriverPositionCommand) Validate() error {
	return c.guard.Validate(ErrRecordDriverPositionCommandIsNotConstructed)
}

// DriverID returns the reporting driver.
func (c RecordDriverPositionCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Point returns the reported location.
func (c RecordDriverPositionCommand) Point() kernel.GeoPoint {
	return c.point
}

// Accuracy returns the reported accuracy in meters, nil when absent.
func (c RecordDriverPositionCommand) Accuracy() *float64 {
	return c.accuracy
}

func (c *RecordDriverPositionCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *RecordDriverPositionCommand) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	c.point = point
	return nil
}
