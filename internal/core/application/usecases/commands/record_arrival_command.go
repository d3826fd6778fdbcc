package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrRecordArrivalCommandIsNotConstructed = errors.New(
		"RecordArrivalCommand must be created via NewRecordArrivalCommand constructor",
	)
)

// RecordArrivalCommand represents a driver's arrival at a stop. Arrival is
// audit-only: it appends a stop event and changes no order state.
type RecordArrivalCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID
	notes    string

	guard guard.ConstructorGuard
}

// NewRecordArrivalCommand creates an arrival report. notes are optional.
func NewRecordArrivalCommand(orderID, driverID kernel.UUID, notes string) (RecordArrivalCommand, error) {
	cmd := RecordArrivalCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverID(driverID),
	); err != nil {
		return RecordArrivalCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordArrivalCommand) Validate() error {
	return c.guard.Validate(ErrRecordArrivalCommandIsNotConstructed)
}

// OrderID returns the stop the driver arrived at.
func (c RecordArrivalCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the arriving driver.
func (c RecordArrivalCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Notes returns optional context for the arrival.
func (c RecordArrivalCommand) Notes() string {
	return c.notes
}

func (c *RecordArrivalCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RecordArrivalCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}
