package commands

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	ErrFailDeliveryCommandIsNotConstructed = errors.New(
		"FailDeliveryCommand must be created via NewFailDeliveryCommand constructor",
	)
)

// FailDeliveryCommand represents a driver's report that a delivery attempt
// did not succeed. Unlike completion, a failure reason is mandatory: an
// unexplained failed stop is useless to dispatch.
type FailDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID
	notes    string

	guard guard.ConstructorGuard
}

// NewFailDeliveryCommand creates a failed-attempt report. notes must be
// non-blank.
func NewFailDeliveryCommand(orderID, driverID kernel.UUID, notes string) (FailDeliveryCommand, error) {
	cmd := FailDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverID(driverID),
		cmd.setNotes(notes),
	); err != nil {
		return FailDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FailDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFailDeliveryCommandIsNotConstructed)
}

// OrderID returns the order whose attempt failed.
func (c FailDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the reporting driver (the authenticated principal).
func (c FailDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Notes returns the failure reason.
func (c FailDeliveryCommand) Notes() string {
	return c.notes
}

func (c *FailDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *FailDeliveryCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *FailDeliveryCommand) setNotes(notes string) error {
	if strings.TrimSpace(notes) == "" {
		return errs.NewValueIsRequiredError("notes")
	}
	c.notes = notes
	return nil
}
