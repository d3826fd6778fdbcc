package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
)

// CompleteDeliveryCommand represents a driver's submission of a successful
// delivery outcome: the optional captured artifacts (photo and signature as
// data URIs), free-text notes and the recipient's name.
//
// No idempotency key is carried: submitting the same outcome twice is two
// submissions and produces two POD rows.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	driverID      kernel.UUID
	photoData     string
	signatureData string
	notes         string
	recipientName string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a delivery completion submission.
// orderID and driverID must be valid; artifacts, notes and recipient name
// are optional. Payload shape is validated later by the upload adapter,
// before any network call.
func NewCompleteDeliveryCommand(
	orderID, driverID kernel.UUID,
	photoData, signatureData, notes, recipientName string,
) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		photoData:     photoData,
		signatureData: signatureData,
		notes:         notes,
		recipientName: recipientName,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverID(driverID),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being completed.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the submitting driver (the authenticated principal).
func (c CompleteDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

// PhotoData returns the photo payload as a data URI, empty when no photo
// was captured.
func (c CompleteDeliveryCommand) PhotoData() string {
	return c.photoData
}

// SignatureData returns the signature payload. It is either a data URI for
// a freshly captured signature or an already-durable https URL when the
// client echoed back a previously stored signature unchanged.
func (c CompleteDeliveryCommand) SignatureData() string {
	return c.signatureData
}

// Notes returns the driver's free-text notes.
func (c CompleteDeliveryCommand) Notes() string {
	return c.notes
}

// RecipientName returns who received the package, empty when not recorded.
func (c CompleteDeliveryCommand) RecipientName() string {
	return c.recipientName
}

func (c *CompleteDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CompleteDeliveryCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}
