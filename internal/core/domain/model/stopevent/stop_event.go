// Package stopevent provides the append-only audit record written for every
// delivery-outcome transition. Multiple events per order are legal, unlike
// the at-most-one convention on PODs; the trail records what happened, in
// order, regardless of which status write "won".
package stopevent

import (
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

var (
	// ErrStopEventIsNotConstructed is returned when a StopEvent was not
	// created through NewStopEvent.
	ErrStopEventIsNotConstructed = errors.New("StopEvent must be created via NewStopEvent constructor")
)

// EventType classifies a stop event, persisted as text.
type EventType string

const (
	// Arrived records the driver reaching the stop.
	Arrived EventType = "arrived"

	// Delivered records a successful delivery outcome.
	Delivered EventType = "delivered"

	// Failed records an unsuccessful delivery outcome.
	Failed EventType = "failed"
)

// Validate checks that the event type is one of the declared values.
func (t EventType) Validate() error {
	switch t {
	case Arrived, Delivered, Failed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("eventType",
			fmt.Errorf("%q is not a valid stop event type", string(t)))
	}
}

// String returns the text form stored in the database.
func (t EventType) String() string {
	return string(t)
}

// StopEvent is one immutable audit record: which driver did what to which
// order, with optional free-text notes.
type StopEvent struct {
	id        kernel.UUID
	orderID   kernel.UUID
	driverID  kernel.UUID
	eventType EventType
	notes     string

	isConstructed bool
}

// NewStopEvent creates an audit record ready for appending. Notes may be
// empty; the mandatory-reason rule for failed deliveries is enforced by the
// submission pipeline before the event is built.
func NewStopEvent(id, orderID, driverID kernel.UUID, eventType EventType, notes string) (*StopEvent, error) {
	e := &StopEvent{
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setDriverID(driverID),
		e.setEventType(eventType),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate ensures the event was built through the constructor.
func (e *StopEvent) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrStopEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *StopEvent) ID() kernel.UUID {
	return e.id
}

// OrderID returns the identifier of the affected order.
func (e *StopEvent) OrderID() kernel.UUID {
	return e.orderID
}

// DriverID returns the acting driver's identifier.
func (e *StopEvent) DriverID() kernel.UUID {
	return e.driverID
}

// Type returns the event classification.
func (e *StopEvent) Type() EventType {
	return e.eventType
}

// Notes returns the free-text notes attached to the event.
func (e *StopEvent) Notes() string {
	return e.notes
}

func (e *StopEvent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *StopEvent) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *StopEvent) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	e.driverID = driverID
	return nil
}

func (e *StopEvent) setEventType(eventType EventType) error {
	if err := eventType.Validate(); err != nil {
		return err
	}
	e.eventType = eventType
	return nil
}
