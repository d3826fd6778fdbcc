package order

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderIsTerminal is returned by the guarded transition methods when
	// the order already carries a terminal status.
	ErrOrderIsTerminal = errors.New("order is already in a terminal status")
)

// Order is the aggregate root for a delivery stop. It carries the customer
// delivery target and the lifecycle status. From this core's point of view
// the target fields are immutable; only the status moves, and only towards
// the terminal states delivered and failed.
//
// Order invariants:
//   - valid unique identifier
//   - non-empty customer name and street address
//   - status is always one of the declared lifecycle states
//   - stop sequence, when present, is non-negative
type Order struct {
	id            kernel.UUID
	customerName  string
	customerEmail string
	address       string
	city          string
	state         string
	zip           string
	phone         string
	notes         string

	// target is the geocoded delivery location, nil when not geocoded
	target *kernel.GeoPoint

	// routeID is a weak back-reference to the owning route, nil when unassigned
	routeID *kernel.UUID

	// stopSequence is the position within the route, nil until assigned
	stopSequence *int

	status Status

	isConstructed bool
}

// NewOrder creates a pending Order with the required delivery target fields.
// Orders are created by the out-of-scope dispatch flow; this constructor
// exists for that flow's adapters and for tests.
func NewOrder(id kernel.UUID, customerName, customerEmail, address string) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	o.customerEmail = customerEmail
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. All fields are taken
// as stored; the status and identifiers are still validated so corrupt rows
// surface as errors instead of invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	customerName, customerEmail, address, city, state, zip, phone, notes string,
	target *kernel.GeoPoint,
	status Status,
	routeID *kernel.UUID,
	stopSequence *int,
) (*Order, error) {
	o := &Order{
		customerEmail: customerEmail,
		city:          city,
		state:         state,
		zip:           zip,
		phone:         phone,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setAddress(address),
		o.setStatus(status),
		o.setTarget(target),
		o.setRouteID(routeID),
		o.setStopSequence(stopSequence),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerName returns the recipient's name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerEmail returns the recipient's email address.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// Address returns the street address of the stop.
func (o *Order) Address() string {
	return o.address
}

// City returns the city, empty when unknown.
func (o *Order) City() string {
	return o.city
}

// State returns the state or region, empty when unknown.
func (o *Order) State() string {
	return o.state
}

// Zip returns the postal code, empty when unknown.
func (o *Order) Zip() string {
	return o.zip
}

// Phone returns the contact phone, empty when unknown.
func (o *Order) Phone() string {
	return o.phone
}

// Notes returns the dispatcher-entered delivery notes.
func (o *Order) Notes() string {
	return o.notes
}

// Target returns the geocoded delivery location, nil when not geocoded.
func (o *Order) Target() *kernel.GeoPoint {
	return o.target
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// RouteID returns the owning route's identifier, nil when unassigned.
func (o *Order) RouteID() *kernel.UUID {
	return o.routeID
}

// StopSequence returns the position within the route, nil until assigned.
func (o *Order) StopSequence() *int {
	return o.stopSequence
}

// Deliver moves the order to the delivered terminal status, refusing the
// transition when the order is already terminal. This is the guarded form
// of the lifecycle; the default completion pipeline performs the literal
// unconditional status write at the repository instead.
func (o *Order) Deliver() error {
	return o.transitionTo(Delivered)
}

// Fail moves the order to the failed terminal status under the same rules
// as Deliver.
func (o *Order) Fail() error {
	return o.transitionTo(Failed)
}

func (o *Order) transitionTo(target Status) error {
	if o.status.IsTerminal() {
		return ErrOrderIsTerminal
	}
	if !o.status.CanTransitionTo(target) {
		return errs.NewValueIsInvalidError("status transition " + o.status.String() + " -> " + target.String())
	}

	o.status = target
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = name
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTarget(target *kernel.GeoPoint) error {
	if target != nil {
		if err := target.Validate(); err != nil {
			return err
		}
	}
	o.target = target
	return nil
}

func (o *Order) setRouteID(routeID *kernel.UUID) error {
	if routeID != nil {
		if err := routeID.Validate(); err != nil {
			return err
		}
	}
	o.routeID = routeID
	return nil
}

func (o *Order) setStopSequence(seq *int) error {
	if seq != nil && *seq < 0 {
		return errs.NewValueIsInvalidError("stopSequence")
	}
	o.stopSequence = seq
	return nil
}
