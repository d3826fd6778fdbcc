// Package pod provides the proof-of-delivery aggregate: the durable record
// evidencing how a stop was completed. A POD is created exactly once per
// submission and never mutated afterwards; there is deliberately no update
// path. At-most-one POD per order is a caller convention, not a storage
// constraint, so a duplicate submission yields a second row.
package pod

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
)

var (
	// ErrPODIsNotConstructed is returned when a POD instance was not created
	// through NewPOD or RestorePOD.
	ErrPODIsNotConstructed = errors.New("POD must be created via NewPOD or RestorePOD constructor")
)

// POD is the proof-of-delivery record for one order: the artifact URLs,
// the free-text notes and the submitting driver.
type POD struct {
	id           kernel.UUID
	orderID      kernel.UUID
	driverID     kernel.UUID
	photoURL     string
	signatureURL string
	notes        string
	deliveredAt  time.Time

	isConstructed bool
}

// NewPOD creates a POD for a delivery submission. Photo and signature URLs
// are optional (empty when the driver captured no artifact). When a
// recipient name is supplied the stored notes are synthesized as
// "Recipient: {name}\n{notes}"; otherwise notes are stored verbatim.
func NewPOD(
	id, orderID, driverID kernel.UUID,
	photoURL, signatureURL, notes, recipientName string,
	deliveredAt time.Time,
) (*POD, error) {
	p := &POD{
		photoURL:      photoURL,
		signatureURL:  signatureURL,
		notes:         ComposeNotes(notes, recipientName),
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setDriverID(driverID),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePOD reconstructs a POD from persistence. Stored notes are taken
// verbatim; the recipient prefix, if any, is already baked in.
func RestorePOD(
	id, orderID, driverID kernel.UUID,
	photoURL, signatureURL, notes string,
	deliveredAt time.Time,
) (*POD, error) {
	p := &POD{
		photoURL:      photoURL,
		signatureURL:  signatureURL,
		notes:         notes,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setDriverID(driverID),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// ComposeNotes applies the recipient-name prefix rule used for stored POD
// notes: "Recipient: {name}\n{notes}" when a name is present, the notes
// verbatim otherwise.
func ComposeNotes(notes, recipientName string) string {
	if recipientName == "" {
		return notes
	}
	return "Recipient: " + recipientName + "\n" + notes
}

// Validate ensures the POD was built through a constructor.
func (p *POD) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPODIsNotConstructed
	}
	return nil
}

// ID returns the POD's unique identifier.
func (p *POD) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identifier of the order this POD evidences.
func (p *POD) OrderID() kernel.UUID {
	return p.orderID
}

// DriverID returns the submitting driver's identifier.
func (p *POD) DriverID() kernel.UUID {
	return p.driverID
}

// PhotoURL returns the durable photo URL, empty when no photo was captured.
func (p *POD) PhotoURL() string {
	return p.photoURL
}

// SignatureURL returns the durable signature URL, empty when none captured.
func (p *POD) SignatureURL() string {
	return p.signatureURL
}

// Notes returns the stored notes, including any recipient-name prefix.
func (p *POD) Notes() string {
	return p.notes
}

// DeliveredAt returns the submission timestamp.
func (p *POD) DeliveredAt() time.Time {
	return p.deliveredAt
}

func (p *POD) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *POD) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *POD) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	p.driverID = driverID
	return nil
}
