package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrGetDispatchSnapshotQueryIsNotConstructed = errors.New(
		"GetDispatchSnapshotQuery must be created via NewGetDispatchSnapshotQuery constructor",
	)
)

// GetDispatchSnapshotQuery retrieves the dispatch monitoring snapshot: the
// working routes with their orders, proof-of-delivery records for the
// delivered ones and, when the live map is enabled, the latest known driver
// positions.
type GetDispatchSnapshotQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDispatchSnapshotQuery creates a query for the dispatch snapshot.
// This is a parameterless query; scoping to working routes is fixed.
func NewGetDispatchSnapshotQuery() GetDispatchSnapshotQuery {
	return GetDispatchSnapshotQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDispatchSnapshotQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchSnapshotQueryIsNotConstructed)
}

// RouteView is one route in the snapshot.
type RouteView struct {
	ID             kernel.UUID
	Name           string
	DriverID       *kernel.UUID
	Status         string
	TotalStops     int
	CompletedStops int
	CreatedAt      time.Time
}

// OrderView is one stop in the snapshot.
type OrderView struct {
	ID           kernel.UUID
	RouteID      kernel.UUID
	StopSequence *int
	CustomerName string
	Address      string
	City         string
	State        string
	Zip          string
	Status       string
	Latitude     *float64
	Longitude    *float64
}

// PODView is one proof-of-delivery record in the snapshot.
type PODView struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	DriverID     kernel.UUID
	PhotoURL     string
	SignatureURL string
	Notes        string
	DeliveredAt  time.Time
}

// DriverPositionView is one driver's latest known position.
type DriverPositionView struct {
	DriverID  kernel.UUID
	Latitude  float64
	Longitude float64
	Accuracy  *float64
	UpdatedAt time.Time
}

// GetDispatchSnapshotQueryResponse is the snapshot: four flat collections
// the dispatch view correlates client-side. The collections are read
// independently and are not a consistent point-in-time view of the
// database.
type GetDispatchSnapshotQueryResponse struct {
	Routes    []RouteView
	Orders    []OrderView
	PODs      []PODView
	Positions []DriverPositionView
}
