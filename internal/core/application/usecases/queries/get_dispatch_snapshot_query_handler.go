package queries

import (
	"context"
	"database/sql"
	"log/slog"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDispatchSnapshotQueryHandler assembles the dispatch snapshot with four
// reads: working routes, their orders, PODs for the delivered orders and
// driver positions.
//
// The routes read is load-bearing and its failure fails the query. The
// downstream reads degrade: on failure their collection is empty and the
// snapshot is still served, so a broken secondary table cannot take the
// dispatch view down.
type GetDispatchSnapshotQueryHandler struct {
	db                *gorm.DB
	enableDispatchMap bool
	logger            *slog.Logger
}

// NewGetDispatchSnapshotQueryHandler creates a handler for snapshot queries.
// enableDispatchMap gates the driver positions read; when false the
// positions collection is always empty.
func NewGetDispatchSnapshotQueryHandler(
	db *gorm.DB, enableDispatchMap bool, logger *slog.Logger,
) GetDispatchSnapshotQueryHandler {
	return GetDispatchSnapshotQueryHandler{
		db:                db,
		enableDispatchMap: enableDispatchMap,
		logger:            logger.With("component", "dispatch_snapshot"),
	}
}

// Handle executes the snapshot query.
func (h GetDispatchSnapshotQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchSnapshotQuery,
) (GetDispatchSnapshotQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDispatchSnapshotQueryResponse{}, err
	}

	resp := GetDispatchSnapshotQueryResponse{
		Routes:    make([]RouteView, 0),
		Orders:    make([]OrderView, 0),
		PODs:      make([]PODView, 0),
		Positions: make([]DriverPositionView, 0),
	}

	routes, err := h.readRoutes(ctx)
	if err != nil {
		return GetDispatchSnapshotQueryResponse{}, err
	}
	resp.Routes = routes

	routeIDs := make([]uuid.UUID, 0, len(routes))
	driverIDs := make([]uuid.UUID, 0, len(routes))
	for _, r := range routes {
		routeIDs = append(routeIDs, r.ID.Bytes())
		if r.DriverID != nil {
			driverIDs = append(driverIDs, r.DriverID.Bytes())
		}
	}

	if len(routeIDs) > 0 {
		orders, ordersErr := h.readOrders(ctx, routeIDs)
		if ordersErr != nil {
			h.logger.ErrorContext(ctx, "Snapshot orders read failed", "error", ordersErr)
		} else {
			resp.Orders = orders
		}
	}

	deliveredIDs := make([]uuid.UUID, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		if o.Status == "delivered" {
			deliveredIDs = append(deliveredIDs, o.ID.Bytes())
		}
	}

	if len(deliveredIDs) > 0 {
		pods, podsErr := h.readPODs(ctx, deliveredIDs)
		if podsErr != nil {
			h.logger.ErrorContext(ctx, "Snapshot PODs read failed", "error", podsErr)
		} else {
			resp.PODs = pods
		}
	}

	if h.enableDispatchMap && len(driverIDs) > 0 {
		positions, posErr := h.readPositions(ctx, driverIDs)
		if posErr != nil {
			h.logger.ErrorContext(ctx, "Snapshot positions read failed", "error", posErr)
		} else {
			resp.Positions = positions
		}
	}

	return resp, nil
}

// readRoutes returns routes in the dispatch working set, newest first. The
// status filter is a literal list: it intentionally includes 'pending'
// even though route statuses elsewhere are draft/active/completed, so
// legacy rows keep showing up.
func (h GetDispatchSnapshotQueryHandler) readRoutes(ctx context.Context) ([]RouteView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			driver_id,
			status,
			total_stops,
			completed_stops,
			created_at
		FROM routes
		WHERE status IN ('active', 'pending')
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]RouteView, 0)
	for rows.Next() {
		var (
			view      RouteView
			id        uuid.UUID
			driverID  uuid.NullUUID
			createdAt sql.NullTime
		)

		if err = rows.Scan(
			&id, &view.Name, &driverID, &view.Status,
			&view.TotalStops, &view.CompletedStops, &createdAt,
		); err != nil {
			return nil, err
		}

		view.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if driverID.Valid {
			restored, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			view.DriverID = &restored
		}
		if createdAt.Valid {
			view.CreatedAt = createdAt.Time
		}

		routes = append(routes, view)
	}

	return routes, rows.Err()
}

func (h GetDispatchSnapshotQueryHandler) readOrders(
	ctx context.Context, routeIDs []uuid.UUID,
) ([]OrderView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			route_id,
			stop_sequence,
			customer_name,
			address,
			city,
			state,
			zip,
			status,
			latitude,
			longitude
		FROM orders
		WHERE route_id IN ?
		ORDER BY stop_sequence ASC NULLS LAST
	`, routeIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	for rows.Next() {
		var (
			view     OrderView
			id       uuid.UUID
			routeID  uuid.UUID
			stopSeq  sql.NullInt64
			lat, lng sql.NullFloat64
		)

		if err = rows.Scan(
			&id, &routeID, &stopSeq, &view.CustomerName, &view.Address,
			&view.City, &view.State, &view.Zip, &view.Status, &lat, &lng,
		); err != nil {
			return nil, err
		}

		view.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		view.RouteID, err = kernel.UUIDFromBytes(routeID[:])
		if err != nil {
			return nil, err
		}
		if stopSeq.Valid {
			seq := int(stopSeq.Int64)
			view.StopSequence = &seq
		}
		if lat.Valid {
			view.Latitude = &lat.Float64
		}
		if lng.Valid {
			view.Longitude = &lng.Float64
		}

		orders = append(orders, view)
	}

	return orders, rows.Err()
}

func (h GetDispatchSnapshotQueryHandler) readPODs(
	ctx context.Context, orderIDs []uuid.UUID,
) ([]PODView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			driver_id,
			photo_url,
			signature_url,
			notes,
			delivered_at
		FROM pods
		WHERE order_id IN ?
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pods := make([]PODView, 0)
	for rows.Next() {
		var (
			podView             PODView
			id                  uuid.UUID
			orderID, driverID   uuid.UUID
			photoURL, signature sql.NullString
			notes               sql.NullString
		)

		if err = rows.Scan(
			&id, &orderID, &driverID, &photoURL, &signature, &notes, &podView.DeliveredAt,
		); err != nil {
			return nil, err
		}

		podView.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		podView.OrderID, err = kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return nil, err
		}
		podView.DriverID, err = kernel.UUIDFromBytes(driverID[:])
		if err != nil {
			return nil, err
		}
		podView.PhotoURL = photoURL.String
		podView.SignatureURL = signature.String
		podView.Notes = notes.String

		pods = append(pods, podView)
	}

	return pods, rows.Err()
}

func (h GetDispatchSnapshotQueryHandler) readPositions(
	ctx context.Context, driverIDs []uuid.UUID,
) ([]DriverPositionView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			driver_id,
			latitude,
			longitude,
			accuracy,
			updated_at
		FROM driver_positions
		WHERE driver_id IN ?
	`, driverIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := make([]DriverPositionView, 0)
	for rows.Next() {
		var (
			view     DriverPositionView
			driverID uuid.UUID
			accuracy sql.NullFloat64
		)

		if err = rows.Scan(&driverID, &view.Latitude, &view.Longitude, &accuracy, &view.UpdatedAt); err != nil {
			return nil, err
		}

		view.DriverID, err = kernel.UUIDFromBytes(driverID[:])
		if err != nil {
			return nil, err
		}
		if accuracy.Valid {
			view.Accuracy = &accuracy.Float64
		}

		positions = append(positions, view)
	}

	return positions, rows.Err()
}
