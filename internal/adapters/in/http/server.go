// Package http is the inbound HTTP adapter: request decoding, the
// authentication boundary and the translation of use case errors into
// response codes. Handlers never contain pipeline logic.
package http

import (
	"errors"
	"net/http"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	completeDelivery commands.CompleteDeliveryCommandHandler
	failDelivery     commands.FailDeliveryCommandHandler
	recordArrival    commands.RecordArrivalCommandHandler
	recordPosition   commands.RecordDriverPositionCommandHandler
	dispatchSnapshot queries.GetDispatchSnapshotQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	completeDelivery commands.CompleteDeliveryCommandHandler,
	failDelivery commands.FailDeliveryCommandHandler,
	recordArrival commands.RecordArrivalCommandHandler,
	recordPosition commands.RecordDriverPositionCommandHandler,
	dispatchSnapshot queries.GetDispatchSnapshotQueryHandler,
) *Server {
	return &Server{
		completeDelivery: completeDelivery,
		failDelivery:     failDelivery,
		recordArrival:    recordArrival,
		recordPosition:   recordPosition,
		dispatchSnapshot: dispatchSnapshot,
	}
}

type successResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondOK(c echo.Context) error {
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Success: false, Error: message})
}

// statusFor maps use case errors onto response codes: invalid input is the
// caller's fault, a refused terminal overwrite is a conflict, everything
// else is a server-side failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrOrderIsTerminal):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) submit(c echo.Context, kind string, run func() error) error {
	if err := run(); err != nil {
		metrics.StopSubmissions.WithLabelValues(kind, "error").Inc()
		return respondError(c, statusFor(err), err.Error())
	}

	metrics.StopSubmissions.WithLabelValues(kind, "ok").Inc()
	return respondOK(c)
}

type deliverRequest struct {
	OrderID       string `json:"orderId"`
	PhotoData     string `json:"photoData"`
	SignatureData string `json:"signatureData"`
	Notes         string `json:"notes"`
	RecipientName string `json:"recipientName"`
}

// Deliver handles POST /api/v1/driver/deliver.
func (s *Server) Deliver(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "not authenticated")
	}

	var req deliverRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewCompleteDeliveryCommand(
		orderID, principal.ID, req.PhotoData, req.SignatureData, req.Notes, req.RecipientName,
	)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	return s.submit(c, "deliver", func() error {
		return s.completeDelivery.Handle(c.Request().Context(), cmd)
	})
}

type failRequest struct {
	OrderID string `json:"orderId"`
	Notes   string `json:"notes"`
}

// Fail handles POST /api/v1/driver/fail.
func (s *Server) Fail(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "not authenticated")
	}

	var req failRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewFailDeliveryCommand(orderID, principal.ID, req.Notes)
	if err != nil {
		return respondError(c, statusFor(err), err.Error())
	}

	return s.submit(c, "fail", func() error {
		return s.failDelivery.Handle(c.Request().Context(), cmd)
	})
}

type arriveRequest struct {
	OrderID string `json:"orderId"`
	Notes   string `json:"notes"`
}

// Arrive handles POST /api/v1/driver/arrive.
func (s *Server) Arrive(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "not authenticated")
	}

	var req arriveRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewRecordArrivalCommand(orderID, principal.ID, req.Notes)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	return s.submit(c, "arrive", func() error {
		return s.recordArrival.Handle(c.Request().Context(), cmd)
	})
}

type positionRequest struct {
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Accuracy *float64 `json:"accuracy"`
}

// Position handles POST /api/v1/driver/position.
func (s *Server) Position(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "not authenticated")
	}

	var req positionRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	point, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewRecordDriverPositionCommand(principal.ID, point, req.Accuracy)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	return s.submit(c, "position", func() error {
		return s.recordPosition.Handle(c.Request().Context(), cmd)
	})
}

type snapshotRouteJSON struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DriverID       *string `json:"driverId"`
	Status         string  `json:"status"`
	TotalStops     int     `json:"totalStops"`
	CompletedStops int     `json:"completedStops"`
	CreatedAt      string  `json:"createdAt"`
}

type snapshotOrderJSON struct {
	ID           string   `json:"id"`
	RouteID      string   `json:"routeId"`
	StopSequence *int     `json:"stopSequence"`
	CustomerName string   `json:"customerName"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Zip          string   `json:"zip"`
	Status       string   `json:"status"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
}

type snapshotPODJSON struct {
	ID           string `json:"id"`
	OrderID      string `json:"orderId"`
	DriverID     string `json:"driverId"`
	PhotoURL     string `json:"photoUrl"`
	SignatureURL string `json:"signatureUrl"`
	Notes        string `json:"notes"`
	DeliveredAt  string `json:"deliveredAt"`
}

type snapshotPositionJSON struct {
	DriverID  string   `json:"driverId"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Accuracy  *float64 `json:"accuracy"`
	UpdatedAt string   `json:"updatedAt"`
}

type snapshotResponse struct {
	Success         bool                   `json:"success"`
	Routes          []snapshotRouteJSON    `json:"routes"`
	Orders          []snapshotOrderJSON    `json:"orders"`
	PODs            []snapshotPODJSON      `json:"pods"`
	DriverPositions []snapshotPositionJSON `json:"driverPositions"`
}

// Snapshot handles GET /api/v1/dispatch/snapshot.
func (s *Server) Snapshot(c echo.Context) error {
	result, err := s.dispatchSnapshot.Handle(c.Request().Context(), queries.NewGetDispatchSnapshotQuery())
	if err != nil {
		return respondError(c, http.StatusInternalServerError, err.Error())
	}

	resp := snapshotResponse{
		Success:         true,
		Routes:          make([]snapshotRouteJSON, 0, len(result.Routes)),
		Orders:          make([]snapshotOrderJSON, 0, len(result.Orders)),
		PODs:            make([]snapshotPODJSON, 0, len(result.PODs)),
		DriverPositions: make([]snapshotPositionJSON, 0, len(result.Positions)),
	}

	for _, r := range result.Routes {
		var driverID *string
		if r.DriverID != nil {
			formatted := r.DriverID.String()
			driverID = &formatted
		}
		resp.Routes = append(resp.Routes, snapshotRouteJSON{
			ID:             r.ID.String(),
			Name:           r.Name,
			DriverID:       driverID,
			Status:         r.Status,
			TotalStops:     r.TotalStops,
			CompletedStops: r.CompletedStops,
			CreatedAt:      r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	for _, o := range result.Orders {
		resp.Orders = append(resp.Orders, snapshotOrderJSON{
			ID:           o.ID.String(),
			RouteID:      o.RouteID.String(),
			StopSequence: o.StopSequence,
			CustomerName: o.CustomerName,
			Address:      o.Address,
			City:         o.City,
			State:        o.State,
			Zip:          o.Zip,
			Status:       o.Status,
			Lat:          o.Latitude,
			Lng:          o.Longitude,
		})
	}

	for _, p := range result.PODs {
		resp.PODs = append(resp.PODs, snapshotPODJSON{
			ID:           p.ID.String(),
			OrderID:      p.OrderID.String(),
			DriverID:     p.DriverID.String(),
			PhotoURL:     p.PhotoURL,
			SignatureURL: p.SignatureURL,
			Notes:        p.Notes,
			DeliveredAt:  p.DeliveredAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	for _, p := range result.Positions {
		resp.DriverPositions = append(resp.DriverPositions, snapshotPositionJSON{
			DriverID:  p.DriverID.String(),
			Lat:       p.Latitude,
			Lng:       p.Longitude,
			Accuracy:  p.Accuracy,
			UpdatedAt: p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
