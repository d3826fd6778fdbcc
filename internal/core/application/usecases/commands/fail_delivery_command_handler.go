package commands

import (
	"context"
	"log/slog"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/stopevent"
)

// FailDeliveryCommandHandler records a failed delivery attempt: a status
// write followed by a best-effort audit append. No POD is produced and no
// notification fires; the failure trail lives in the stop events alone.
type FailDeliveryCommandHandler struct {
	uowFactory        DeliveryUoWFactory
	strictStatusGuard bool
	logger            *slog.Logger
}

// NewFailDeliveryCommandHandler creates a handler for failed-attempt reports.
func NewFailDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	strictStatusGuard bool,
	logger *slog.Logger,
) FailDeliveryCommandHandler {
	return FailDeliveryCommandHandler{
		uowFactory:        uowFactory,
		strictStatusGuard: strictStatusGuard,
		logger:            logger.With("component", "fail_delivery"),
	}
}

// Handle processes one failed-attempt report.
func (h *FailDeliveryCommandHandler) Handle(ctx context.Context, cmd FailDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.persistStatus(ctx, cmd.OrderID()); err != nil {
		return err
	}

	h.appendStopEvent(ctx, cmd)

	return nil
}

func (h *FailDeliveryCommandHandler) persistStatus(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	repo := uow.OrderRepository()

	var err error
	if h.strictStatusGuard {
		err = repo.UpdateStatusIfNotTerminal(ctx, orderID, order.Failed, now)
	} else {
		err = repo.UpdateStatus(ctx, orderID, order.Failed, now)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *FailDeliveryCommandHandler) appendStopEvent(ctx context.Context, cmd FailDeliveryCommand) {
	event, err := stopevent.NewStopEvent(
		kernel.NewUUID(), cmd.OrderID(), cmd.DriverID(), stopevent.Failed, cmd.Notes(),
	)
	if err != nil {
		h.logger.ErrorContext(ctx, "Stop event construction failed",
			"order_id", cmd.OrderID().String(), "error", err)
		return
	}

	if err = appendEvent(ctx, h.uowFactory, event); err != nil {
		h.logger.ErrorContext(ctx, "Stop event append failed",
			"order_id", cmd.OrderID().String(), "event_type", stopevent.Failed.String(), "error", err)
	}
}

// appendEvent persists one audit record in its own transaction. Callers
// treat a returned error as log-and-continue.
func appendEvent(ctx context.Context, factory DeliveryUoWFactory, event *stopevent.StopEvent) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.StopEventRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
