package commands

import (
	"context"

	"lastmile/internal/core/domain/model/driver"
)

// RecordDriverPositionCommandHandler upserts the driver's latest position.
// Last write wins; out-of-order reports from the same driver are not
// detected.
type RecordDriverPositionCommandHandler struct {
	uowFactory PositionUoWFactory
}

// NewRecordDriverPositionCommandHandler creates a handler for location reports.
func NewRecordDriverPositionCommandHandler(uowFactory PositionUoWFactory) RecordDriverPositionCommandHandler {
	return RecordDriverPositionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one location report.
func (h *RecordDriverPositionCommandHandler) Handle(ctx context.Context, cmd RecordDriverPositionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	position, err := driver.NewPosition(cmd.DriverID(), cmd.Point(), cmd.Accuracy())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DriverPositionRepository().Upsert(ctx, position); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
