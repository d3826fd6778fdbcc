package commands

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/stopevent"
)

// RecordArrivalCommandHandler appends an arrival record to the stop audit
// trail. The append is the operation's primary write, so unlike the audit
// appends inside the completion pipeline its failure is returned to the
// caller.
type RecordArrivalCommandHandler struct {
	uowFactory StopEventUoWFactory
}

// NewRecordArrivalCommandHandler creates a handler for arrival reports.
func NewRecordArrivalCommandHandler(uowFactory StopEventUoWFactory) RecordArrivalCommandHandler {
	return RecordArrivalCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one arrival report.
func (h *RecordArrivalCommandHandler) Handle(ctx context.Context, cmd RecordArrivalCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	event, err := stopevent.NewStopEvent(
		kernel.NewUUID(), cmd.OrderID(), cmd.DriverID(), stopevent.Arrived, cmd.Notes(),
	)
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

	if err = uow.StopEventRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
