package commands_test

import (
	"errors"
	"testing"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/stopevent"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordArrivalCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	cmd, err := commands.NewRecordArrivalCommand(orderID, driverID, "gate code 4711")
	require.NoError(t, err)

	eventRepo := new(MockStopEventRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StopEventRepository").Return(eventRepo).Once(),
		eventRepo.On("Add", mock.Anything, mock.MatchedBy(func(e *stopevent.StopEvent) bool {
			return e.OrderID().IsEqual(orderID) &&
				e.DriverID().IsEqual(driverID) &&
				e.Type() == stopevent.Arrived &&
				e.Notes() == "gate code 4711"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStopEventUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordArrivalCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	eventRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRecordArrivalCommandHandler_Handle_AddErrorIsReturned(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRecordArrivalCommand(kernel.NewUUID(), kernel.NewUUID(), "")
	require.NoError(t, err)

	eventRepo := new(MockStopEventRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StopEventRepository").Return(eventRepo).Once(),
		eventRepo.On("Add", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStopEventUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordArrivalCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestRecordArrivalCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.RecordArrivalCommand

	h := commands.NewRecordArrivalCommandHandler(new(MockStopEventUoWFactory))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrRecordArrivalCommandIsNotConstructed)
}
