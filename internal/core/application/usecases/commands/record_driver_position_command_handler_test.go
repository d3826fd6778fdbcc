package commands_test

import (
	"errors"
	"testing"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRecordDriverPositionCommand_ValidInput(t *testing.T) {
	driverID := kernel.NewUUID()
	point, err := kernel.NewGeoPoint(40.7128, -74.0060)
	require.NoError(t, err)
	accuracy := 12.5

	cmd, err := commands.NewRecordDriverPositionCommand(driverID, point, &accuracy)
	require.NoError(t, err)
	assert.Equal(t, driverID, cmd.DriverID())
	assert.True(t, point.IsEqual(cmd.Point()))
	require.NotNil(t, cmd.Accuracy())
	assert.InDelta(t, 12.5, *cmd.Accuracy(), 0.0001)
}

func TestNewRecordDriverPositionCommand_InvalidDriverID(t *testing.T) {
	point, err := kernel.NewGeoPoint(0, 0)
	require.NoError(t, err)

	_, err = commands.NewRecordDriverPositionCommand(kernel.UUID{}, point, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestRecordDriverPositionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	point, err := kernel.NewGeoPoint(40.7128, -74.0060)
	require.NoError(t, err)
	cmd, err := commands.NewRecordDriverPositionCommand(driverID, point, nil)
	require.NoError(t, err)

	positionRepo := new(MockDriverPositionRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverPositionRepository").Return(positionRepo).Once(),
		positionRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *driver.Position) bool {
			return p.DriverID().IsEqual(driverID) && p.Point().IsEqual(point) && p.Accuracy() == nil
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPositionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordDriverPositionCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	positionRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRecordDriverPositionCommandHandler_Handle_UpsertError(t *testing.T) {
	ctx := t.Context()
	point, err := kernel.NewGeoPoint(51.5074, -0.1278)
	require.NoError(t, err)
	cmd, err := commands.NewRecordDriverPositionCommand(kernel.NewUUID(), point, nil)
	require.NoError(t, err)

	positionRepo := new(MockDriverPositionRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverPositionRepository").Return(positionRepo).Once(),
		positionRepo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("upsert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPositionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordDriverPositionCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestRecordDriverPositionCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.RecordDriverPositionCommand

	h := commands.NewRecordDriverPositionCommandHandler(new(MockPositionUoWFactory))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrRecordDriverPositionCommandIsNotConstructed)
}
