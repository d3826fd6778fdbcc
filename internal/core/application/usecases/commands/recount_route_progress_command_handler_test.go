package commands_test

import (
	"errors"
	"testing"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoreRouteOrder(t *testing.T, routeID kernel.UUID, seq int, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), "Casey", "casey@example.com", "12 Elm St", "Springfield", "IL", "62701", "", "",
		nil, status, &routeID, &seq,
	)
	require.NoError(t, err)
	return o
}

func TestRecountRouteProgressCommandHandler_Handle_RecountsEachActiveRoute(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRecountRouteProgressCommand()

	routeID := kernel.NewUUID()
	activeRoute, err := route.RestoreRoute(routeID, "Morning North", nil, route.Active, 0, 0)
	require.NoError(t, err)

	orders := []*order.Order{
		restoreRouteOrder(t, routeID, 1, order.Delivered),
		restoreRouteOrder(t, routeID, 2, order.Failed),
		restoreRouteOrder(t, routeID, 3, order.InTransit),
	}

	routeRepo := new(MockRouteRepository)
	ordersRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		routeRepo.On("GetAllActive", mock.Anything).Return([]*route.Route{activeRoute}, nil).Once(),
		ordersRepo.On("GetAllByRouteID", mock.Anything, routeID).Return(orders, nil).Once(),
		routeRepo.On("Update", mock.Anything, activeRoute).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRouteProgressUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecountRouteProgressCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 3, activeRoute.TotalStops())
	assert.Equal(t, 2, activeRoute.CompletedStops())

	routeRepo.AssertExpectations(t)
	ordersRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecountRouteProgressCommandHandler_Handle_NoActiveRoutes(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRecountRouteProgressCommand()

	routeRepo := new(MockRouteRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		uow.On("OrderRepository").Return(new(MockOrderRepository)).Once(),
		routeRepo.On("GetAllActive", mock.Anything).Return([]*route.Route{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRouteProgressUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecountRouteProgressCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
}

func TestRecountRouteProgressCommandHandler_Handle_ReadErrorRollsBack(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRecountRouteProgressCommand()

	routeRepo := new(MockRouteRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		uow.On("OrderRepository").Return(new(MockOrderRepository)).Once(),
		routeRepo.On("GetAllActive", mock.Anything).Return(nil, errors.New("query failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRouteProgressUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecountRouteProgressCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRecountRouteProgressCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.RecountRouteProgressCommand

	h := commands.NewRecountRouteProgressCommandHandler(new(MockRouteProgressUoWFactory))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrRecountRouteProgressCommandIsNotConstructed)
}
