package commands

import (
	"context"

	"lastmile/internal/core/domain/services"
)

// RecountRouteProgressCommandHandler rebuilds progress counters for every
// active route from the statuses of its orders. All routes are recounted in
// one transaction so dispatch never observes a half-updated batch.
type RecountRouteProgressCommandHandler struct {
	uowFactory RouteProgressUoWFactory
}

// NewRecountRouteProgressCommandHandler creates a handler for the recount.
func NewRecountRouteProgressCommandHandler(uowFactory RouteProgressUoWFactory) RecountRouteProgressCommandHandler {
	return RecountRouteProgressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the recount command.
func (h *RecountRouteProgressCommandHandler) Handle(ctx context.Context, cmd RecountRouteProgressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()
	ordersRepo := uow.OrderRepository()

	routes, err := routeRepo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	progress := services.NewRouteProgress()

	for _, r := range routes {
		orders, ordersErr := ordersRepo.GetAllByRouteID(ctx, r.ID())
		if ordersErr != nil {
			return ordersErr
		}

		if err = progress.Recount(r, orders); err != nil {
			return err
		}

		if err = routeRepo.Update(ctx, r); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
