package services_test

import (
	"testing"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/route"
	"lastmile/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreOrder(t *testing.T, routeID *kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), "Jane Doe", "", "123 Main St",
		"", "", "", "", "", nil, status, routeID, nil,
	)
	require.NoError(t, err)
	return o
}

func TestRouteProgress_Recount(t *testing.T) {
	svc := services.NewRouteProgress()

	t.Run("counts terminal orders as completed", func(t *testing.T) {
		r, err := route.NewRoute(kernel.NewUUID(), "Downtown AM")
		require.NoError(t, err)
		routeID := r.ID()

		orders := []*order.Order{
			restoreOrder(t, &routeID, order.Delivered),
			restoreOrder(t, &routeID, order.Failed),
			restoreOrder(t, &routeID, order.InTransit),
			restoreOrder(t, &routeID, order.Assigned),
		}

		require.NoError(t, svc.Recount(r, orders))
		assert.Equal(t, 4, r.TotalStops())
		assert.Equal(t, 2, r.CompletedStops())
	})

	t.Run("ignores orders from other routes", func(t *testing.T) {
		r, err := route.NewRoute(kernel.NewUUID(), "Downtown AM")
		require.NoError(t, err)
		routeID := r.ID()
		otherRouteID := kernel.NewUUID()

		orders := []*order.Order{
			restoreOrder(t, &routeID, order.Delivered),
			restoreOrder(t, &otherRouteID, order.Delivered),
			restoreOrder(t, nil, order.Pending),
		}

		require.NoError(t, svc.Recount(r, orders))
		assert.Equal(t, 1, r.TotalStops())
		assert.Equal(t, 1, r.CompletedStops())
	})

	t.Run("empty working set zeroes the counters", func(t *testing.T) {
		r, err := route.RestoreRoute(kernel.NewUUID(), "Downtown AM", nil, route.Active, 5, 3)
		require.NoError(t, err)

		require.NoError(t, svc.Recount(r, nil))
		assert.Zero(t, r.TotalStops())
		assert.Zero(t, r.CompletedStops())
	})

	t.Run("rejects unconstructed route", func(t *testing.T) {
		var r route.Route
		require.Error(t, svc.Recount(&r, nil))
	})
}
