package order_test

import (
	"testing"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, "Jane Doe", "jane@example.com", "123 Main St")

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "Jane Doe", o.CustomerName())
		assert.Equal(t, "jane@example.com", o.CustomerEmail())
		assert.Nil(t, o.RouteID())
		assert.Nil(t, o.StopSequence())
		assert.NoError(t, o.Validate())
	})

	t.Run("requires customer name", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", "jane@example.com", "123 Main St")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires address", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "Jane Doe", "jane@example.com", "")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires valid id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "Jane Doe", "jane@example.com", "123 Main St")
		require.Error(t, err)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores full row", func(t *testing.T) {
		id := kernel.NewUUID()
		routeID := kernel.NewUUID()
		seq := 3
		target, err := kernel.NewGeoPoint(40.7128, -74.0060)
		require.NoError(t, err)

		o, err := order.RestoreOrder(
			id, "Jane Doe", "jane@example.com", "123 Main St",
			"New York", "NY", "10001", "+1 555 0100", "ring bell twice",
			&target, order.InTransit, &routeID, &seq,
		)

		require.NoError(t, err)
		assert.Equal(t, order.InTransit, o.Status())
		assert.Equal(t, "New York", o.City())
		assert.Equal(t, "10001", o.Zip())
		require.NotNil(t, o.RouteID())
		assert.True(t, o.RouteID().IsEqual(routeID))
		require.NotNil(t, o.StopSequence())
		assert.Equal(t, 3, *o.StopSequence())
		require.NotNil(t, o.Target())
		assert.InDelta(t, 40.7128, o.Target().Lat(), 0.0001)
	})

	t.Run("rejects corrupt status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), "Jane Doe", "", "123 Main St",
			"", "", "", "", "", nil, order.Status("done"), nil, nil,
		)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects negative stop sequence", func(t *testing.T) {
		seq := -1
		_, err := order.RestoreOrder(
			kernel.NewUUID(), "Jane Doe", "", "123 Main St",
			"", "", "", "", "", nil, order.Pending, nil, &seq,
		)
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order is invalid", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_GuardedTransitions(t *testing.T) {
	restore := func(t *testing.T, status order.Status) *order.Order {
		t.Helper()
		o, err := order.RestoreOrder(
			kernel.NewUUID(), "Jane Doe", "", "123 Main St",
			"", "", "", "", "", nil, status, nil, nil,
		)
		require.NoError(t, err)
		return o
	}

	t.Run("in_transit order can be delivered", func(t *testing.T) {
		o := restore(t, order.InTransit)
		require.NoError(t, o.Deliver())
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("in_transit order can be failed", func(t *testing.T) {
		o := restore(t, order.InTransit)
		require.NoError(t, o.Fail())
		assert.Equal(t, order.Failed, o.Status())
	})

	t.Run("delivered order refuses further transitions", func(t *testing.T) {
		o := restore(t, order.Delivered)
		require.ErrorIs(t, o.Deliver(), order.ErrOrderIsTerminal)
		require.ErrorIs(t, o.Fail(), order.ErrOrderIsTerminal)
	})

	t.Run("pending order cannot be delivered directly", func(t *testing.T) {
		o := restore(t, order.Pending)
		require.Error(t, o.Deliver())
		assert.Equal(t, order.Pending, o.Status())
	})
}
