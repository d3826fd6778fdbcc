package commands_test

import (
	"testing"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFailDeliveryCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	cmd, err := commands.NewFailDeliveryCommand(orderID, driverID, "nobody home")
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, driverID, cmd.DriverID())
	assert.Equal(t, "nobody home", cmd.Notes())
}

func TestNewFailDeliveryCommand_EmptyNotes(t *testing.T) {
	_, err := commands.NewFailDeliveryCommand(kernel.NewUUID(), kernel.NewUUID(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewFailDeliveryCommand_BlankNotes(t *testing.T) {
	_, err := commands.NewFailDeliveryCommand(kernel.NewUUID(), kernel.NewUUID(), "   \n")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewFailDeliveryCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewFailDeliveryCommand(kernel.UUID{}, kernel.NewUUID(), "nobody home")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
