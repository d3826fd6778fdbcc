package commands

import (
	"errors"

	"lastmile/internal/pkg/guard"
)

var (
	ErrRecountRouteProgressCommandIsNotConstructed = errors.New(
		"RecountRouteProgressCommand must be created via NewRecountRouteProgressCommand constructor",
	)
)

// RecountRouteProgressCommand triggers a recount of progress counters for
// all active routes. Counters are derived from order statuses, so the
// recount repairs drift caused by completion writes that bypassed a route
// update.
//
// This is a parameterless batch command, typically invoked on a schedule.
type RecountRouteProgressCommand struct {
	guard guard.ConstructorGuard
}

// NewRecountRouteProgressCommand creates a command to trigger the recount.
func NewRecountRouteProgressCommand() RecountRouteProgressCommand {
	return RecountRouteProgressCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *RecountRouteProgressCommand) Validate() error {
	return c.guard.Validate(ErrRecountRouteProgressCommandIsNotConstructed)
}
