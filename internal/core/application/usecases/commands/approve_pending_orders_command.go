package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrApprovePendingOrdersCommandIsNotConstructed = errors.New(
	"ApprovePendingOrdersCommand must be created via NewApprovePendingOrdersCommand constructor",
)

// ApprovePendingOrdersCommand triggers the auto-approval sweep over every
// order whose approval deadline has elapsed without a seller decision.
//
// Example:
//
//	cmd := NewApprovePendingOrdersCommand()
//	approved, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("sweep failed: %v", err)
//	} else {
//	    log.Printf("auto-approved %d orders", approved)
//	}
type ApprovePendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewApprovePendingOrdersCommand creates a command to run one sweep pass.
// This is a parameterless command; the deadline check uses the current time.
func NewApprovePendingOrdersCommand() ApprovePendingOrdersCommand {
	return ApprovePendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ApprovePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrApprovePendingOrdersCommandIsNotConstructed)
}
