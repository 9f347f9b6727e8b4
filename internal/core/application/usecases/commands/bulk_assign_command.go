package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrBulkAssignCommandIsNotConstructed = errors.New(
	"BulkAssignCommand must be created via NewBulkAssignCommand constructor",
)

// BulkAssignCommand represents an admin's request to hand a batch of orders
// to one delivery agent in a single sweep.
type BulkAssignCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID
	agentID  kernel.UUID
	adminID  kernel.UUID
	notes    string

	guard guard.ConstructorGuard
}

// NewBulkAssignCommand creates a command to assign several orders to one agent.
// Requires at least one order identifier; every identifier must be valid.
func NewBulkAssignCommand(
	orderIDs []kernel.UUID,
	agentID, adminID kernel.UUID,
	notes string,
) (BulkAssignCommand, error) {
	cmd := BulkAssignCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setAgentID(agentID),
		cmd.setAdminID(adminID),
	); err != nil {
		return BulkAssignCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkAssignCommand) Validate() error {
	return c.guard.Validate(ErrBulkAssignCommandIsNotConstructed)
}

// OrderIDs returns the identifiers of the orders to assign, in request order.
func (c BulkAssignCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}

// AgentID returns the identifier of the delivery agent.
func (c BulkAssignCommand) AgentID() kernel.UUID { return c.agentID }

// AdminID returns the identifier of the assigning admin.
func (c BulkAssignCommand) AdminID() kernel.UUID { return c.adminID }

// Notes returns the optional history notes.
func (c BulkAssignCommand) Notes() string { return c.notes }

func (c *BulkAssignCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIds")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("orderIds", err)
		}
	}
	c.orderIDs = append([]kernel.UUID(nil), orderIDs...)
	return nil
}

func (c *BulkAssignCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agentId", err)
	}
	c.agentID = agentID
	return nil
}

func (c *BulkAssignCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("adminId", err)
	}
	c.adminID = adminID
	return nil
}
