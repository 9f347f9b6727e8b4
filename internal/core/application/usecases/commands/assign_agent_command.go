package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand represents an admin's request to hand an approved order
// to a delivery agent.
type AssignAgentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID kernel.UUID
	adminID kernel.UUID
	notes   string

	guard guard.ConstructorGuard
}

// NewAssignAgentCommand creates a command to assign a delivery agent to an
// order. Notes are optional and recorded in the status history.
func NewAssignAgentCommand(orderID, agentID, adminID kernel.UUID, notes string) (AssignAgentCommand, error) {
	cmd := AssignAgentCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAgentID(agentID),
		cmd.setAdminID(adminID),
	); err != nil {
		return AssignAgentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignAgentCommand) OrderID() kernel.UUID { return c.orderID }

// AgentID returns the identifier of the delivery agent.
func (c AssignAgentCommand) AgentID() kernel.UUID { return c.agentID }

// AdminID returns the identifier of the assigning admin.
func (c AssignAgentCommand) AdminID() kernel.UUID { return c.adminID }

// Notes returns the optional history notes.
func (c AssignAgentCommand) Notes() string { return c.notes }

func (c *AssignAgentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *AssignAgentCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agentId", err)
	}
	c.agentID = agentID
	return nil
}

func (c *AssignAgentCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("adminId", err)
	}
	c.adminID = adminID
	return nil
}
