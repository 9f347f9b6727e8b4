package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordAgentArrivalCommandIsNotConstructed = errors.New(
	"RecordAgentArrivalCommand must be created via NewRecordAgentArrivalCommand constructor",
)

// RecordAgentArrivalCommand represents the delivery agent reporting arrival
// at the buyer's location. From that point on the order can no longer be
// cancelled.
type RecordAgentArrivalCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecordAgentArrivalCommand creates a command recording the arrival.
func NewRecordAgentArrivalCommand(orderID, agentID kernel.UUID) (RecordAgentArrivalCommand, error) {
	cmd := RecordAgentArrivalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAgentID(agentID),
	); err != nil {
		return RecordAgentArrivalCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordAgentArrivalCommand) Validate() error {
	return c.guard.Validate(ErrRecordAgentArrivalCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being delivered.
func (c RecordAgentArrivalCommand) OrderID() kernel.UUID { return c.orderID }

// AgentID returns the identifier of the reporting agent.
func (c RecordAgentArrivalCommand) AgentID() kernel.UUID { return c.agentID }

func (c *RecordAgentArrivalCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *RecordAgentArrivalCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agentId", err)
	}
	c.agentID = agentID
	return nil
}
