package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAgentResponseCommandIsNotConstructed = errors.New(
	"AgentResponseCommand must be created via NewAgentResponseCommand constructor",
)

// AgentResponse is the agent's answer to an assignment.
type AgentResponse string

const (
	ResponseAccepted AgentResponse = "accepted"
	ResponseRejected AgentResponse = "rejected"
)

// AgentResponseCommand represents a delivery agent accepting or rejecting an
// assignment. A rejection must carry a reason; it is kept for audit after
// the assignment is reset.
type AgentResponseCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	agentID  kernel.UUID
	response AgentResponse
	reason   string

	guard guard.ConstructorGuard
}

// NewAgentResponseCommand creates a command recording the agent's response.
func NewAgentResponseCommand(
	orderID, agentID kernel.UUID,
	response AgentResponse,
	reason string,
) (AgentResponseCommand, error) {
	cmd := AgentResponseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAgentID(agentID),
		cmd.setResponse(response, reason),
	); err != nil {
		return AgentResponseCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AgentResponseCommand) Validate() error {
	return c.guard.Validate(ErrAgentResponseCommandIsNotConstructed)
}

// OrderID returns the identifier of the assigned order.
func (c AgentResponseCommand) OrderID() kernel.UUID { return c.orderID }

// AgentID returns the identifier of the responding agent.
func (c AgentResponseCommand) AgentID() kernel.UUID { return c.agentID }

// Response returns the agent's answer.
func (c AgentResponseCommand) Response() AgentResponse { return c.response }

// Reason returns the rejection reason; empty on acceptance.
func (c AgentResponseCommand) Reason() string { return c.reason }

func (c *AgentResponseCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *AgentResponseCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agentId", err)
	}
	c.agentID = agentID
	return nil
}

func (c *AgentResponseCommand) setResponse(response AgentResponse, reason string) error {
	switch response {
	case ResponseAccepted:
	case ResponseRejected:
		if reason == "" {
			return errs.NewValueIsRequiredError("reason")
		}
	default:
		return errs.NewValueIsInvalidError("response")
	}
	c.response = response
	c.reason = reason
	return nil
}
