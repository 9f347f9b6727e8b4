package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateAgentCommandIsNotConstructed = errors.New(
	"CreateAgentCommand must be created via NewCreateAgentCommand constructor",
)

// CreateAgentCommand represents registering a new delivery agent. Agents
// start active and available.
type CreateAgentCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	name    string

	guard guard.ConstructorGuard
}

// NewCreateAgentCommand creates a command to register a delivery agent.
func NewCreateAgentCommand(agentID kernel.UUID, name string) (CreateAgentCommand, error) {
	cmd := CreateAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgentID(agentID),
		cmd.setName(name),
	); err != nil {
		return CreateAgentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateAgentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAgentCommandIsNotConstructed)
}

// AgentID returns the identifier for the new agent.
func (c CreateAgentCommand) AgentID() kernel.UUID { return c.agentID }

// Name returns the agent's display name.
func (c CreateAgentCommand) Name() string { return c.name }

func (c *CreateAgentCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agentId", err)
	}
	c.agentID = agentID
	return nil
}

func (c *CreateAgentCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}
