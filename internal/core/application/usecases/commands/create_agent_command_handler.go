package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/agent"
)

// CreateAgentCommandHandler registers a new delivery agent.
type CreateAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewCreateAgentCommandHandler creates a handler for agent registration.
func NewCreateAgentCommandHandler(uowFactory AgentUoWFactory) CreateAgentCommandHandler {
	return CreateAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration and returns the new agent.
func (h CreateAgentCommandHandler) Handle(ctx context.Context, cmd CreateAgentCommand) (*agent.DeliveryAgent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courier, err := agent.NewDeliveryAgent(cmd.AgentID(), cmd.Name())
	if err != nil {
		return nil, err
	}

	if err = uow.AgentRepository().Add(ctx, courier); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return courier, nil
}
