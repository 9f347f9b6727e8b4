package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// AgentResponseCommandHandler records a delivery agent's answer to an
// assignment. Acceptance stamps the assignment; rejection resets it to
// unassigned (keeping the reason for audit), drops the order from the
// agent's load in the same transaction, and leaves the order status where
// it is so the admin can re-assign without replaying transitions.
type AgentResponseCommandHandler struct {
	uowFactory UoWFactory
	events     OrderEvents
}

// NewAgentResponseCommandHandler creates a handler for agent responses.
func NewAgentResponseCommandHandler(uowFactory UoWFactory, events OrderEvents) AgentResponseCommandHandler {
	return AgentResponseCommandHandler{
		uowFactory: uowFactory,
		events:     events,
	}
}

// Handle processes the response command. Only the agent holding the
// assignment may respond; anyone else gets an UnauthorizedError.
func (h AgentResponseCommandHandler) Handle(ctx context.Context, cmd AgentResponseCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	eventType := EventAssignmentAccepted

	switch cmd.Response() {
	case ResponseAccepted:
		if err = o.AcceptAssignment(cmd.AgentID(), now); err != nil {
			return nil, err
		}
	case ResponseRejected:
		eventType = EventAssignmentRejected
		if err = o.RejectAssignment(cmd.AgentID(), cmd.Reason(), now); err != nil {
			return nil, err
		}

		agentRepo := uow.AgentRepository()
		courier, err := agentRepo.Get(ctx, cmd.AgentID())
		if err != nil {
			return nil, err
		}
		if err = courier.Unassign(o.ID()); err != nil {
			return nil, err
		}
		if err = agentRepo.Update(ctx, courier); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.Emit(ctx, o, eventType, map[string]any{
		"agentId": cmd.AgentID().String(),
		"reason":  cmd.Reason(),
	})

	return o, nil
}
