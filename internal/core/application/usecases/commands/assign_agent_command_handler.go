package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// AssignAgentCommandHandler hands an approved order to a delivery agent.
// The order side (approval granted, no current assignment, status moved to
// Pickup_Ready) and the agent side (active, available, order added to its
// load) are checked and applied in one transaction: a failure on either
// side leaves both records untouched.
//
// Example:
//
//	cmd, _ := NewAssignAgentCommand(orderID, agentID, adminID, "")
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrPreconditionFailed) {
//	    // order not approved, already assigned, or agent not available
//	}
type AssignAgentCommandHandler struct {
	uowFactory UoWFactory
	events     OrderEvents
}

// NewAssignAgentCommandHandler creates a handler for agent assignment.
func NewAssignAgentCommandHandler(uowFactory UoWFactory, events OrderEvents) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
		events:     events,
	}
}

// Handle processes the assignment command and returns the updated order.
func (h AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) (*order.Order, error) {
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
	agentRepo := uow.AgentRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	courier, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return nil, err
	}
	if !courier.IsAssignable() {
		return nil, errs.NewPreconditionFailedError(
			"delivery agent " + courier.ID().String() + " is not available for assignment")
	}

	if err = o.Assign(cmd.AgentID(), cmd.AdminID(), cmd.Notes(), time.Now().UTC()); err != nil {
		return nil, err
	}
	if err = courier.Assign(o.ID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = agentRepo.Update(ctx, courier); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.Emit(ctx, o, EventOrderAssigned, map[string]any{
		"agentId": cmd.AgentID().String(),
	})

	return o, nil
}
