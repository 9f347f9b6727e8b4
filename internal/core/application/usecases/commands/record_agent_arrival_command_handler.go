package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// RecordAgentArrivalCommandHandler marks the assignment as reached-buyer.
// Only the holding agent may report arrival, and only after accepting the
// assignment.
type RecordAgentArrivalCommandHandler struct {
	uowFactory OrderUoWFactory
	events     OrderEvents
}

// NewRecordAgentArrivalCommandHandler creates a handler for arrival reports.
func NewRecordAgentArrivalCommandHandler(
	uowFactory OrderUoWFactory,
	events OrderEvents,
) RecordAgentArrivalCommandHandler {
	return RecordAgentArrivalCommandHandler{
		uowFactory: uowFactory,
		events:     events,
	}
}

// Handle processes the arrival report and returns the updated order.
func (h RecordAgentArrivalCommandHandler) Handle(
	ctx context.Context,
	cmd RecordAgentArrivalCommand,
) (*order.Order, error) {
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

	if err = o.RecordAgentArrival(cmd.AgentID(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.Emit(ctx, o, EventAgentArrived, map[string]any{
		"agentId": cmd.AgentID().String(),
	})

	return o, nil
}
