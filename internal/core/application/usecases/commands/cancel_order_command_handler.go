package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order. The aggregate refuses the
// cancellation once the assigned agent has reached the buyer
// (order.ErrAgentReachedBuyer) and for terminal orders
// (errs.ErrInvalidTransition); callers can tell the two apart.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	inventory  ports.InventoryService
	events     OrderEvents
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	inventory ports.InventoryService,
	events OrderEvents,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		inventory:  inventory,
		events:     events,
		logger:     logger.With("component", "cancel_order"),
	}
}

// Handle processes the cancellation. The order mutation and the release of
// an assigned agent commit in one transaction; the inventory release runs
// after the commit, is idempotent per order number, and a failure is logged
// without unwinding the cancellation.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	if err = o.TransitionTo(order.Cancelled, cmd.Actor(), cmd.Reason(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if o.Assignment().HasAgent() {
		agentRepo := uow.AgentRepository()

		courier, err := agentRepo.Get(ctx, *o.Assignment().AgentID())
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

	if err = h.inventory.Release(ctx, o.OrderNumber(), o.Items()); err != nil {
		h.logger.WarnContext(ctx, "inventory release failed",
			"orderNumber", o.OrderNumber(), "error", err)
	}

	h.events.Emit(ctx, o, EventOrderCancelled, map[string]any{
		"reason": cmd.Reason(),
	})

	return o, nil
}
