package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// TransitionStatusCommandHandler applies one lifecycle transition to an
// order. The aggregate enforces the legal transition graph, the role gate,
// and the cancellation guard; the handler wires the post-commit side effects:
// invoice generation on delivery, inventory release on cancellation, agent
// release on either terminal, and event fan-out.
//
// Example:
//
//	cmd, _ := NewTransitionStatusCommand(orderID, order.Processing, seller, "")
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // transition not in the legal graph from the current status
//	case errors.Is(err, errs.ErrConflict):
//	    // lost the version race, reload and retry
//	case err != nil:
//	    return err
//	}
type TransitionStatusCommandHandler struct {
	uowFactory UoWFactory
	inventory  ports.InventoryService
	invoices   ports.InvoiceService
	events     OrderEvents
	logger     *slog.Logger
}

// NewTransitionStatusCommandHandler creates a handler for status transitions.
func NewTransitionStatusCommandHandler(
	uowFactory UoWFactory,
	inventory ports.InventoryService,
	invoices ports.InvoiceService,
	events OrderEvents,
	logger *slog.Logger,
) TransitionStatusCommandHandler {
	return TransitionStatusCommandHandler{
		uowFactory: uowFactory,
		inventory:  inventory,
		invoices:   invoices,
		events:     events,
		logger:     logger.With("component", "transition_status"),
	}
}

// Handle processes the transition command. The order mutation and, for
// terminal transitions of an assigned order, the agent release commit in one
// transaction. Collaborator calls run after the commit and are best-effort:
// a failed invoice or inventory release is logged, never rolled back.
func (h TransitionStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionStatusCommand,
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

	if err = o.TransitionTo(cmd.Next(), cmd.Actor(), cmd.Notes(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if o.Status().IsTerminal() && o.Assignment().HasAgent() {
		if err = h.releaseAgent(ctx, uow, o); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.applySideEffects(ctx, o)

	return o, nil
}

func (h TransitionStatusCommandHandler) releaseAgent(ctx context.Context, uow UoW, o *order.Order) error {
	agentRepo := uow.AgentRepository()

	courier, err := agentRepo.Get(ctx, *o.Assignment().AgentID())
	if err != nil {
		return err
	}
	if err = courier.Unassign(o.ID()); err != nil {
		return err
	}
	return agentRepo.Update(ctx, courier)
}

func (h TransitionStatusCommandHandler) applySideEffects(ctx context.Context, o *order.Order) {
	switch o.Status() {
	case order.Delivered:
		invoiceURL, err := h.invoices.Generate(ctx, o)
		if err != nil {
			h.logger.WarnContext(ctx, "invoice generation failed",
				"orderNumber", o.OrderNumber(), "error", err)
		}
		h.events.Emit(ctx, o, EventOrderDelivered, map[string]any{
			"invoiceUrl": invoiceURL,
		})
	case order.Cancelled:
		if err := h.inventory.Release(ctx, o.OrderNumber(), o.Items()); err != nil {
			h.logger.WarnContext(ctx, "inventory release failed",
				"orderNumber", o.OrderNumber(), "error", err)
		}
		h.events.Emit(ctx, o, EventOrderCancelled, nil)
	default:
		h.events.Emit(ctx, o, EventOrderStatusChanged, nil)
	}
}
