package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// ApproveOrderCommandHandler records an admin's approval decision. A second
// decision on the same order, including one racing the auto-approval sweep,
// is refused by the aggregate with a PreconditionFailedError.
type ApproveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	events     OrderEvents
}

// NewApproveOrderCommandHandler creates a handler for approval decisions.
func NewApproveOrderCommandHandler(uowFactory OrderUoWFactory, events OrderEvents) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory: uowFactory,
		events:     events,
	}
}

// Handle processes the decision and returns the updated order.
func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) (*order.Order, error) {
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
	eventType := EventOrderApproved

	switch cmd.Decision() {
	case DecisionApprove:
		if err = o.Approve(cmd.AdminID(), now); err != nil {
			return nil, err
		}
	case DecisionReject:
		eventType = EventApprovalRejected
		if err = o.RejectApproval(cmd.AdminID(), now); err != nil {
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
		"adminId": cmd.AdminID().String(),
	})

	return o, nil
}
