package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// ApprovePendingOrdersCommandHandler runs the auto-approval sweep: every
// order with a pending approval past its deadline is promoted to
// auto_approved. The sweep is idempotent (an already-decided approval is a
// no-op) and each order commits in its own transaction, so one failure
// never stops the pass. Re-running a sweep, or two sweeps racing, converges
// on the same state: the loser of a version race simply finds nothing left
// to do on the next pass.
type ApprovePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	events     OrderEvents
	logger     *slog.Logger
}

// NewApprovePendingOrdersCommandHandler creates a handler for the sweep.
func NewApprovePendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	events OrderEvents,
	logger *slog.Logger,
) ApprovePendingOrdersCommandHandler {
	return ApprovePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		events:     events,
		logger:     logger.With("component", "auto_approval_sweep"),
	}
}

// Handle runs one sweep pass and returns how many orders were auto-approved.
func (h ApprovePendingOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ApprovePendingOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	dueIDs, err := h.listDue(ctx, now)
	if err != nil {
		return 0, err
	}

	approved := 0
	for _, orderID := range dueIDs {
		changed, err := h.approveOne(ctx, orderID, now)
		if err != nil {
			h.logger.WarnContext(ctx, "auto-approval skipped",
				"orderId", orderID.String(), "error", err)
			continue
		}
		if changed {
			approved++
		}
	}

	return approved, nil
}

func (h ApprovePendingOrdersCommandHandler) listDue(ctx context.Context, now time.Time) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	due, err := uow.OrderRepository().GetDueForAutoApproval(ctx, now)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(due))
	for _, o := range due {
		ids = append(ids, o.ID())
	}
	return ids, nil
}

func (h ApprovePendingOrdersCommandHandler) approveOne(
	ctx context.Context,
	orderID kernel.UUID,
	now time.Time,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	// Reloaded so a decision made between the listing and this transaction
	// is respected.
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return false, err
	}

	changed, err := o.AutoApprove(now)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.events.Emit(ctx, o, EventOrderAutoApproved, nil)

	return true, nil
}
