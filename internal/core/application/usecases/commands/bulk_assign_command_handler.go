package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// BulkAssignFailure reports one order that could not be assigned.
type BulkAssignFailure struct {
	OrderID kernel.UUID
	Reason  string
}

// BulkAssignResult reports the outcome of a bulk assignment: which orders
// the agent now holds and which were skipped, with the refusal reason.
type BulkAssignResult struct {
	Assigned []kernel.UUID
	Failed   []BulkAssignFailure
}

// BulkAssignCommandHandler assigns a batch of orders to one delivery agent.
// The batch is deliberately not atomic: each order is assigned in its own
// transaction, so one refused order (not approved, already assigned, version
// conflict) never unwinds the others. Agent eligibility is checked once up
// front; an unavailable agent fails the whole batch before any order is
// touched.
type BulkAssignCommandHandler struct {
	uowFactory UoWFactory
	events     OrderEvents
}

// NewBulkAssignCommandHandler creates a handler for bulk assignment.
func NewBulkAssignCommandHandler(uowFactory UoWFactory, events OrderEvents) BulkAssignCommandHandler {
	return BulkAssignCommandHandler{
		uowFactory: uowFactory,
		events:     events,
	}
}

// Handle processes the batch in request order and returns the union of
// per-order outcomes.
func (h BulkAssignCommandHandler) Handle(ctx context.Context, cmd BulkAssignCommand) (BulkAssignResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkAssignResult{}, err
	}

	if err := h.checkAgent(ctx, cmd.AgentID()); err != nil {
		return BulkAssignResult{}, err
	}

	var result BulkAssignResult
	for _, orderID := range cmd.OrderIDs() {
		if err := h.assignOne(ctx, orderID, cmd); err != nil {
			result.Failed = append(result.Failed, BulkAssignFailure{
				OrderID: orderID,
				Reason:  err.Error(),
			})
			continue
		}
		result.Assigned = append(result.Assigned, orderID)
	}

	return result, nil
}

func (h BulkAssignCommandHandler) checkAgent(ctx context.Context, agentID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courier, err := uow.AgentRepository().Get(ctx, agentID)
	if err != nil {
		return err
	}
	if !courier.IsAssignable() {
		return errs.NewPreconditionFailedError(
			"delivery agent " + courier.ID().String() + " is not available for assignment")
	}
	return nil
}

func (h BulkAssignCommandHandler) assignOne(ctx context.Context, orderID kernel.UUID, cmd BulkAssignCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	// Reloaded per order so the agent's accumulated load from earlier
	// iterations is visible in this transaction.
	courier, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return err
	}

	if err = o.Assign(cmd.AgentID(), cmd.AdminID(), cmd.Notes(), time.Now().UTC()); err != nil {
		return err
	}
	if err = courier.Assign(o.ID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = agentRepo.Update(ctx, courier); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.events.Emit(ctx, o, EventOrderAssigned, map[string]any{
		"agentId": cmd.AgentID().String(),
	})

	return nil
}
