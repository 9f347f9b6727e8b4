package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrApproveOrderCommandIsNotConstructed = errors.New(
	"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
)

// ApprovalDecision is the admin's verdict on a pending order.
type ApprovalDecision string

const (
	DecisionApprove ApprovalDecision = "approve"
	DecisionReject  ApprovalDecision = "reject"
)

// ApproveOrderCommand represents an admin deciding a pending approval before
// the auto-approval deadline.
type ApproveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	adminID  kernel.UUID
	decision ApprovalDecision

	guard guard.ConstructorGuard
}

// NewApproveOrderCommand creates a command carrying the admin's decision.
func NewApproveOrderCommand(orderID, adminID kernel.UUID, decision ApprovalDecision) (ApproveOrderCommand, error) {
	cmd := ApproveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAdminID(adminID),
		cmd.setDecision(decision),
	); err != nil {
		return ApproveOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being decided.
func (c ApproveOrderCommand) OrderID() kernel.UUID { return c.orderID }

// AdminID returns the identifier of the deciding admin.
func (c ApproveOrderCommand) AdminID() kernel.UUID { return c.adminID }

// Decision returns the admin's verdict.
func (c ApproveOrderCommand) Decision() ApprovalDecision { return c.decision }

func (c *ApproveOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *ApproveOrderCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("adminId", err)
	}
	c.adminID = adminID
	return nil
}

func (c *ApproveOrderCommand) setDecision(decision ApprovalDecision) error {
	switch decision {
	case DecisionApprove, DecisionReject:
	default:
		return errs.NewValueIsInvalidError("decision")
	}
	c.decision = decision
	return nil
}
