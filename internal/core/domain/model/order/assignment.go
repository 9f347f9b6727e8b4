package order

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// AssignmentStatus represents the delivery-agent binding sub-state of an order.
type AssignmentStatus int

const (
	// AssignmentUnassigned is the zero value: no agent is bound to the order.
	AssignmentUnassigned AssignmentStatus = iota

	// AssignmentAssigned means an admin bound an agent; the agent has not
	// responded yet.
	AssignmentAssigned

	// AssignmentAccepted means the agent accepted the assignment.
	AssignmentAccepted

	// AssignmentRejected is recorded transiently while resetting the binding;
	// a persisted assignment never stays in this state (rejection resets it
	// to unassigned with the reason kept).
	AssignmentRejected

	// AssignmentPickupCompleted means the agent picked the order up.
	AssignmentPickupCompleted

	// AssignmentDeliveryCompleted means the agent handed the order to the buyer.
	AssignmentDeliveryCompleted
)

func assignmentStatusStrings() map[AssignmentStatus]string {
	return map[AssignmentStatus]string{
		AssignmentUnassigned:        "unassigned",
		AssignmentAssigned:          "assigned",
		AssignmentAccepted:          "accepted",
		AssignmentRejected:          "rejected",
		AssignmentPickupCompleted:   "pickup_completed",
		AssignmentDeliveryCompleted: "delivery_completed",
	}
}

// AssignmentStatusFromString parses an assignment status from its wire representation.
func AssignmentStatusFromString(s string) (AssignmentStatus, error) {
	for status, str := range assignmentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return AssignmentUnassigned, errs.NewValueIsInvalidErrorWithCause(
		"assignmentStatus", fmt.Errorf("%q is not a valid assignment status", s))
}

// String returns the wire representation of the assignment status.
func (s AssignmentStatus) String() string {
	if str, ok := assignmentStatusStrings()[s]; ok {
		return str
	}
	return "unassigned"
}

// Validate rejects out-of-range values. AssignmentUnassigned is a valid zero value.
func (s AssignmentStatus) Validate() error {
	if _, ok := assignmentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"assignmentStatus", fmt.Errorf("%d is not a valid assignment status", s))
	}
	return nil
}

// Assignment is the delivery-agent binding of an order. Invariant: agentID is
// non-nil exactly when status is not unassigned. The zero value is a valid
// unassigned binding.
type Assignment struct {
	agentID         *kernel.UUID
	status          AssignmentStatus
	assignedAt      *time.Time
	assignedBy      *kernel.UUID
	acceptedAt      *time.Time
	rejectedAt      *time.Time
	rejectionReason string
	reachedBuyerAt  *time.Time
}

// RestoreAssignment reconstructs an assignment record from persistence.
func RestoreAssignment(
	agentID *kernel.UUID,
	status AssignmentStatus,
	assignedAt *time.Time,
	assignedBy *kernel.UUID,
	acceptedAt *time.Time,
	rejectedAt *time.Time,
	rejectionReason string,
	reachedBuyerAt *time.Time,
) (Assignment, error) {
	if err := status.Validate(); err != nil {
		return Assignment{}, err
	}
	if status != AssignmentUnassigned && agentID == nil {
		return Assignment{}, errs.NewValueIsRequiredError("assignment agentID")
	}
	if status == AssignmentUnassigned && agentID != nil {
		return Assignment{}, errs.NewValueIsInvalidError("unassigned order cannot reference an agent")
	}
	return Assignment{
		agentID:         agentID,
		status:          status,
		assignedAt:      assignedAt,
		assignedBy:      assignedBy,
		acceptedAt:      acceptedAt,
		rejectedAt:      rejectedAt,
		rejectionReason: rejectionReason,
		reachedBuyerAt:  reachedBuyerAt,
	}, nil
}

// AgentID returns the bound agent, nil when unassigned.
func (a Assignment) AgentID() *kernel.UUID { return a.agentID }

// Status returns the binding sub-state.
func (a Assignment) Status() AssignmentStatus { return a.status }

// AssignedAt returns when the binding was made.
func (a Assignment) AssignedAt() *time.Time { return a.assignedAt }

// AssignedBy returns the admin that made the binding.
func (a Assignment) AssignedBy() *kernel.UUID { return a.assignedBy }

// AcceptedAt returns when the agent accepted, nil otherwise.
func (a Assignment) AcceptedAt() *time.Time { return a.acceptedAt }

// RejectedAt returns when the last rejection happened, nil if never rejected.
func (a Assignment) RejectedAt() *time.Time { return a.rejectedAt }

// RejectionReason returns the last recorded rejection reason.
func (a Assignment) RejectionReason() string { return a.rejectionReason }

// ReachedBuyerAt returns when the agent reached the buyer's location.
func (a Assignment) ReachedBuyerAt() *time.Time { return a.reachedBuyerAt }

// HasAgent reports whether an agent is currently bound.
func (a Assignment) HasAgent() bool { return a.agentID != nil }

// IsHeldBy reports whether the given agent currently holds the binding.
func (a Assignment) IsHeldBy(agentID kernel.UUID) bool {
	return a.agentID != nil && a.agentID.IsEqual(agentID)
}

// AgentReachedBuyer reports whether the active agent has reached the buyer's
// location; once true, cancellation is refused.
func (a Assignment) AgentReachedBuyer() bool {
	return a.agentID != nil && a.reachedBuyerAt != nil
}

// assign binds an agent. Only an unassigned order can be bound.
func (a Assignment) assign(agentID, adminID kernel.UUID, at time.Time) (Assignment, error) {
	if a.status != AssignmentUnassigned {
		return Assignment{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("order already has a delivery agent (%s)", a.status))
	}
	return Assignment{
		agentID:    &agentID,
		status:     AssignmentAssigned,
		assignedAt: &at,
		assignedBy: &adminID,
		// Previous rejection details are kept for audit.
		rejectedAt:      a.rejectedAt,
		rejectionReason: a.rejectionReason,
	}, nil
}

// accept records the agent's acceptance of a fresh binding.
func (a Assignment) accept(at time.Time) (Assignment, error) {
	if a.status != AssignmentAssigned {
		return Assignment{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("assignment cannot be accepted while %s", a.status))
	}
	next := a
	next.status = AssignmentAccepted
	next.acceptedAt = &at
	return next, nil
}

// reject resets the binding to unassigned, keeping the rejection details so
// the order becomes assignable again.
func (a Assignment) reject(reason string, at time.Time) (Assignment, error) {
	if a.status != AssignmentAssigned && a.status != AssignmentAccepted {
		return Assignment{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("assignment cannot be rejected while %s", a.status))
	}
	return Assignment{
		status:          AssignmentUnassigned,
		rejectedAt:      &at,
		rejectionReason: reason,
	}, nil
}

// recordArrival marks that the agent reached the buyer's location.
func (a Assignment) recordArrival(at time.Time) (Assignment, error) {
	if a.status != AssignmentAccepted && a.status != AssignmentPickupCompleted {
		return Assignment{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("agent arrival cannot be recorded while %s", a.status))
	}
	next := a
	next.reachedBuyerAt = &at
	return next, nil
}

// completePickup records pickup; entered when the order goes out for delivery.
func (a Assignment) completePickup() (Assignment, error) {
	if a.status != AssignmentAccepted {
		return Assignment{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("pickup cannot be completed while %s", a.status))
	}
	next := a
	next.status = AssignmentPickupCompleted
	return next, nil
}

// completeDelivery records hand-over to the buyer.
func (a Assignment) completeDelivery() (Assignment, error) {
	if a.status != AssignmentPickupCompleted {
		return Assignment{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("delivery cannot be completed while %s", a.status))
	}
	next := a
	next.status = AssignmentDeliveryCompleted
	return next, nil
}
