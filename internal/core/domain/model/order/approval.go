package order

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ApprovalStatus represents the admin approval sub-state of an order.
type ApprovalStatus int

const (
	// ApprovalUnknown represents an invalid or undefined approval status.
	ApprovalUnknown ApprovalStatus = iota

	// ApprovalPending awaits an admin decision or the auto-approval deadline.
	ApprovalPending

	// ApprovalApproved was granted explicitly by an admin.
	ApprovalApproved

	// ApprovalRejected was refused by an admin; the order cannot be assigned.
	ApprovalRejected

	// ApprovalAutoApproved was granted by the sweep after the deadline elapsed.
	ApprovalAutoApproved
)

func approvalStatusStrings() map[ApprovalStatus]string {
	return map[ApprovalStatus]string{
		ApprovalUnknown:      "unknown",
		ApprovalPending:      "pending",
		ApprovalApproved:     "approved",
		ApprovalRejected:     "rejected",
		ApprovalAutoApproved: "auto_approved",
	}
}

// ApprovalStatusFromString parses an approval status from its wire representation.
func ApprovalStatusFromString(s string) (ApprovalStatus, error) {
	for status, str := range approvalStatusStrings() {
		if status != ApprovalUnknown && str == s {
			return status, nil
		}
	}
	return ApprovalUnknown, errs.NewValueIsInvalidErrorWithCause(
		"approvalStatus", fmt.Errorf("%q is not a valid approval status", s))
}

// String returns the wire representation of the approval status.
func (s ApprovalStatus) String() string {
	if str, ok := approvalStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects ApprovalUnknown and out-of-range values.
func (s ApprovalStatus) Validate() error {
	if s == ApprovalUnknown {
		return errs.NewValueIsRequiredError("approvalStatus")
	}
	if _, ok := approvalStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"approvalStatus", fmt.Errorf("%d is not a valid approval status", s))
	}
	return nil
}

// Approval is the admin approval record of an order: the decision state,
// who made it and when, and the deadline after which the auto-approval sweep
// promotes a still-pending order.
type Approval struct {
	status         ApprovalStatus
	approvedBy     *kernel.UUID
	approvedAt     *time.Time
	autoApprovalAt time.Time
}

// NewPendingApproval creates the initial approval record with the given
// auto-approval deadline.
func NewPendingApproval(autoApprovalAt time.Time) Approval {
	return Approval{
		status:         ApprovalPending,
		autoApprovalAt: autoApprovalAt,
	}
}

// RestoreApproval reconstructs an approval record from persistence.
func RestoreApproval(
	status ApprovalStatus,
	approvedBy *kernel.UUID,
	approvedAt *time.Time,
	autoApprovalAt time.Time,
) (Approval, error) {
	if err := status.Validate(); err != nil {
		return Approval{}, err
	}
	return Approval{
		status:         status,
		approvedBy:     approvedBy,
		approvedAt:     approvedAt,
		autoApprovalAt: autoApprovalAt,
	}, nil
}

// Status returns the approval decision state.
func (a Approval) Status() ApprovalStatus { return a.status }

// ApprovedBy returns the admin that decided, nil for pending/auto-approved.
func (a Approval) ApprovedBy() *kernel.UUID { return a.approvedBy }

// ApprovedAt returns the decision time, nil while pending.
func (a Approval) ApprovedAt() *time.Time { return a.approvedAt }

// AutoApprovalAt returns the auto-approval deadline.
func (a Approval) AutoApprovalAt() time.Time { return a.autoApprovalAt }

// IsGranted reports whether assignment is permitted: approved or auto-approved.
func (a Approval) IsGranted() bool {
	return a.status == ApprovalApproved || a.status == ApprovalAutoApproved
}

// IsDue reports whether the auto-approval sweep should promote this record.
func (a Approval) IsDue(now time.Time) bool {
	return a.status == ApprovalPending && !a.autoApprovalAt.After(now)
}

// approve grants approval by an admin. Only a pending record can be decided.
func (a Approval) approve(adminID kernel.UUID, at time.Time) (Approval, error) {
	if a.status != ApprovalPending {
		return Approval{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("approval is already %s", a.status))
	}
	return Approval{
		status:         ApprovalApproved,
		approvedBy:     &adminID,
		approvedAt:     &at,
		autoApprovalAt: a.autoApprovalAt,
	}, nil
}

// reject refuses approval by an admin. Only a pending record can be decided.
func (a Approval) reject(adminID kernel.UUID, at time.Time) (Approval, error) {
	if a.status != ApprovalPending {
		return Approval{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("approval is already %s", a.status))
	}
	return Approval{
		status:         ApprovalRejected,
		approvedBy:     &adminID,
		approvedAt:     &at,
		autoApprovalAt: a.autoApprovalAt,
	}, nil
}

// autoApprove promotes a due pending record. Calling it on an already-decided
// record is a no-op, which keeps the sweep idempotent and re-entrant.
func (a Approval) autoApprove(at time.Time) (Approval, bool) {
	if a.status != ApprovalPending {
		return a, false
	}
	return Approval{
		status:         ApprovalAutoApproved,
		approvedAt:     &at,
		autoApprovalAt: a.autoApprovalAt,
	}, true
}
