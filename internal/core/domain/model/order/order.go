package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrAgentReachedBuyer refuses cancellation once the assigned agent has
	// reached the buyer's location. Deliberately distinct from an invalid
	// transition: the Cancelled edge may exist in the graph, but the domain
	// forbids it at the door.
	ErrAgentReachedBuyer = errors.New("order cannot be cancelled after the delivery agent has reached the buyer")
)

// PaymentStatus is the payment state reported by the payment collaborator.
// The engine reads it but never drives the payment workflow.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Cancellation records who cancelled the order, when, and why.
// Set exactly once, only when the order reaches Cancelled.
type Cancellation struct {
	by     kernel.Actor
	at     time.Time
	reason string
}

// RestoreCancellation reconstructs a cancellation record from persistence.
func RestoreCancellation(by kernel.Actor, at time.Time, reason string) Cancellation {
	return Cancellation{by: by, at: at, reason: reason}
}

// By returns the cancelling actor.
func (c Cancellation) By() kernel.Actor { return c.by }

// At returns the cancellation time.
func (c Cancellation) At() time.Time { return c.at }

// Reason returns the cancellation reason.
func (c Cancellation) Reason() string { return c.reason }

// Order is the aggregate root for one purchase and its fulfillment state.
// All mutation goes through validated methods that enforce the transition
// graph, role gates, and the assignment/approval invariants. Rejected
// operations leave the aggregate untouched.
type Order struct {
	id           kernel.UUID
	orderNumber  string
	buyerID      kernel.UUID
	sellerID     kernel.UUID
	items        []Item
	shippingAddr string
	payMethod    string

	status  Status
	history []HistoryEntry

	assignment   Assignment
	approval     Approval
	cancellation *Cancellation

	isPaid        bool
	paymentStatus PaymentStatus

	createdAt           time.Time
	estimatedDeliveryAt *time.Time
	deliveredAt         *time.Time

	// version is the optimistic-concurrency etag owned by the storage layer.
	version int64

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Pending status with a pending approval record
// and the creation history entry. Call it only after checkout succeeded and
// inventory was reserved.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	items []Item,
	shippingAddress string,
	paymentMethod string,
	autoApprovalAt time.Time,
	estimatedDeliveryAt *time.Time,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		validateID("order id", id),
		validateID("buyerId", buyerID),
		validateID("sellerId", sellerID),
		validateOrderNumber(orderNumber),
		validateItems(items),
		validateRequiredString("shippingAddress", shippingAddress),
		validateRequiredString("paymentMethod", paymentMethod),
	); err != nil {
		return nil, err
	}

	buyer, err := kernel.NewActor(kernel.RoleBuyer, buyerID)
	if err != nil {
		return nil, err
	}

	o := &Order{
		id:                  id,
		orderNumber:         orderNumber,
		buyerID:             buyerID,
		sellerID:            sellerID,
		items:               append([]Item(nil), items...),
		shippingAddr:        shippingAddress,
		payMethod:           paymentMethod,
		status:              Pending,
		approval:            NewPendingApproval(autoApprovalAt),
		paymentStatus:       PaymentPending,
		createdAt:           now,
		estimatedDeliveryAt: estimatedDeliveryAt,
		guard:               guard.NewConstructorGuard(),
	}
	o.history = append(o.history, HistoryEntry{
		status: Pending,
		actor:  buyer,
		at:     now,
		notes:  "order placed",
	})
	return o, nil
}

// RestoreOrderParams carries the persisted state for rehydration.
type RestoreOrderParams struct {
	ID                  kernel.UUID
	OrderNumber         string
	BuyerID             kernel.UUID
	SellerID            kernel.UUID
	Items               []Item
	ShippingAddress     string
	PaymentMethod       string
	Status              Status
	History             []HistoryEntry
	Assignment          Assignment
	Approval            Approval
	Cancellation        *Cancellation
	IsPaid              bool
	PaymentStatus       PaymentStatus
	CreatedAt           time.Time
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time
	Version             int64
}

// RestoreOrder reconstructs an order aggregate from persistence.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		validateID("order id", p.ID),
		validateID("buyerId", p.BuyerID),
		validateID("sellerId", p.SellerID),
		validateOrderNumber(p.OrderNumber),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if len(p.History) == 0 {
		return nil, errs.NewValueIsRequiredError("statusHistory")
	}

	return &Order{
		id:                  p.ID,
		orderNumber:         p.OrderNumber,
		buyerID:             p.BuyerID,
		sellerID:            p.SellerID,
		items:               append([]Item(nil), p.Items...),
		shippingAddr:        p.ShippingAddress,
		payMethod:           p.PaymentMethod,
		status:              p.Status,
		history:             append([]HistoryEntry(nil), p.History...),
		assignment:          p.Assignment,
		approval:            p.Approval,
		cancellation:        p.Cancellation,
		isPaid:              p.IsPaid,
		paymentStatus:       p.PaymentStatus,
		createdAt:           p.CreatedAt,
		estimatedDeliveryAt: p.EstimatedDeliveryAt,
		deliveredAt:         p.DeliveredAt,
		version:             p.Version,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was built through a constructor.
// Called when reconstructing orders from persistence and before writes.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the human-readable sequence key, immutable once assigned.
func (o *Order) OrderNumber() string { return o.orderNumber }

// BuyerID returns the buyer that owns the order.
func (o *Order) BuyerID() kernel.UUID { return o.buyerID }

// SellerID returns the seller fulfilling the items.
func (o *Order) SellerID() kernel.UUID { return o.sellerID }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item { return append([]Item(nil), o.items...) }

// ShippingAddress returns the delivery address.
func (o *Order) ShippingAddress() string { return o.shippingAddr }

// PaymentMethod returns the payment method chosen at checkout.
func (o *Order) PaymentMethod() string { return o.payMethod }

// Status returns the current workflow status.
func (o *Order) Status() Status { return o.status }

// History returns a copy of the append-only status history.
func (o *Order) History() []HistoryEntry { return append([]HistoryEntry(nil), o.history...) }

// Assignment returns the delivery-agent binding.
func (o *Order) Assignment() Assignment { return o.assignment }

// Approval returns the admin approval record.
func (o *Order) Approval() Approval { return o.approval }

// Cancellation returns the cancellation record, nil unless Cancelled.
func (o *Order) Cancellation() *Cancellation {
	if o.cancellation == nil {
		return nil
	}
	c := *o.cancellation
	return &c
}

// IsPaid reports whether payment completed.
func (o *Order) IsPaid() bool { return o.isPaid }

// PaymentStatus returns the payment collaborator's last reported state.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// CreatedAt returns the order placement time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// EstimatedDeliveryAt returns the promised delivery time, if any.
func (o *Order) EstimatedDeliveryAt() *time.Time { return o.estimatedDeliveryAt }

// DeliveredAt returns the actual delivery time, nil until Delivered.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// Version returns the optimistic-concurrency version loaded from storage.
func (o *Order) Version() int64 { return o.version }

// ActualDeliveryDuration returns placement-to-delivery time, false until delivered.
func (o *Order) ActualDeliveryDuration() (time.Duration, bool) {
	if o.deliveredAt == nil {
		return 0, false
	}
	return o.deliveredAt.Sub(o.createdAt), true
}

// DeliveryDelay returns actual minus estimated delivery time (negative when
// early), false when either side is unknown.
func (o *Order) DeliveryDelay() (time.Duration, bool) {
	if o.deliveredAt == nil || o.estimatedDeliveryAt == nil {
		return 0, false
	}
	return o.deliveredAt.Sub(*o.estimatedDeliveryAt), true
}

// TransitionTo applies a status change on behalf of an actor. It enforces the
// legal graph, the at-the-door cancellation guard, and role gates; on success
// it updates sub-state (cancellation details, delivery timestamps, assignment
// progression) and appends exactly one history entry. On failure the
// aggregate is unchanged.
func (o *Order) TransitionTo(next Status, actor kernel.Actor, notes string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	if newStatus == Cancelled && o.assignment.AgentReachedBuyer() {
		return ErrAgentReachedBuyer
	}

	if err = o.authorizeTransition(actor, newStatus); err != nil {
		return err
	}

	// Assignment progression is validated before committing anything so a
	// failure leaves the aggregate untouched.
	assignment := o.assignment
	switch newStatus {
	case OutForDelivery:
		if assignment, err = o.assignment.completePickup(); err != nil {
			return err
		}
	case Delivered:
		if o.assignment.HasAgent() {
			if assignment, err = o.assignment.completeDelivery(); err != nil {
				return err
			}
		}
	}

	o.status = newStatus
	o.assignment = assignment
	switch newStatus {
	case Cancelled:
		o.cancellation = &Cancellation{by: actor, at: now, reason: notes}
	case Delivered:
		at := now
		o.deliveredAt = &at
	}
	o.appendHistory(newStatus, actor, now, notes)
	return nil
}

// Approve grants admin approval without changing the workflow status.
func (o *Order) Approve(adminID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := adminID.Validate(); err != nil {
		return err
	}
	approval, err := o.approval.approve(adminID, now)
	if err != nil {
		return err
	}
	o.approval = approval
	return nil
}

// RejectApproval refuses admin approval; the order stays unassignable.
func (o *Order) RejectApproval(adminID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := adminID.Validate(); err != nil {
		return err
	}
	approval, err := o.approval.reject(adminID, now)
	if err != nil {
		return err
	}
	o.approval = approval
	return nil
}

// AutoApprove promotes a due pending approval. It reports whether a change
// was made; calling it on an already-decided order is a no-op, which keeps
// the auto-approval sweep idempotent.
func (o *Order) AutoApprove(now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if o.status == Cancelled {
		return false, nil
	}
	if !o.approval.IsDue(now) {
		return false, nil
	}
	approval, changed := o.approval.autoApprove(now)
	o.approval = approval
	return changed, nil
}

// Assign binds a delivery agent on behalf of an admin. Preconditions: the
// approval is granted and the order has no agent. The workflow status is
// advanced to Pickup_Ready through the regular transition rules (a Pending
// order passes through Processing); when the order is already Pickup_Ready
// after an agent rejection, only the binding is renewed.
func (o *Order) Assign(agentID, adminID kernel.UUID, notes string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := errors.Join(agentID.Validate(), adminID.Validate()); err != nil {
		return err
	}
	if !o.approval.IsGranted() {
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("order approval is %s; assignment requires approval", o.approval.Status()))
	}
	if o.assignment.Status() != AssignmentUnassigned {
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("order already has a delivery agent (%s)", o.assignment.Status()))
	}

	admin, err := kernel.NewActor(kernel.RoleAdmin, adminID)
	if err != nil {
		return err
	}

	assignment, err := o.assignment.assign(agentID, adminID, now)
	if err != nil {
		return err
	}

	// Snapshot for rollback: the status advance below appends history, and a
	// later failure must not leave a half-applied assignment.
	prevStatus, prevHistoryLen := o.status, len(o.history)

	if o.status == Pending {
		if err = o.TransitionTo(Processing, admin, "accepted for fulfillment", now); err != nil {
			return err
		}
	}
	if o.status == Processing {
		if err = o.TransitionTo(PickupReady, admin, notes, now); err != nil {
			o.status, o.history = prevStatus, o.history[:prevHistoryLen]
			return err
		}
	}
	if o.status != PickupReady {
		o.status, o.history = prevStatus, o.history[:prevHistoryLen]
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("order in status %s cannot be assigned", o.status))
	}

	o.assignment = assignment
	return nil
}

// AcceptAssignment records the agent's acceptance of the binding.
func (o *Order) AcceptAssignment(agentID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.assignment.IsHeldBy(agentID) {
		return errs.NewUnauthorizedError("agent does not hold this order's assignment")
	}
	assignment, err := o.assignment.accept(now)
	if err != nil {
		return err
	}
	o.assignment = assignment
	return nil
}

// RejectAssignment resets the binding to unassigned with the reason recorded,
// freeing the order for a new Assign call. The workflow status is deliberately
// not reverted from Pickup_Ready.
func (o *Order) RejectAssignment(agentID kernel.UUID, reason string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.assignment.IsHeldBy(agentID) {
		return errs.NewUnauthorizedError("agent does not hold this order's assignment")
	}
	assignment, err := o.assignment.reject(reason, now)
	if err != nil {
		return err
	}
	o.assignment = assignment
	return nil
}

// RecordAgentArrival marks that the assigned agent reached the buyer's
// location. From this point cancellation is refused.
func (o *Order) RecordAgentArrival(agentID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.assignment.IsHeldBy(agentID) {
		return errs.NewUnauthorizedError("agent does not hold this order's assignment")
	}
	assignment, err := o.assignment.recordArrival(now)
	if err != nil {
		return err
	}
	o.assignment = assignment
	return nil
}

// MarkPaid records the payment collaborator's completion report.
func (o *Order) MarkPaid(status PaymentStatus) {
	o.isPaid = status == PaymentPaid
	o.paymentStatus = status
}

// authorizeTransition is the role gate: which actor may drive which edge.
//   - admin: any legal transition
//   - buyer: cancel own order
//   - seller: process own order, cancel before pickup
//   - delivery agent: out-for-delivery and delivered on the held assignment
func (o *Order) authorizeTransition(actor kernel.Actor, next Status) error {
	switch actor.Role() {
	case kernel.RoleAdmin:
		return nil
	case kernel.RoleBuyer:
		if !actor.ID().IsEqual(o.buyerID) {
			return errs.NewUnauthorizedError("buyer does not own the order")
		}
		if next != Cancelled {
			return errs.NewUnauthorizedError(fmt.Sprintf("buyer cannot move an order to %s", next))
		}
		return nil
	case kernel.RoleSeller:
		if !actor.ID().IsEqual(o.sellerID) {
			return errs.NewUnauthorizedError("seller does not own the order")
		}
		if next == Processing {
			return nil
		}
		if next == Cancelled && (o.status == Pending || o.status == Processing) {
			return nil
		}
		return errs.NewUnauthorizedError(fmt.Sprintf("seller cannot move a %s order to %s", o.status, next))
	case kernel.RoleDeliveryAgent:
		if !o.assignment.IsHeldBy(actor.ID()) {
			return errs.NewUnauthorizedError("agent does not hold this order's assignment")
		}
		if next == OutForDelivery || next == Delivered {
			return nil
		}
		return errs.NewUnauthorizedError(fmt.Sprintf("delivery agent cannot move an order to %s", next))
	default:
		return errs.NewUnauthorizedError("unknown actor role")
	}
}

func (o *Order) appendHistory(status Status, actor kernel.Actor, at time.Time, notes string) {
	o.history = append(o.history, HistoryEntry{status: status, actor: actor, at: at, notes: notes})
}

func validateID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}

func validateOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	return nil
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("orderItems")
	}
	return nil
}

func validateRequiredString(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
