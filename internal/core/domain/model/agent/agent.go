package agent

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAgentIsNotConstructed is returned when a DeliveryAgent instance was not
// created through NewDeliveryAgent or RestoreDeliveryAgent.
var ErrAgentIsNotConstructed = errors.New("DeliveryAgent must be created via NewDeliveryAgent or RestoreDeliveryAgent")

// Status represents the availability state of a delivery agent.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusAvailable means the agent can take new assignments.
	StatusAvailable

	// StatusAssigned means the agent holds at least one active order.
	StatusAssigned

	// StatusOffline means the agent is not working; no assignments allowed.
	StatusOffline
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusAvailable: "available",
		StatusAssigned:  "assigned",
		StatusOffline:   "offline",
	}
}

// StatusFromString parses an agent status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"agentStatus", fmt.Errorf("%q is not a valid agent status", s))
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsRequiredError("agentStatus")
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"agentStatus", fmt.Errorf("%d is not a valid agent status", s))
	}
	return nil
}

// DeliveryAgent is the external party executing pickups and deliveries.
// The Assignment Coordinator mutates this record in lockstep with the order
// aggregate: an order is never assigned without the agent recording it, and
// vice versa.
//
// Capacity model: assignedOrders is authoritative and may hold several orders
// (bulk assignment); currentOrder points at the most recently assigned order
// still in flight.
type DeliveryAgent struct {
	id             kernel.UUID
	name           string
	isActive       bool
	status         Status
	currentOrder   *kernel.UUID
	assignedOrders []kernel.UUID
	version        int64
	guard          guard.ConstructorGuard
}

// NewDeliveryAgent registers a new active, available agent.
func NewDeliveryAgent(id kernel.UUID, name string) (*DeliveryAgent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	return &DeliveryAgent{
		id:       id,
		name:     name,
		isActive: true,
		status:   StatusAvailable,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryAgent reconstructs an agent aggregate from persistence.
func RestoreDeliveryAgent(
	id kernel.UUID,
	name string,
	isActive bool,
	status Status,
	currentOrder *kernel.UUID,
	assignedOrders []kernel.UUID,
	version int64,
) (*DeliveryAgent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return &DeliveryAgent{
		id:             id,
		name:           name,
		isActive:       isActive,
		status:         status,
		currentOrder:   currentOrder,
		assignedOrders: append([]kernel.UUID(nil), assignedOrders...),
		version:        version,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the agent was built through a constructor.
func (a *DeliveryAgent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// ID returns the agent's unique identifier.
func (a *DeliveryAgent) ID() kernel.UUID { return a.id }

// Name returns the agent's display name.
func (a *DeliveryAgent) Name() string { return a.name }

// IsActive reports whether the agent account is enabled.
func (a *DeliveryAgent) IsActive() bool { return a.isActive }

// Status returns the availability state.
func (a *DeliveryAgent) Status() Status { return a.status }

// CurrentOrder returns the most recently assigned in-flight order, nil when idle.
func (a *DeliveryAgent) CurrentOrder() *kernel.UUID {
	if a.currentOrder == nil {
		return nil
	}
	id := *a.currentOrder
	return &id
}

// AssignedOrders returns a copy of the active assignment list.
func (a *DeliveryAgent) AssignedOrders() []kernel.UUID {
	return append([]kernel.UUID(nil), a.assignedOrders...)
}

// Version returns the optimistic-concurrency version loaded from storage.
func (a *DeliveryAgent) Version() int64 { return a.version }

// IsAssignable reports whether a fresh single assignment may target this
// agent: the account is active and the agent is available.
func (a *DeliveryAgent) IsAssignable() bool {
	return a.isActive && a.status == StatusAvailable
}

// HasOrder reports whether the order is in the active assignment list.
func (a *DeliveryAgent) HasOrder(orderID kernel.UUID) bool {
	for _, id := range a.assignedOrders {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// Assign records an order on the agent. Availability preconditions are
// checked by the coordinator (single assignment requires an available agent;
// bulk assignment checks eligibility once up front), so this method only
// guards against inactive/offline agents and duplicates.
func (a *DeliveryAgent) Assign(orderID kernel.UUID) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !a.isActive {
		return errs.NewPreconditionFailedError("delivery agent account is deactivated")
	}
	if a.status == StatusOffline {
		return errs.NewPreconditionFailedError("delivery agent is offline")
	}
	if a.HasOrder(orderID) {
		return errs.NewPreconditionFailedError("order is already assigned to this agent")
	}

	a.assignedOrders = append(a.assignedOrders, orderID)
	id := orderID
	a.currentOrder = &id
	a.status = StatusAssigned
	return nil
}

// Unassign removes an order from the agent (rejection, cancellation, or
// delivery completion). When the last active order is removed the agent
// becomes available again. Removing an unknown order is a no-op so callers
// stay idempotent.
func (a *DeliveryAgent) Unassign(orderID kernel.UUID) error {
	if err := a.Validate(); err != nil {
		return err
	}

	kept := a.assignedOrders[:0]
	for _, id := range a.assignedOrders {
		if !id.IsEqual(orderID) {
			kept = append(kept, id)
		}
	}
	a.assignedOrders = kept

	if a.currentOrder != nil && a.currentOrder.IsEqual(orderID) {
		a.currentOrder = nil
		if len(a.assignedOrders) > 0 {
			id := a.assignedOrders[len(a.assignedOrders)-1]
			a.currentOrder = &id
		}
	}
	if len(a.assignedOrders) == 0 && a.status == StatusAssigned {
		a.status = StatusAvailable
	}
	return nil
}

// MarkOffline takes the agent off shift. Active assignments are kept; the
// agent simply stops receiving new ones.
func (a *DeliveryAgent) MarkOffline() error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.status = StatusOffline
	return nil
}

// MarkAvailable puts the agent back on shift.
func (a *DeliveryAgent) MarkAvailable() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.isActive {
		return errs.NewPreconditionFailedError("delivery agent account is deactivated")
	}
	if len(a.assignedOrders) > 0 {
		a.status = StatusAssigned
		return nil
	}
	a.status = StatusAvailable
	return nil
}

// Deactivate disables the agent account.
func (a *DeliveryAgent) Deactivate() error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.isActive = false
	return nil
}

// Activate re-enables the agent account.
func (a *DeliveryAgent) Activate() error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.isActive = true
	return nil
}
