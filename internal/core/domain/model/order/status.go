package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with a fixed transition graph:
//
//	Pending ──> Processing ──> Pickup_Ready ──> Out_for_Delivery ──> Delivered
//	   │             │               │                  │
//	   └─────────────┴───────────────┴──────────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal; no edges leave them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status after checkout succeeds and inventory
	// is reserved. The order awaits seller processing and admin approval.
	Pending

	// Processing indicates the seller has accepted the order for fulfillment.
	Processing

	// PickupReady indicates the order is packed and bound to a delivery
	// agent, awaiting pickup.
	PickupReady

	// OutForDelivery indicates the agent has picked the order up and is
	// en route to the buyer.
	OutForDelivery

	// Delivered is a terminal status: the buyer received the order.
	Delivered

	// Cancelled is a terminal status: the order was cancelled and its
	// inventory released.
	Cancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Processing:     "Processing",
		PickupReady:    "Pickup_Ready",
		OutForDelivery: "Out_for_Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// transitions is the legal edge set; no other edges are permitted.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Processing, Cancelled},
		Processing:     {PickupReady, Cancelled},
		PickupReady:    {OutForDelivery, Cancelled},
		OutForDelivery: {Delivered, Cancelled},
		Delivered:      {},
		Cancelled:      {},
	}
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks the Status is one of the defined workflow states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsRequiredError("status")
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no transitions leave this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the edge s -> next exists in the graph.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns the next status if the edge is legal, or an
// InvalidTransitionError otherwise. It performs no side effects; the Order
// aggregate applies the result and records history.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), next.String())
	}
	return next, nil
}
