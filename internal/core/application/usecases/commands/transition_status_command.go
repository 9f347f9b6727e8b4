package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionStatusCommandIsNotConstructed = errors.New(
	"TransitionStatusCommand must be created via NewTransitionStatusCommand constructor",
)

// TransitionStatusCommand represents a request to move an order to the next
// status in its lifecycle. The acting party is carried so the aggregate can
// enforce role gating.
type TransitionStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	next    order.Status
	actor   kernel.Actor
	notes   string

	guard guard.ConstructorGuard
}

// NewTransitionStatusCommand creates a command to apply one status transition.
// Notes are optional and recorded in the order's status history.
func NewTransitionStatusCommand(
	orderID kernel.UUID,
	next order.Status,
	actor kernel.Actor,
	notes string,
) (TransitionStatusCommand, error) {
	cmd := TransitionStatusCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNext(next),
		cmd.setActor(actor),
	); err != nil {
		return TransitionStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Next returns the requested target status.
func (c TransitionStatusCommand) Next() order.Status { return c.next }

// Actor returns the party requesting the transition.
func (c TransitionStatusCommand) Actor() kernel.Actor { return c.actor }

// Notes returns the optional history notes.
func (c TransitionStatusCommand) Notes() string { return c.notes }

func (c *TransitionStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionStatusCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	c.next = next
	return nil
}

func (c *TransitionStatusCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
