package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/notifications"
)

// Event types carried by notifications and the message bus.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderAssigned      = "order.assigned"
	EventAssignmentAccepted = "order.assignment_accepted"
	EventAssignmentRejected = "order.assignment_rejected"
	EventAgentArrived       = "order.agent_arrived"
	EventOrderApproved      = "order.approved"
	EventApprovalRejected   = "order.approval_rejected"
	EventOrderAutoApproved  = "order.auto_approved"
	EventOrderCancelled     = "order.cancelled"
	EventOrderDelivered     = "order.delivered"
)

// Notifier pushes a committed event to live client connections.
// Implemented by notifications.Dispatcher.
type Notifier interface {
	Emit(ctx context.Context, role kernel.Role, id kernel.UUID, event notifications.Event)
	Broadcast(ctx context.Context, role kernel.Role, event notifications.Event)
}

// OrderEvents fans a committed order event out to every interested party:
// the buyer, the seller, the assigned agent when there is one, the admin
// broadcast audience, and the message bus. Fan-out is fire-and-forget and
// runs strictly after the transaction commits; a publish failure is logged
// and never unwinds the command.
type OrderEvents struct {
	notifier  Notifier
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewOrderEvents creates the fan-out helper shared by the command handlers.
func NewOrderEvents(notifier Notifier, publisher ports.EventPublisher, logger *slog.Logger) OrderEvents {
	return OrderEvents{
		notifier:  notifier,
		publisher: publisher,
		logger:    logger.With("component", "order_events"),
	}
}

// Emit delivers the event for the given order to all of its parties.
func (e OrderEvents) Emit(ctx context.Context, o *order.Order, eventType string, payload map[string]any) {
	if payload == nil {
		payload = make(map[string]any)
	}
	payload["status"] = o.Status().String()

	event := notifications.Event{
		Type:        eventType,
		OrderNumber: o.OrderNumber(),
		Payload:     payload,
	}

	e.notifier.Emit(ctx, kernel.RoleBuyer, o.BuyerID(), event)
	e.notifier.Emit(ctx, kernel.RoleSeller, o.SellerID(), event)
	if agentID := o.Assignment().AgentID(); agentID != nil {
		e.notifier.Emit(ctx, kernel.RoleDeliveryAgent, *agentID, event)
	}
	e.notifier.Broadcast(ctx, kernel.RoleAdmin, event)

	if err := e.publisher.Publish(ctx, o.OrderNumber(), event); err != nil {
		e.logger.WarnContext(ctx, "event publish failed",
			"event", eventType,
			"orderNumber", o.OrderNumber(),
			"error", err,
		)
	}
}
