package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// InventoryService reserves stock at order creation and releases it on
// cancellation. Both calls must be idempotent per order: releasing twice for
// the same order is a no-op on the inventory side.
type InventoryService interface {
	Reserve(ctx context.Context, orderNumber string, items []order.Item) error
	Release(ctx context.Context, orderNumber string, items []order.Item) error
}

// InvoiceService generates the invoice document when an order is delivered.
// The call is best-effort: a failure is logged and never rolls back the
// committed transition.
type InvoiceService interface {
	Generate(ctx context.Context, o *order.Order) (string, error)
}

// EventPublisher pushes committed order events to the message bus for
// downstream consumers. Best-effort; failures are logged, never retried here.
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload any) error
}
