package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Update performs an optimistic version check: a write against a stale
// aggregate returns a ConflictError so the caller can retry on fresh state.
type OrderRepository interface {
	// Add persists a new order aggregate. A duplicate order number surfaces
	// as a ConflictError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order, verifying the version
	// loaded with the aggregate. Losing the version race returns ConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-readable number.
	GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetDueForAutoApproval retrieves orders with a pending approval whose
	// deadline elapsed and that are not cancelled. Used by the sweep.
	GetDueForAutoApproval(ctx context.Context, now time.Time) ([]*order.Order, error)

	// NextOrderNumber reserves the next value of the order number sequence.
	NextOrderNumber(ctx context.Context) (string, error)
}
