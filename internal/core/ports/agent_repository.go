// Package ports defines the contracts between the application core and the
// infrastructure adapters: repositories, the unit of work, and the external
// collaborators invoked as side effects of the order workflow.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for delivery agent
// aggregates. Like orders, agents carry an optimistic version checked on
// Update.
type AgentRepository interface {
	// Add persists a new delivery agent aggregate.
	Add(ctx context.Context, aggregate *agent.DeliveryAgent) error

	// Update persists changes to an existing agent, verifying the loaded
	// version. Losing the version race returns ConflictError.
	Update(ctx context.Context, aggregate *agent.DeliveryAgent) error

	// Get retrieves a delivery agent aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error)
}
