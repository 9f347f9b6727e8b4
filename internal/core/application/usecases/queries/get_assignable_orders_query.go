package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetAssignableOrdersQueryIsNotConstructed = errors.New(
		"GetAssignableOrdersQuery must be created via NewGetAssignableOrdersQuery constructor",
	)
)

// GetAssignableOrdersQuery retrieves orders ready for agent assignment:
// approved (by an admin or the sweep), not yet bound to an agent, and not in
// a terminal status. This is the admin's work queue for dispatching agents.
//
// Example:
//
//	query := NewGetAssignableOrdersQuery()
//	handler := NewGetAssignableOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get assignable orders: %w", err)
//	}
//	for _, o := range orders {
//	    fmt.Printf("%s waiting since %s\n", o.OrderNumber, o.CreatedAt)
//	}
type GetAssignableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAssignableOrdersQuery creates a parameterless assignable-orders query.
func NewGetAssignableOrdersQuery() GetAssignableOrdersQuery {
	return GetAssignableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAssignableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignableOrdersQueryIsNotConstructed)
}

// GetAssignableOrdersQueryResponse is one row of the admin dispatch queue.
type GetAssignableOrdersQueryResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	SellerID       kernel.UUID
	Status         string
	ApprovalStatus string
	CreatedAt      time.Time
}
