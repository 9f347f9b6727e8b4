// Package queries contains the read side of the application: thin raw-SQL
// read models over the orders and agents tables. Queries bypass the domain
// model and the unit of work on purpose; they never mutate state.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderByNumberQueryIsNotConstructed = errors.New(
		"GetOrderByNumberQuery must be created via NewGetOrderByNumberQuery constructor",
	)
)

// GetOrderByNumberQuery looks an order up by its human-readable number.
//
// Example:
//
//	query, err := NewGetOrderByNumberQuery("ORD-000042")
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderByNumberQueryHandler(db)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", view.OrderNumber, view.Status)
type GetOrderByNumberQuery struct {
	orderNumber string

	guard guard.ConstructorGuard
}

// NewGetOrderByNumberQuery creates a lookup query for the given order number.
func NewGetOrderByNumberQuery(orderNumber string) (GetOrderByNumberQuery, error) {
	if orderNumber == "" {
		return GetOrderByNumberQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}
	return GetOrderByNumberQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// OrderNumber returns the number being looked up.
func (q GetOrderByNumberQuery) OrderNumber() string {
	return q.orderNumber
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByNumberQueryIsNotConstructed)
}

// GetOrderByNumberQueryResponse is the flat order view served to clients.
// Assignment and delivery fields are nil until the corresponding stage is
// reached.
type GetOrderByNumberQueryResponse struct {
	ID                  kernel.UUID
	OrderNumber         string
	BuyerID             kernel.UUID
	SellerID            kernel.UUID
	Status              string
	ApprovalStatus      string
	AutoApprovalAt      time.Time
	AssignmentStatus    string
	AgentID             *kernel.UUID
	IsPaid              bool
	PaymentStatus       string
	CreatedAt           time.Time
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time
	Version             int64
}
