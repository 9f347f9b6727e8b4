package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a buyer's request to place an order after a
// successful checkout. Carries the order lines and the fulfillment details;
// the order number is reserved by the handler.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), buyerID, sellerID,
//	    items, "12 Harbor Lane, Springfield", "card", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s placed, awaiting approval", placed.OrderNumber())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	buyerID             kernel.UUID
	sellerID            kernel.UUID
	items               []order.Item
	shippingAddress     string
	paymentMethod       string
	estimatedDeliveryAt *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, requires at least one item and non-empty shipping
// address and payment method. estimatedDeliveryAt is optional.
func NewCreateOrderCommand(
	orderID, buyerID, sellerID kernel.UUID,
	items []order.Item,
	shippingAddress, paymentMethod string,
	estimatedDeliveryAt *time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		estimatedDeliveryAt: estimatedDeliveryAt,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setSellerID(sellerID),
		cmd.setItems(items),
		cmd.setShippingAddress(shippingAddress),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// BuyerID returns the identifier of the buyer placing the order.
func (c CreateOrderCommand) BuyerID() kernel.UUID { return c.buyerID }

// SellerID returns the identifier of the seller fulfilling the order.
func (c CreateOrderCommand) SellerID() kernel.UUID { return c.sellerID }

// Items returns the order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

// ShippingAddress returns the delivery destination.
func (c CreateOrderCommand) ShippingAddress() string { return c.shippingAddress }

// PaymentMethod returns the payment method used at checkout.
func (c CreateOrderCommand) PaymentMethod() string { return c.paymentMethod }

// EstimatedDeliveryAt returns the promised delivery time, if any.
func (c CreateOrderCommand) EstimatedDeliveryAt() *time.Time { return c.estimatedDeliveryAt }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyerId", err)
	}
	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}
	c.sellerID = sellerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(shippingAddress string) error {
	if shippingAddress == "" {
		return errs.NewValueIsRequiredError("shippingAddress")
	}
	c.shippingAddress = shippingAddress
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	c.paymentMethod = paymentMethod
	return nil
}
