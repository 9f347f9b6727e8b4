package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Reserves an order number, reserves inventory with the inventory service,
// and persists the order in Pending status with a pending approval that
// auto-approves after the configured window.
type CreateOrderCommandHandler struct {
	uowFactory     OrderUoWFactory
	inventory      ports.InventoryService
	events         OrderEvents
	approvalWindow time.Duration
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// approvalWindow is how long a seller has to approve before the sweep
// auto-approves the order.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	inventory ports.InventoryService,
	events OrderEvents,
	approvalWindow time.Duration,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:     uowFactory,
		inventory:      inventory,
		events:         events,
		approvalWindow: approvalWindow,
	}
}

// Handle processes the order placement command.
// Inventory is reserved before the order row is written: a reservation
// failure aborts the whole placement. The created order snapshot is
// returned after the transaction commits.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	orderNumber, err := orderRepo.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	placed, err := order.NewOrder(
		cmd.OrderID(),
		orderNumber,
		cmd.BuyerID(),
		cmd.SellerID(),
		cmd.Items(),
		cmd.ShippingAddress(),
		cmd.PaymentMethod(),
		now.Add(h.approvalWindow),
		cmd.EstimatedDeliveryAt(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = h.inventory.Reserve(ctx, orderNumber, placed.Items()); err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.Emit(ctx, placed, EventOrderCreated, map[string]any{
		"buyerId":  placed.BuyerID().String(),
		"sellerId": placed.SellerID().String(),
	})

	return placed, nil
}
