package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

func cancelHandler(
	factory commands.UoWFactory,
	inventory *MockInventoryService,
	notifier *recordingNotifier,
) commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		factory, inventory, testEvents(notifier), slog.New(slog.DiscardHandler))
}

func TestCancelOrderCommandHandler_Handle_BuyerCancelsPendingOrder(t *testing.T) {
	ctx := t.Context()
	o := placedOrder("ORD-000010")
	buyer := actorOf(kernel.RoleBuyer, o.BuyerID())

	cmd, err := commands.NewCancelOrderCommand(o.ID(), buyer, "changed my mind")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	inventory := new(MockInventoryService)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		inventory.On("Release", ctx, "ORD-000010", mock.AnythingOfType("[]order.Item")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := cancelHandler(factory, inventory, notifier)
	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	require.NotNil(t, cancelled.Cancellation())
	assert.Equal(t, "changed my mind", cancelled.Cancellation().Reason())
	assert.Equal(t, buyer, cancelled.Cancellation().By())
	assert.Contains(t, notifier.eventTypes(), commands.EventOrderCancelled)

	inventory.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_RefusedOnceAgentReachedBuyer(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	o := inTransitOrder("ORD-000011", agentID)
	require.NoError(t, o.RecordAgentArrival(agentID, time.Now().UTC()))

	buyer := actorOf(kernel.RoleBuyer, o.BuyerID())
	cmd, err := commands.NewCancelOrderCommand(o.ID(), buyer, "too late anyway")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	inventory := new(MockInventoryService)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := cancelHandler(factory, inventory, &recordingNotifier{})
	_, err = handler.Handle(ctx, cmd)

	// The refusal is the dedicated guard, not a graph violation.
	require.ErrorIs(t, err, order.ErrAgentReachedBuyer)
	require.NotErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.OutForDelivery, o.Status())
	inventory.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_AssignedOrderReleasesAgent(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	adminID := kernel.NewUUID()
	o := assignableOrder("ORD-000012", adminID)
	require.NoError(t, o.Assign(agentID, adminID, "", time.Now().UTC()))

	courier := availableAgent()
	require.NoError(t, courier.Assign(o.ID()))

	admin := actorOf(kernel.RoleAdmin, adminID)
	cmd, err := commands.NewCancelOrderCommand(o.ID(), admin, "buyer unreachable")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	inventory := new(MockInventoryService)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Get", ctx, agentID).Return(courier, nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.DeliveryAgent")).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		inventory.On("Release", ctx, "ORD-000012", mock.AnythingOfType("[]order.Item")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := cancelHandler(factory, inventory, &recordingNotifier{})
	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	assert.False(t, courier.HasOrder(o.ID()))
	agentRepo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_ReleaseFailureDoesNotFailCancellation(t *testing.T) {
	ctx := t.Context()
	o := placedOrder("ORD-000013")
	buyer := actorOf(kernel.RoleBuyer, o.BuyerID())

	cmd, err := commands.NewCancelOrderCommand(o.ID(), buyer, "duplicate order")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	inventory := new(MockInventoryService)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	inventory.On("Release", ctx, "ORD-000013", mock.Anything).
		Return(errs.NewCollaboratorFailedError("inventory-service", assert.AnError)).
		Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := cancelHandler(factory, inventory, notifier)
	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	assert.Contains(t, notifier.eventTypes(), commands.EventOrderCancelled)
}

func TestNewCancelOrderCommand_RequiresReason(t *testing.T) {
	buyer := actorOf(kernel.RoleBuyer, kernel.NewUUID())

	_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), buyer, "")

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
