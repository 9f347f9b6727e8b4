package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

func TestBulkAssignCommandHandler_Handle_MixedBatchReportsUnion(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()
	approved := assignableOrder("ORD-000030", adminID)
	unapproved := placedOrder("ORD-000031")
	courier := availableAgent()

	cmd, err := commands.NewBulkAssignCommand(
		[]kernel.UUID{approved.ID(), unapproved.ID()}, courier.ID(), adminID, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	// One unit of work per order plus the upfront eligibility check; the
	// second order's refusal must not touch the first one's outcome.
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AgentRepository").Return(agentRepo)

	agentRepo.On("Get", ctx, courier.ID()).Return(courier, nil)
	agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.DeliveryAgent")).Return(nil)
	orderRepo.On("Get", ctx, approved.ID()).Return(approved, nil).Once()
	orderRepo.On("Get", ctx, unapproved.ID()).Return(unapproved, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	notifier := &recordingNotifier{}
	handler := commands.NewBulkAssignCommandHandler(factory, testEvents(notifier))
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{approved.ID()}, result.Assigned)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, unapproved.ID(), result.Failed[0].OrderID)
	assert.NotEmpty(t, result.Failed[0].Reason)

	assert.Equal(t, order.PickupReady, approved.Status())
	assert.Equal(t, order.Pending, unapproved.Status())
	assert.True(t, courier.HasOrder(approved.ID()))
	assert.False(t, courier.HasOrder(unapproved.ID()))
	assert.Contains(t, notifier.eventTypes(), commands.EventOrderAssigned)
}

func TestBulkAssignCommandHandler_Handle_UnavailableAgentFailsWholeBatch(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()
	o := assignableOrder("ORD-000032", adminID)
	courier := availableAgent()
	require.NoError(t, courier.MarkOffline())

	cmd, err := commands.NewBulkAssignCommand([]kernel.UUID{o.ID()}, courier.ID(), adminID, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Get", ctx, courier.ID()).Return(courier, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewBulkAssignCommandHandler(factory, testEvents(&recordingNotifier{}))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	orderRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestBulkAssignCommandHandler_Handle_AgentAccumulatesWholeBatch(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()
	first := assignableOrder("ORD-000033", adminID)
	second := assignableOrder("ORD-000034", adminID)
	courier := availableAgent()

	cmd, err := commands.NewBulkAssignCommand(
		[]kernel.UUID{first.ID(), second.ID()}, courier.ID(), adminID, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AgentRepository").Return(agentRepo)

	agentRepo.On("Get", ctx, courier.ID()).Return(courier, nil)
	agentRepo.On("Update", ctx, mock.Anything).Return(nil)
	orderRepo.On("Get", ctx, first.ID()).Return(first, nil).Once()
	orderRepo.On("Get", ctx, second.ID()).Return(second, nil).Once()
	orderRepo.On("Update", ctx, mock.Anything).Return(nil)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewBulkAssignCommandHandler(factory, testEvents(&recordingNotifier{}))
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Len(t, result.Assigned, 2)
	assert.Empty(t, result.Failed)
	// Already holding the first order does not make the agent refuse the rest.
	assert.True(t, courier.HasOrder(first.ID()))
	assert.True(t, courier.HasOrder(second.ID()))
}

func TestNewBulkAssignCommand_RequiresOrderIDs(t *testing.T) {
	_, err := commands.NewBulkAssignCommand(nil, kernel.NewUUID(), kernel.NewUUID(), "")

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestBulkAssignCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.BulkAssignCommand

	err := cmd.Validate()

	assert.ErrorIs(t, err, commands.ErrBulkAssignCommandIsNotConstructed)
}
