package commands_test

import (
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

func TestApproveOrderCommandHandler_Handle_Approve(t *testing.T) {
	ctx := t.Context()
	o := placedOrder("ORD-000050")
	adminID := kernel.NewUUID()

	cmd, err := commands.NewApproveOrderCommand(o.ID(), adminID, commands.DecisionApprove)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := commands.NewApproveOrderCommandHandler(factory, testEvents(notifier))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ApprovalApproved, updated.Approval().Status())
	require.NotNil(t, updated.Approval().ApprovedBy())
	assert.True(t, updated.Approval().ApprovedBy().IsEqual(adminID))
	assert.Contains(t, notifier.eventTypes(), commands.EventOrderApproved)
}

func TestApproveOrderCommandHandler_Handle_Reject(t *testing.T) {
	ctx := t.Context()
	o := placedOrder("ORD-000051")
	adminID := kernel.NewUUID()

	cmd, err := commands.NewApproveOrderCommand(o.ID(), adminID, commands.DecisionReject)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := commands.NewApproveOrderCommandHandler(factory, testEvents(notifier))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ApprovalRejected, updated.Approval().Status())
	assert.Contains(t, notifier.eventTypes(), commands.EventApprovalRejected)
}

func TestApproveOrderCommandHandler_Handle_SecondDecisionIsRefused(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()
	o := placedOrder("ORD-000052")
	require.NoError(t, o.Approve(adminID, time.Now().UTC()))

	cmd, err := commands.NewApproveOrderCommand(o.ID(), adminID, commands.DecisionReject)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApproveOrderCommandHandler(factory, testEvents(&recordingNotifier{}))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewApproveOrderCommand_UnknownDecisionIsInvalid(t *testing.T) {
	_, err := commands.NewApproveOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), commands.ApprovalDecision("defer"))

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
