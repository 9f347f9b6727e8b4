package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

func TestCreateAgentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()

	cmd, err := commands.NewCreateAgentCommand(agentID, "Riley Park")
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Add", ctx, mock.AnythingOfType("*agent.DeliveryAgent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateAgentCommandHandler(factory)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, created.ID().IsEqual(agentID))
	assert.Equal(t, agent.StatusAvailable, created.Status())
	assert.True(t, created.IsAssignable())

	agentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateAgentCommandHandler_Handle_DuplicateSurfacesConflict(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()

	cmd, err := commands.NewCreateAgentCommand(agentID, "Riley Park")
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Add", ctx, mock.Anything).
			Return(errs.NewConflictError("agent", agentID)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateAgentCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewCreateAgentCommand_RequiresName(t *testing.T) {
	_, err := commands.NewCreateAgentCommand(kernel.NewUUID(), "")

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
