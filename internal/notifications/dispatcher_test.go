package notifications

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
)

var errChannelClosed = errors.New("channel closed")

func testDispatcher(t *testing.T) (*Dispatcher, *Registry, *bytes.Buffer) {
	t.Helper()
	registry := NewRegistry(allowAllAuthorizer{})
	var sink bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&sink, nil))
	return NewDispatcher(registry, logger), registry, &sink
}

func Test_Dispatcher_Emit_DeliversToEveryChannelOfAudience(t *testing.T) {
	// Arrange
	dispatcher, registry, _ := testDispatcher(t)
	buyerID := kernel.NewUUID()
	first := &fakeChannel{}
	second := &fakeChannel{}
	require.NoError(t, registry.Join(context.Background(), kernel.RoleBuyer, buyerID, first))
	require.NoError(t, registry.Join(context.Background(), kernel.RoleBuyer, buyerID, second))

	event := Event{Type: "order.created", OrderNumber: "ORD-000042"}

	// Act
	dispatcher.Emit(context.Background(), kernel.RoleBuyer, buyerID, event)

	// Assert
	require.Len(t, first.sent, 1)
	require.Len(t, second.sent, 1)
	assert.Equal(t, event, first.sent[0])
}

func Test_Dispatcher_Emit_UnregisteredAudienceIsSilentlyDropped(t *testing.T) {
	dispatcher, _, sink := testDispatcher(t)

	assert.NotPanics(t, func() {
		dispatcher.Emit(context.Background(), kernel.RoleSeller, kernel.NewUUID(), Event{Type: "order.created"})
	})
	assert.Empty(t, sink.String())
}

func Test_Dispatcher_Emit_FailingChannelDoesNotAffectOthers(t *testing.T) {
	// Arrange
	dispatcher, registry, sink := testDispatcher(t)
	agentID := kernel.NewUUID()
	broken := &fakeChannel{err: errChannelClosed}
	healthy := &fakeChannel{}
	require.NoError(t, registry.Join(context.Background(), kernel.RoleDeliveryAgent, agentID, broken))
	require.NoError(t, registry.Join(context.Background(), kernel.RoleDeliveryAgent, agentID, healthy))

	// Act
	dispatcher.Emit(context.Background(), kernel.RoleDeliveryAgent, agentID, Event{Type: "order.assigned"})

	// Assert
	require.Len(t, healthy.sent, 1)
	assert.Contains(t, sink.String(), "notification delivery failed")
	assert.Contains(t, sink.String(), errChannelClosed.Error())
}

func Test_Dispatcher_Broadcast_ReachesEveryIdentityOfRole(t *testing.T) {
	// Arrange
	dispatcher, registry, _ := testDispatcher(t)
	first := &fakeChannel{}
	second := &fakeChannel{}
	buyer := &fakeChannel{}
	require.NoError(t, registry.Join(context.Background(), kernel.RoleAdmin, kernel.NewUUID(), first))
	require.NoError(t, registry.Join(context.Background(), kernel.RoleAdmin, kernel.NewUUID(), second))
	require.NoError(t, registry.Join(context.Background(), kernel.RoleBuyer, kernel.NewUUID(), buyer))

	// Act
	dispatcher.Broadcast(context.Background(), kernel.RoleAdmin, Event{Type: "order.cancelled"})

	// Assert
	assert.Len(t, first.sent, 1)
	assert.Len(t, second.sent, 1)
	assert.Empty(t, buyer.sent)
}
