package commands_test

import (
	"context"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/notifications"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDueForAutoApproval(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Add(ctx context.Context, a *agent.DeliveryAgent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, a *agent.DeliveryAgent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.DeliveryAgent), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAgentUoWFactory struct{ mock.Mock }

func (m *MockAgentUoWFactory) Create() commands.AgentUoW {
	args := m.Called()
	return args.Get(0).(commands.AgentUoW)
}

type MockInventoryService struct{ mock.Mock }

func (m *MockInventoryService) Reserve(ctx context.Context, orderNumber string, items []order.Item) error {
	args := m.Called(ctx, orderNumber, items)
	return args.Error(0)
}

func (m *MockInventoryService) Release(ctx context.Context, orderNumber string, items []order.Item) error {
	args := m.Called(ctx, orderNumber, items)
	return args.Error(0)
}

type MockInvoiceService struct{ mock.Mock }

func (m *MockInvoiceService) Generate(ctx context.Context, o *order.Order) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, key string, payload any) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

// recordingNotifier captures fan-out so tests can assert which parties were
// notified without a live registry.
type recordingNotifier struct {
	emitted   []recordedEmit
	broadcast []notifications.Event
}

type recordedEmit struct {
	role  kernel.Role
	id    kernel.UUID
	event notifications.Event
}

func (n *recordingNotifier) Emit(_ context.Context, role kernel.Role, id kernel.UUID, event notifications.Event) {
	n.emitted = append(n.emitted, recordedEmit{role: role, id: id, event: event})
}

func (n *recordingNotifier) Broadcast(_ context.Context, _ kernel.Role, event notifications.Event) {
	n.broadcast = append(n.broadcast, event)
}

func (n *recordingNotifier) eventTypes() []string {
	types := make([]string, 0, len(n.emitted))
	for _, e := range n.emitted {
		types = append(types, e.event.Type)
	}
	return types
}

func testEvents(notifier *recordingNotifier) commands.OrderEvents {
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return commands.NewOrderEvents(notifier, publisher, slog.New(slog.DiscardHandler))
}

func testItems() []order.Item {
	item, _ := order.NewItem(kernel.NewUUID(), 2, 2599, "M", "black")
	return []order.Item{item}
}

// placedOrder builds a freshly created order in Pending status with a
// pending approval one hour out.
func placedOrder(orderNumber string) *order.Order {
	now := time.Now().UTC()
	o, _ := order.NewOrder(
		kernel.NewUUID(), orderNumber, kernel.NewUUID(), kernel.NewUUID(),
		testItems(), "12 Harbor Lane, Springfield", "card",
		now.Add(time.Hour), nil, now,
	)
	return o
}

// assignableOrder builds an approved, unassigned order.
func assignableOrder(orderNumber string, adminID kernel.UUID) *order.Order {
	o := placedOrder(orderNumber)
	if err := o.Approve(adminID, time.Now().UTC()); err != nil {
		panic(err)
	}
	return o
}

// dueOrder builds a Pending order whose approval deadline already elapsed.
func dueOrder(orderNumber string) *order.Order {
	now := time.Now().UTC()
	o, _ := order.NewOrder(
		kernel.NewUUID(), orderNumber, kernel.NewUUID(), kernel.NewUUID(),
		testItems(), "12 Harbor Lane, Springfield", "card",
		now.Add(-time.Minute), nil, now.Add(-2*time.Minute),
	)
	return o
}

// inTransitOrder builds an order accepted by agentID and out for delivery.
func inTransitOrder(orderNumber string, agentID kernel.UUID) *order.Order {
	now := time.Now().UTC()
	adminID := kernel.NewUUID()
	o := assignableOrder(orderNumber, adminID)
	mustDo(o.Assign(agentID, adminID, "", now))
	mustDo(o.AcceptAssignment(agentID, now))
	agentActor, _ := kernel.NewActor(kernel.RoleDeliveryAgent, agentID)
	mustDo(o.TransitionTo(order.OutForDelivery, agentActor, "", now))
	return o
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

func actorOf(role kernel.Role, id kernel.UUID) kernel.Actor {
	a, err := kernel.NewActor(role, id)
	mustDo(err)
	return a
}

func availableAgent() *agent.DeliveryAgent {
	a, _ := agent.NewDeliveryAgent(kernel.NewUUID(), "Riley Park")
	return a
}
