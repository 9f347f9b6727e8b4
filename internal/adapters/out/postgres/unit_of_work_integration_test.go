package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL database, covering the atomicity guarantees the assignment
// and cancellation flows rely on.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres.Open(dsn)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres.Migrate(db))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, agents").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_Create_ReturnsIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.AgentRepository())
	suite.NotNil(uow2.OrderRepository())
	suite.NotNil(uow2.AgentRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Repeated Begin on an active unit of work is a no-op.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction, "commit without begin should fail")

	err = uow.Rollback(ctx)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction, "rollback without begin should fail")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndAgentTogether() {
	ctx := context.Background()
	now := time.Now().UTC()

	// Seed an approved order and an available agent in separate units.
	testOrder := suite.createTestOrder("ORD-000050")
	testAgent := suite.createTestAgent()

	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(seed.AgentRepository().Add(ctx, testAgent))
	suite.Require().NoError(seed.Commit(ctx))

	// Assign inside one transaction, mutating both aggregates.
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loadedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	loadedAgent, err := uow.AgentRepository().Get(ctx, testAgent.ID())
	suite.Require().NoError(err)

	adminID := kernel.NewUUID()
	suite.Require().NoError(loadedOrder.Approve(adminID, now))
	suite.Require().NoError(loadedOrder.Assign(loadedAgent.ID(), adminID, "", now))
	suite.Require().NoError(loadedAgent.Assign(loadedOrder.ID()))

	suite.Require().NoError(uow.OrderRepository().Update(ctx, loadedOrder))
	suite.Require().NoError(uow.AgentRepository().Update(ctx, loadedAgent))
	suite.Require().NoError(uow.Commit(ctx))

	// Both writes are visible after commit.
	verify := suite.factory.Create()
	persistedOrder, err := verify.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PickupReady, persistedOrder.Status())
	suite.Require().NotNil(persistedOrder.Assignment().AgentID())
	suite.Equal(testAgent.ID(), *persistedOrder.Assignment().AgentID())

	persistedAgent, err := verify.AgentRepository().Get(ctx, testAgent.ID())
	suite.Require().NoError(err)
	suite.Equal(agent.StatusAssigned, persistedAgent.Status())
	suite.True(persistedAgent.HasOrder(testOrder.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsBothWrites() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-000051")
	testAgent := suite.createTestAgent()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.AgentRepository().Add(ctx, testAgent))
	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	_, err := verify.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = verify.AgentRepository().Get(ctx, testAgent.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositories_WithoutTransaction_WorkAgainstPool() {
	ctx := context.Background()

	uow := suite.factory.Create()
	testOrder := suite.createTestOrder("ORD-000052")

	// No Begin: the repository writes directly through the pool.
	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	persisted, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), persisted.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(number string) *order.Order {
	now := time.Now().UTC()
	item, err := order.NewItem(kernel.NewUUID(), 1, 1499, "M", "navy")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Item{item},
		"3 Oak Ave, Millbrook",
		"credit_card",
		now.Add(time.Hour),
		nil,
		now,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestAgent() *agent.DeliveryAgent {
	a, err := agent.NewDeliveryAgent(kernel.NewUUID(), "Morgan Reyes")
	suite.Require().NoError(err)
	return a
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
