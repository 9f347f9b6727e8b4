package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/agentrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

type GetAssignableOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAssignableOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetAssignableOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &agentrepo.AgentDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetAssignableOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetAssignableOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAssignableOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetAssignableOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetAssignableOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAssignableOrdersQueryHandlerTestSuite) TestHandle_MixedOrders_ReturnsOnlyApprovedUnassigned() {
	now := time.Now().UTC()
	adminID := kernel.NewUUID()

	pending := suite.seedOrder("ORD-000201", now)

	approved := suite.seedOrder("ORD-000202", now)
	suite.Require().NoError(approved.Approve(adminID, now))
	suite.update(approved)

	autoApproved := suite.seedOrder("ORD-000203", now.Add(-2*time.Hour))
	changed, err := autoApproved.AutoApprove(now)
	suite.Require().NoError(err)
	suite.Require().True(changed)
	suite.update(autoApproved)

	assigned := suite.seedOrder("ORD-000204", now)
	suite.Require().NoError(assigned.Approve(adminID, now))
	suite.Require().NoError(assigned.Assign(kernel.NewUUID(), adminID, "", now))
	suite.update(assigned)

	cancelled := suite.seedOrder("ORD-000205", now)
	suite.Require().NoError(cancelled.Approve(adminID, now))
	buyer, err := kernel.NewActor(kernel.RoleBuyer, cancelled.BuyerID())
	suite.Require().NoError(err)
	suite.Require().NoError(cancelled.TransitionTo(order.Cancelled, buyer, "changed my mind", now))
	suite.update(cancelled)

	query := queries.NewGetAssignableOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 2)

	resultNumbers := make(map[string]queries.GetAssignableOrdersQueryResponse)
	for _, r := range result {
		resultNumbers[r.OrderNumber] = r
	}
	suite.Contains(resultNumbers, approved.OrderNumber())
	suite.Contains(resultNumbers, autoApproved.OrderNumber())
	suite.NotContains(resultNumbers, pending.OrderNumber())
	suite.NotContains(resultNumbers, assigned.OrderNumber())
	suite.NotContains(resultNumbers, cancelled.OrderNumber())

	suite.Equal(order.ApprovalApproved.String(), resultNumbers[approved.OrderNumber()].ApprovalStatus)
	suite.Equal(order.ApprovalAutoApproved.String(), resultNumbers[autoApproved.OrderNumber()].ApprovalStatus)
}

func (suite *GetAssignableOrdersQueryHandlerTestSuite) TestHandle_OrdersAreSortedByCreationTime() {
	now := time.Now().UTC()
	adminID := kernel.NewUUID()

	newer := suite.seedOrder("ORD-000301", now)
	suite.Require().NoError(newer.Approve(adminID, now))
	suite.update(newer)

	older := suite.seedOrder("ORD-000302", now.Add(-time.Hour))
	suite.Require().NoError(older.Approve(adminID, now))
	suite.update(older)

	query := queries.NewGetAssignableOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(older.OrderNumber(), result[0].OrderNumber)
	suite.Equal(newer.OrderNumber(), result[1].OrderNumber)
}

func (suite *GetAssignableOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetAssignableOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, queries.ErrGetAssignableOrdersQueryIsNotConstructed)
}

// seedOrder creates a pending order and returns the persisted aggregate,
// re-read so its version matches the stored row.
func (suite *GetAssignableOrdersQueryHandlerTestSuite) seedOrder(number string, createdAt time.Time) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), 1, 4999, "L", "navy")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Item{item},
		"22 Harbor Rd, Portsmouth",
		"credit_card",
		createdAt.Add(time.Hour),
		nil,
		createdAt,
	)
	suite.Require().NoError(err)

	err = suite.orderRepo.Add(context.Background(), o)
	suite.Require().NoError(err)

	persisted, err := suite.orderRepo.Get(context.Background(), o.ID())
	suite.Require().NoError(err)
	return persisted
}

func (suite *GetAssignableOrdersQueryHandlerTestSuite) update(o *order.Order) {
	err := suite.orderRepo.Update(context.Background(), o)
	suite.Require().NoError(err)
}

func TestGetAssignableOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAssignableOrdersQueryHandlerTestSuite))
}
