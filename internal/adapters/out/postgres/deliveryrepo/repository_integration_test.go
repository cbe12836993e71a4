package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"freshmarket/internal/adapters/out/postgres/deliveryrepo"
	"freshmarket/internal/adapters/out/postgres/orderrepo"
	"freshmarket/internal/core/domain/model/delivery"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/order"
	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// DeliveryRepositoryIntegrationTestSuite verifies delivery persistence,
// counterpart lookup, and drift detection against a real PostgreSQL instance.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deliveryrepo.GormDeliveryRepository
	orderRepo  *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &deliveryrepo.DeliveryDTO{}))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
	suite.orderRepo = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// createPair persists an order and its paired delivery, both Pending.
func (suite *DeliveryRepositoryIntegrationTestSuite) createPair(number string) (*order.Order, *delivery.Delivery) {
	ctx := context.Background()

	addr, err := kernel.NewAddress("12 Orchard Lane", "Fresno", "CA", "93701")
	suite.Require().NoError(err)

	item, err := order.NewLineItem(kernel.NewUUID(), "Rainier Cherries", 4, 750)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), number, kernel.NewUUID(), "Ada Vance",
		[]order.LineItem{item}, 3000, addr,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AssignVendor(kernel.NewUUID(), "Green Valley Farm"))

	d, err := delivery.NewFromOrder(kernel.NewUUID(), o)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	suite.Require().NoError(suite.repository.Add(ctx, d))

	return o, d
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_RoundTrip() {
	ctx := context.Background()
	o, d := suite.createPair("FM-DRT0000001")

	loaded, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(d))
	suite.Require().NotNil(loaded.OrderID())
	suite.True(loaded.OrderID().IsEqual(o.ID()))
	suite.Equal(o.Number(), loaded.OrderNumber())
	suite.Equal("Ada Vance", loaded.CustomerName())
	suite.Equal("Green Valley Farm", loaded.VendorName())
	suite.Equal(status.Pending, loaded.Status())
	suite.Require().Len(loaded.Items(), 1)
	suite.Equal("Rainier Cherries", loaded.Items()[0].Name())
	suite.Require().Len(loaded.Timeline(), 1)
	suite.Equal(status.Pending, loaded.Timeline()[0].Status)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetByOrderRef_ByID() {
	ctx := context.Background()
	o, d := suite.createPair("FM-REF0000001")

	orderID := o.ID()
	loaded, err := suite.repository.GetByOrderRef(ctx, &orderID, o.Number())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(d))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetByOrderRef_NumberFallback() {
	ctx := context.Background()
	o, d := suite.createPair("FM-REF0000002")

	// Simulate a record without a structured order reference.
	suite.Require().NoError(
		suite.db.Exec("UPDATE deliveries SET order_id = NULL WHERE id = ?", d.ID().Bytes()).Error)

	loaded, err := suite.repository.GetByOrderRef(ctx, nil, o.Number())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(d))
	suite.Nil(loaded.OrderID())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetByOrderRef_NotFound() {
	missingID := kernel.NewUUID()
	_, err := suite.repository.GetByOrderRef(context.Background(), &missingID, "FM-MISSING001")
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdateStatusGuarded() {
	ctx := context.Background()
	_, d := suite.createPair("FM-DUP0000001")

	entry := status.NewChange(status.PickedUp, "Green Valley Farm", "")
	suite.Require().NoError(
		suite.repository.UpdateStatusGuarded(ctx, d.ID(), status.Pending, entry))

	// Replaying with the stale expected status must fail without changes.
	err := suite.repository.UpdateStatusGuarded(ctx, d.ID(), status.Pending, entry)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrStatusConflict)

	loaded, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(status.PickedUp, loaded.Status())
	suite.Len(loaded.Timeline(), 2)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetOutOfSync() {
	ctx := context.Background()
	suite.createPair("FM-SYN0000001")
	driftedOrder, driftedDelivery := suite.createPair("FM-SYN0000002")

	// Advance only the order side of the second pair.
	entry := status.NewChange(status.PickedUp, "Green Valley Farm", "")
	suite.Require().NoError(
		suite.orderRepo.UpdateStatusGuarded(ctx, driftedOrder.ID(), status.Pending, entry))

	drifted, err := suite.repository.GetOutOfSync(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(drifted, 1)
	suite.True(drifted[0].IsEqual(driftedDelivery))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetOutOfSync_MatchesByNumberWhenOrderIDMissing() {
	ctx := context.Background()
	o, d := suite.createPair("FM-SYN0000003")

	suite.Require().NoError(
		suite.db.Exec("UPDATE deliveries SET order_id = NULL WHERE id = ?", d.ID().Bytes()).Error)

	entry := status.NewChange(status.PickedUp, "Green Valley Farm", "")
	suite.Require().NoError(
		suite.orderRepo.UpdateStatusGuarded(ctx, o.ID(), status.Pending, entry))

	drifted, err := suite.repository.GetOutOfSync(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(drifted, 1)
	suite.True(drifted[0].IsEqual(d))
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
