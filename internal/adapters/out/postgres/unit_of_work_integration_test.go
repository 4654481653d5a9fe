package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/buybackorder"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/quote"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs every repository of the unit of work against a
// real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE books, orders, order_items, buyback_requests, buyback_inventory,
		cart_lines, buyback_orders, buyback_order_lines, return_requests, return_items`).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsAllRepositories() {
	ctx := context.Background()
	o := suite.newOrder(order.Pending)
	request := suite.newBuyback()

	uow := suite.factory.CreateGorm()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.BuybackRepository().Add(ctx, request))
	suite.Equal(2, uow.TrackedCount())
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err := fresh.OrderRepository().Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = fresh.BuybackRepository().Get(ctx, request.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCatalogReserveNeverOversells() {
	ctx := context.Background()
	book, err := catalog.RestoreBook(kernel.NewUUID(), kernel.NewUUID(), "Dune", decimal.NewFromInt(300), 3)
	suite.Require().NoError(err)
	suite.Require().NoError(catalogrepo.NewGormBookCatalog(suite.db).Add(ctx, book))

	c := suite.factory.Create().BookCatalog()
	suite.Require().NoError(c.Reserve(ctx, book.ID(), 2))

	err = c.Reserve(ctx, book.ID(), 2)
	suite.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)

	suite.Require().NoError(c.Release(ctx, book.ID(), 2))
	books, err := c.GetBooks(ctx, []kernel.UUID{book.ID(), kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Len(books, 1)
	suite.Equal(3, books[book.ID()].Stock())

	suite.ErrorIs(c.Reserve(ctx, kernel.NewUUID(), 1), errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestApprovalMaterializesOneItem() {
	ctx := context.Background()
	request := suite.newBuyback()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.BuybackRepository().Add(ctx, request))

	suite.Require().NoError(request.Approve(request.OfferedPrice(), "", time.Now()))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.BuybackRepository().Update(ctx, request))
	item, err := inventory.Materialize(kernel.NewUUID(), request, 2, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.InventoryRepository().Add(ctx, item))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().BuybackRepository().Get(ctx, request.ID())
	suite.Require().NoError(err)
	suite.Equal(buyback.Approved, loaded.Status())
	suite.Equal(2, loaded.Stock())
	suite.Equal(2, loaded.Version())
	suite.Equal("Dune", loaded.Book().Title())
	suite.Equal(request.Conditions(), loaded.Conditions())

	again, err := inventory.Materialize(kernel.NewUUID(), request, 1, time.Now())
	suite.Require().NoError(err)
	err = suite.factory.Create().InventoryRepository().Add(ctx, again)
	suite.ErrorIs(err, errs.ErrStateConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStaleBuybackDecisionIsConflict() {
	ctx := context.Background()
	request := suite.newBuyback()
	repo := suite.factory.Create().BuybackRepository()
	suite.Require().NoError(repo.Add(ctx, request))

	first, err := repo.Get(ctx, request.ID())
	suite.Require().NoError(err)
	second, err := repo.Get(ctx, request.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Reject("torn", time.Now()))
	suite.Require().NoError(repo.Update(ctx, first))

	suite.Require().NoError(second.Approve(second.OfferedPrice(), "", time.Now()))
	suite.ErrorIs(repo.Update(ctx, second), errs.ErrStateConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestInventoryStock() {
	ctx := context.Background()
	item := suite.newItem(3)
	repo := suite.factory.Create().InventoryRepository()

	suite.Require().NoError(repo.TakeStock(ctx, item.ID(), 2))
	suite.ErrorIs(repo.TakeStock(ctx, item.ID(), 2), errs.ErrValueIsOutOfRange)
	suite.Require().NoError(repo.ReturnStock(ctx, item.ID(), 1))

	items, err := repo.GetMany(ctx, []kernel.UUID{item.ID(), kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Equal(2, items[item.ID()].Stock())

	suite.ErrorIs(repo.TakeStock(ctx, kernel.NewUUID(), 1), errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCartSaveReplacesLines() {
	ctx := context.Background()
	seller := kernel.NewUUID()
	first, second := kernel.NewUUID(), kernel.NewUUID()
	repo := suite.factory.Create().CartRepository()

	empty, err := repo.Get(ctx, seller)
	suite.Require().NoError(err)
	suite.True(empty.IsEmpty())

	c, err := cart.New(seller)
	suite.Require().NoError(err)
	suite.Require().NoError(c.Add(first, 1, 5))
	suite.Require().NoError(c.Add(second, 2, 5))
	suite.Require().NoError(repo.Save(ctx, c))

	c.Remove(first)
	suite.Require().NoError(repo.Save(ctx, c))

	loaded, err := repo.Get(ctx, seller)
	suite.Require().NoError(err)
	suite.Equal([]cart.Line{{ItemID: second, Quantity: 2}}, loaded.Lines())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBuybackOrderRoundTrip() {
	ctx := context.Background()
	item := suite.newItem(5)
	address, err := kernel.NewAddress("221B Baker Street")
	suite.Require().NoError(err)
	payment, err := kernel.NewPaymentMethod("cod")
	suite.Require().NoError(err)

	lines := []buybackorder.Line{{ItemID: item.ID(), Title: "Dune", UnitPrice: item.SellingPrice(), Quantity: 2}}
	o, err := buybackorder.NewBuybackOrder(kernel.NewUUID(), kernel.NewUUID(), lines, decimal.NewFromInt(50),
		address, payment, time.Now())
	suite.Require().NoError(err)

	repo := suite.factory.Create().BuybackOrderRepository()
	suite.Require().NoError(repo.Add(ctx, o))

	changed, err := o.MoveTo(buybackorder.PickedUp, time.Now())
	suite.Require().NoError(err)
	suite.True(changed)
	suite.Require().NoError(repo.Update(ctx, o))

	loaded, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(buybackorder.PickedUp, loaded.Status())
	suite.Equal(o.TrackingNumber(), loaded.TrackingNumber())
	suite.True(o.Total().Equal(loaded.Total()))
	suite.Require().Len(loaded.Lines(), 1)
	suite.Equal(item.ID(), loaded.Lines()[0].ItemID)
	suite.Equal(2, loaded.Lines()[0].Quantity)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReturnsListing() {
	ctx := context.Background()
	o := suite.newOrder(order.Delivered)
	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	lines := []returns.Line{{BookID: o.Items()[0].BookID(), Quantity: 1}}
	old := time.Now().Add(-96 * time.Hour)
	refunded, err := returns.NewReturnRequest(kernel.NewUUID(), o, lines, "damaged", "", nil, old)
	suite.Require().NoError(err)
	suite.Require().NoError(refunded.Approve("ok", old))
	suite.Require().NoError(refunded.IssueRefund(nil, o.Total(), "", old))
	suite.Require().NoError(uow.ReturnRepository().Add(ctx, refunded))

	pending, err := returns.NewReturnRequest(kernel.NewUUID(), o, lines, "wrong book", "", nil, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ReturnRepository().Add(ctx, pending))

	byOrder, err := uow.ReturnRepository().ListByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(byOrder, 2)
	suite.Equal(refunded.ID(), byOrder[0].ID())
	suite.Equal(pending.ID(), byOrder[1].ID())

	due, err := uow.ReturnRepository().ListRefundedBefore(ctx, time.Now().Add(-72*time.Hour), 10)
	suite.Require().NoError(err)
	suite.Require().Len(due, 1)
	suite.Equal(refunded.ID(), due[0].ID())
	suite.True(decimal.NewFromInt(300).Equal(due[0].RefundAmount()))
	suite.Equal(returns.RefundIssued, due[0].Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetForUpdateInsideUnitOfWork() {
	ctx := context.Background()
	o := suite.newOrder(order.Delivered)
	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), locked.ID())
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(status order.Status) *order.Order {
	first, err := order.NewItem(kernel.NewUUID(), "Dune", decimal.NewFromInt(300), 2)
	suite.Require().NoError(err)
	second, err := order.NewItem(kernel.NewUUID(), "Emma", decimal.NewFromInt(600), 1)
	suite.Require().NoError(err)
	address, err := kernel.NewAddress("221B Baker Street")
	suite.Require().NoError(err)
	payment, err := kernel.NewPaymentMethod("cod")
	suite.Require().NoError(err)

	o, err := order.RestoreOrder(order.Snapshot{
		ID:              kernel.NewUUID(),
		BuyerID:         kernel.NewUUID(),
		SellerID:        kernel.NewUUID(),
		Items:           []order.Item{first, second},
		ShippingFee:     decimal.Zero,
		Status:          status,
		ShippingAddress: address,
		PaymentMethod:   payment,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
		Version:         1,
	})
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newBuyback() *buyback.BuybackRequest {
	book, err := kernel.NewBookDetails("Dune", "Frank Herbert", "9780441013593", "Ace", "1st", decimal.NewFromInt(500))
	suite.Require().NoError(err)
	request, err := buyback.NewBuybackRequest(kernel.NewUUID(), kernel.NewUUID(), book,
		quote.ParseConditions("minor_yellowing", "", "", "", "", "good"), time.Now())
	suite.Require().NoError(err)
	return request
}

// newItem stores an approved request and its inventory item.
func (suite *UnitOfWorkIntegrationTestSuite) newItem(stock int) *inventory.Item {
	ctx := context.Background()
	request := suite.newBuyback()
	suite.Require().NoError(request.Approve(request.OfferedPrice(), "", time.Now()))
	item, err := inventory.Materialize(kernel.NewUUID(), request, stock, time.Now())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.BuybackRepository().Add(ctx, request))
	suite.Require().NoError(uow.InventoryRepository().Add(ctx, item))
	return item
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
