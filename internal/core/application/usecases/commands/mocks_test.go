package commands_test

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/buybackorder"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockBookCatalog struct{ mock.Mock }

func (m *MockBookCatalog) GetBooks(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Book, error) {
	args := m.Called(ctx, ids)
	books, _ := args.Get(0).(map[kernel.UUID]catalog.Book)
	return books, args.Error(1)
}

func (m *MockBookCatalog) Reserve(ctx context.Context, bookID kernel.UUID, quantity int) error {
	return m.Called(ctx, bookID, quantity).Error(0)
}

func (m *MockBookCatalog) Release(ctx context.Context, bookID kernel.UUID, quantity int) error {
	return m.Called(ctx, bookID, quantity).Error(0)
}

type MockBuybackRepository struct{ mock.Mock }

func (m *MockBuybackRepository) Add(ctx context.Context, r *buyback.BuybackRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockBuybackRepository) Update(ctx context.Context, r *buyback.BuybackRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockBuybackRepository) Get(ctx context.Context, id kernel.UUID) (*buyback.BuybackRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*buyback.BuybackRequest)
	return r, args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Add(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*inventory.Item)
	return item, args.Error(1)
}

func (m *MockInventoryRepository) GetMany(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*inventory.Item, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).(map[kernel.UUID]*inventory.Item)
	return items, args.Error(1)
}

func (m *MockInventoryRepository) TakeStock(ctx context.Context, id kernel.UUID, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *MockInventoryRepository) ReturnStock(ctx context.Context, id kernel.UUID, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Get(ctx context.Context, sellerID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, sellerID)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

type MockBuybackOrderRepository struct{ mock.Mock }

func (m *MockBuybackOrderRepository) Add(ctx context.Context, o *buybackorder.BuybackOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockBuybackOrderRepository) Update(ctx context.Context, o *buybackorder.BuybackOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockBuybackOrderRepository) Get(ctx context.Context, id kernel.UUID) (*buybackorder.BuybackOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*buybackorder.BuybackOrder)
	return o, args.Error(1)
}

type MockReturnRepository struct{ mock.Mock }

func (m *MockReturnRepository) Add(ctx context.Context, r *returns.ReturnRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReturnRepository) Update(ctx context.Context, r *returns.ReturnRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReturnRepository) Get(ctx context.Context, id kernel.UUID) (*returns.ReturnRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*returns.ReturnRequest)
	return r, args.Error(1)
}

func (m *MockReturnRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.ReturnRequest, error) {
	args := m.Called(ctx, orderID)
	list, _ := args.Get(0).([]*returns.ReturnRequest)
	return list, args.Error(1)
}

func (m *MockReturnRepository) ListRefundedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*returns.ReturnRequest, error) {
	args := m.Called(ctx, cutoff, limit)
	list, _ := args.Get(0).([]*returns.ReturnRequest)
	return list, args.Error(1)
}

// MockUoW serves every composite unit of work; tests only set up the accessors
// their handler uses.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) BookCatalog() ports.BookCatalog {
	return m.Called().Get(0).(ports.BookCatalog)
}

func (m *MockUoW) BuybackRepository() ports.BuybackRepository {
	return m.Called().Get(0).(ports.BuybackRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	return m.Called().Get(0).(ports.InventoryRepository)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	return m.Called().Get(0).(ports.CartRepository)
}

func (m *MockUoW) BuybackOrderRepository() ports.BuybackOrderRepository {
	return m.Called().Get(0).(ports.BuybackOrderRepository)
}

func (m *MockUoW) ReturnRepository() ports.ReturnRepository {
	return m.Called().Get(0).(ports.ReturnRepository)
}

type (
	orderUoWFactory   struct{ uow *MockUoW }
	buybackUoWFactory struct{ uow *MockUoW }
	resaleUoWFactory  struct{ uow *MockUoW }
	returnUoWFactory  struct{ uow *MockUoW }
)

func (f orderUoWFactory) Create() commands.OrderUoW     { return f.uow }
func (f buybackUoWFactory) Create() commands.BuybackUoW { return f.uow }
func (f resaleUoWFactory) Create() commands.ResaleUoW   { return f.uow }
func (f returnUoWFactory) Create() commands.ReturnUoW   { return f.uow }

type MockActivityLog struct{ mock.Mock }

func (m *MockActivityLog) Append(ctx context.Context, entry activity.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockActivityLog) Recent(ctx context.Context, limit int) ([]activity.Entry, error) {
	args := m.Called(ctx, limit)
	entries, _ := args.Get(0).([]activity.Entry)
	return entries, args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) TransitionCommitted(entity, status string) {
	m.Called(entity, status)
}

// expectTx sets up Begin and the deferred Rollback. Commit is left to the test.
func expectTx(uow *MockUoW) {
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
}
