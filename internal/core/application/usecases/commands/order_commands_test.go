package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSplitter(t *testing.T) services.OrderSplitter {
	t.Helper()
	policy, err := services.NewShippingPolicy(decimal.NewFromInt(40), decimal.NewFromInt(1000))
	require.NoError(t, err)
	return services.NewOrderSplitter(policy)
}

func TestPlaceOrderCommandHandler_Handle_SplitsBySeller(t *testing.T) {
	ctx := t.Context()
	customer := newActor(t, kernel.RoleCustomer)
	sellerA, sellerB := kernel.NewUUID(), kernel.NewUUID()

	bookA, err := catalog.RestoreBook(kernel.NewUUID(), sellerA, "Dune", decimal.NewFromInt(300), 5)
	require.NoError(t, err)
	bookB, err := catalog.RestoreBook(kernel.NewUUID(), sellerB, "Emma", decimal.NewFromInt(1200), 1)
	require.NoError(t, err)

	cmd, err := commands.NewPlaceOrderCommand(customer, []services.BasketLine{
		{BookID: bookA.ID(), Quantity: 2},
		{BookID: bookB.ID(), Quantity: 1},
	}, "221B Baker Street", "cod")
	require.NoError(t, err)

	books := &MockBookCatalog{}
	repo := &MockOrderRepository{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("BookCatalog").Return(books).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	books.On("GetBooks", mock.Anything, cmd.BookIDs()).
		Return(map[kernel.UUID]catalog.Book{bookA.ID(): bookA, bookB.ID(): bookB}, nil).Once()
	books.On("Reserve", mock.Anything, bookA.ID(), 2).Return(nil).Once()
	books.On("Reserve", mock.Anything, bookB.ID(), 1).Return(nil).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Twice()

	notifier := &MockNotifier{}
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Category == ports.CategoryOrder
	})).Return(nil).Twice()

	h := commands.NewPlaceOrderCommandHandler(orderUoWFactory{uow}, newSplitter(t),
		commands.NewRecorder(nil, notifier, nil, nil))
	orders, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, sellerA, orders[0].SellerID())
	assert.Equal(t, "640", orders[0].Total().String())
	assert.Equal(t, sellerB, orders[1].SellerID())
	assert.Equal(t, "1200", orders[1].Total().String(), "free shipping at the threshold")
	for _, o := range orders {
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, customer.ID(), o.BuyerID())
	}

	books.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ReserveFailsRollsBack(t *testing.T) {
	ctx := t.Context()
	customer := newActor(t, kernel.RoleCustomer)
	book, err := catalog.RestoreBook(kernel.NewUUID(), kernel.NewUUID(), "Dune", decimal.NewFromInt(300), 5)
	require.NoError(t, err)

	cmd, err := commands.NewPlaceOrderCommand(customer,
		[]services.BasketLine{{BookID: book.ID(), Quantity: 5}}, "221B Baker Street", "cod")
	require.NoError(t, err)

	books := &MockBookCatalog{}
	repo := &MockOrderRepository{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("BookCatalog").Return(books).Once()
	uow.On("OrderRepository").Return(repo).Once()
	books.On("GetBooks", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]catalog.Book{book.ID(): book}, nil).Once()
	books.On("Reserve", mock.Anything, book.ID(), 5).
		Return(errs.NewValueIsOutOfRangeError("stock", 5, 1, 4)).Once()

	h := commands.NewPlaceOrderCommandHandler(orderUoWFactory{uow}, newSplitter(t), commands.Recorder{})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_RequiresCustomer(t *testing.T) {
	seller := newActor(t, kernel.RoleSeller)
	cmd, err := commands.NewPlaceOrderCommand(seller,
		[]services.BasketLine{{BookID: kernel.NewUUID(), Quantity: 1}}, "221B Baker Street", "cod")
	require.NoError(t, err)

	h := commands.NewPlaceOrderCommandHandler(orderUoWFactory{&MockUoW{}}, newSplitter(t), commands.Recorder{})
	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewPlaceOrderCommandHandler(orderUoWFactory{&MockUoW{}}, newSplitter(t), commands.Recorder{})
	_, err := h.Handle(t.Context(), commands.PlaceOrderCommand{})
	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
}

func TestTransitionOrderCommandHandler_Handle_CancelPackedReleasesStock(t *testing.T) {
	ctx := t.Context()
	buyer := newActor(t, kernel.RoleCustomer)
	o := restoreOrder(t, buyer.ID(), kernel.NewUUID(), order.Packed)

	cmd, err := commands.NewTransitionOrderCommand(buyer, o.ID(), "cancel", "")
	require.NoError(t, err)

	repo := &MockOrderRepository{}
	books := &MockBookCatalog{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("BookCatalog").Return(books).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	repo.On("Update", mock.Anything, o).Return(nil).Once()
	for _, item := range o.Items() {
		books.On("Release", mock.Anything, item.BookID(), item.Quantity()).Return(nil).Once()
	}

	metrics := &MockMetrics{}
	metrics.On("TransitionCommitted", "order", "cancelled").Once()
	notifier := &MockNotifier{}
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.RecipientID == o.SellerID()
	})).Return(nil).Once()

	h := commands.NewTransitionOrderCommandHandler(orderUoWFactory{uow}, commands.NewRecorder(nil, notifier, metrics, nil))
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, got.Status())
	assert.Equal(t, "1200", got.Total().String())

	repo.AssertExpectations(t)
	books.AssertExpectations(t)
	uow.AssertExpectations(t)
	metrics.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_RepeatedActionWritesNothing(t *testing.T) {
	ctx := t.Context()
	seller := newActor(t, kernel.RoleSeller)
	o := restoreOrder(t, kernel.NewUUID(), seller.ID(), order.Accepted)

	cmd, err := commands.NewTransitionOrderCommand(seller, o.ID(), "accept", "")
	require.NoError(t, err)

	repo := &MockOrderRepository{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	h := commands.NewTransitionOrderCommandHandler(orderUoWFactory{uow}, commands.Recorder{})
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Accepted, got.Status())
	assert.Equal(t, 3, got.Version())

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_OtherSellerIsDenied(t *testing.T) {
	ctx := t.Context()
	stranger := newActor(t, kernel.RoleSeller)
	o := restoreOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.Pending)

	cmd, err := commands.NewTransitionOrderCommand(stranger, o.ID(), "accept", "")
	require.NoError(t, err)

	repo := &MockOrderRepository{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	h := commands.NewTransitionOrderCommandHandler(orderUoWFactory{uow}, commands.Recorder{})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Equal(t, order.Pending, o.Status())
}

func TestTransitionOrderCommandHandler_Handle_LostRaceToOtherStatusIsConflict(t *testing.T) {
	ctx := t.Context()
	seller := newActor(t, kernel.RoleSeller)
	o := restoreOrder(t, kernel.NewUUID(), seller.ID(), order.Accepted)
	current := restoreOrder(t, o.BuyerID(), seller.ID(), order.Cancelled)

	cmd, err := commands.NewTransitionOrderCommand(seller, o.ID(), "pack", "")
	require.NoError(t, err)

	repo := &MockOrderRepository{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	repo.On("Update", mock.Anything, o).
		Return(errs.NewStateConflictError("order", "accepted", "update")).Once()
	repo.On("Get", mock.Anything, o.ID()).Return(current, nil).Once()

	h := commands.NewTransitionOrderCommandHandler(orderUoWFactory{uow}, commands.Recorder{})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStateConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_LostRaceToSameStatusIsNoop(t *testing.T) {
	ctx := t.Context()
	seller := newActor(t, kernel.RoleSeller)
	o := restoreOrder(t, kernel.NewUUID(), seller.ID(), order.Accepted)
	current := restoreOrder(t, o.BuyerID(), seller.ID(), order.Packed)

	cmd, err := commands.NewTransitionOrderCommand(seller, o.ID(), "pack", "")
	require.NoError(t, err)

	repo := &MockOrderRepository{}
	uow := &MockUoW{}
	notifier := &MockNotifier{}
	expectTx(uow)
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	repo.On("Update", mock.Anything, o).
		Return(errs.NewStateConflictError("order", "accepted", "update")).Once()
	repo.On("Get", mock.Anything, o.ID()).Return(current, nil).Once()

	h := commands.NewTransitionOrderCommandHandler(orderUoWFactory{uow}, commands.NewRecorder(nil, notifier, nil, nil))
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Same(t, current, got)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertNotCalled(t, "BookCatalog")
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_GetError(t *testing.T) {
	ctx := t.Context()
	seller := newActor(t, kernel.RoleSeller)
	id := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(seller, id, "ship", "")
	require.NoError(t, err)

	repo := &MockOrderRepository{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

	h := commands.NewTransitionOrderCommandHandler(orderUoWFactory{uow}, commands.Recorder{})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionOrderCommandHandler_Handle_BeginError(t *testing.T) {
	seller := newActor(t, kernel.RoleSeller)
	cmd, err := commands.NewTransitionOrderCommand(seller, kernel.NewUUID(), "pack", "")
	require.NoError(t, err)

	uow := &MockUoW{}
	uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()

	h := commands.NewTransitionOrderCommandHandler(orderUoWFactory{uow}, commands.Recorder{})
	_, err = h.Handle(t.Context(), cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}
