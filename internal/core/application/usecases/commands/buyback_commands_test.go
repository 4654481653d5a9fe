package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/quote"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitBuybackCommandHandler_Handle_AttachesServerQuote(t *testing.T) {
	ctx := t.Context()
	customer := newActor(t, kernel.RoleCustomer)
	conditions := quote.ParseConditions("yellowed", "loose", "worn", "moderate", "moderate", "fair")

	cmd, err := commands.NewSubmitBuybackCommand(customer, newBook(t, 500), conditions, nil)
	require.NoError(t, err)

	repo := &MockBuybackRepository{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("BuybackRepository").Return(repo).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*buyback.BuybackRequest")).Return(nil).Once()

	log := &MockActivityLog{}
	log.On("Append", mock.Anything, mock.MatchedBy(func(e activity.Entry) bool {
		return e.Type == activity.TypeBuyback
	})).Return(nil).Once()

	h := commands.NewSubmitBuybackCommandHandler(buybackUoWFactory{uow}, commands.NewRecorder(log, nil, nil, nil))
	request, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// 0.40 - (0.10 + 0.08 + 0.10 + 0.10 + 0.15) clamps to 0.05
	assert.Equal(t, "25", request.OfferedPrice().String())
	assert.Equal(t, buyback.Pending, request.Status())
	assert.Equal(t, customer.ID(), request.SubmitterID())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	log.AssertExpectations(t)
}

func TestSubmitBuybackCommandHandler_Handle_DisagreeingQuoteIsInvalid(t *testing.T) {
	customer := newActor(t, kernel.RoleCustomer)
	stale := decimal.NewFromInt(180)

	cmd, err := commands.NewSubmitBuybackCommand(customer, newBook(t, 500), quote.BestConditions(), &stale)
	require.NoError(t, err)

	h := commands.NewSubmitBuybackCommandHandler(buybackUoWFactory{&MockUoW{}}, commands.Recorder{})
	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSubmitBuybackCommandHandler_Handle_AgreeingQuoteIsAccepted(t *testing.T) {
	customer := newActor(t, kernel.RoleCustomer)
	quoted := decimal.NewFromInt(200)

	cmd, err := commands.NewSubmitBuybackCommand(customer, newBook(t, 500), quote.BestConditions(), &quoted)
	require.NoError(t, err)

	repo := &MockBuybackRepository{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("BuybackRepository").Return(repo).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewSubmitBuybackCommandHandler(buybackUoWFactory{uow}, commands.Recorder{})
	request, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.True(t, quoted.Equal(request.OfferedPrice()))
}

func TestSubmitBuybackCommandHandler_Handle_RequiresCustomer(t *testing.T) {
	admin := newActor(t, kernel.RoleAdmin)
	cmd, err := commands.NewSubmitBuybackCommand(admin, newBook(t, 500), quote.BestConditions(), nil)
	require.NoError(t, err)

	h := commands.NewSubmitBuybackCommandHandler(buybackUoWFactory{&MockUoW{}}, commands.Recorder{})
	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestApproveBuybackCommandHandler_Handle_MaterialisesOneItem(t *testing.T) {
	ctx := t.Context()
	admin := newActor(t, kernel.RoleAdmin)
	request := pendingBuyback(t, kernel.NewUUID(), 500)

	cmd, err := commands.NewApproveBuybackCommand(admin, request.ID(), decimal.NewFromInt(180), "spine crease")
	require.NoError(t, err)

	var added *inventory.Item
	repo := &MockBuybackRepository{}
	stock := &MockInventoryRepository{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("BuybackRepository").Return(repo).Once()
	uow.On("InventoryRepository").Return(stock).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	repo.On("Get", mock.Anything, request.ID()).Return(request, nil).Once()
	repo.On("Update", mock.Anything, request).Return(nil).Once()
	stock.On("Add", mock.Anything, mock.AnythingOfType("*inventory.Item")).
		Run(func(args mock.Arguments) { added = args.Get(1).(*inventory.Item) }).
		Return(nil).Once()
	repo.On("Get", mock.Anything, request.ID()).
		Run(func(mock.Arguments) { request.AttachStock(3) }).
		Return(request, nil).Once()

	notifier := &MockNotifier{}
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.RecipientID == request.SubmitterID() && n.Category == ports.CategoryBuyback
	})).Return(nil).Once()

	h := commands.NewApproveBuybackCommandHandler(buybackUoWFactory{uow}, 3, commands.NewRecorder(nil, notifier, nil, nil))
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, buyback.Approved, got.Status())
	assert.Equal(t, "180", got.SellingPrice().String())
	assert.Equal(t, "spine crease", got.PriceChangeReason())
	assert.Equal(t, 3, got.Stock())

	require.NotNil(t, added)
	assert.Equal(t, request.ID(), added.BuybackRequestID())
	assert.Equal(t, 3, added.Stock())
	assert.Equal(t, "180", added.SellingPrice().String())

	stock.AssertNumberOfCalls(t, "Add", 1)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestApproveBuybackCommandHandler_Handle_PriceChangeNeedsReason(t *testing.T) {
	ctx := t.Context()
	admin := newActor(t, kernel.RoleAdmin)
	request := pendingBuyback(t, kernel.NewUUID(), 500)

	cmd, err := commands.NewApproveBuybackCommand(admin, request.ID(), decimal.NewFromInt(150), "")
	require.NoError(t, err)

	repo := &MockBuybackRepository{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("BuybackRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, request.ID()).Return(request, nil).Once()

	h := commands.NewApproveBuybackCommandHandler(buybackUoWFactory{uow}, 1, commands.Recorder{})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, buyback.Pending, request.Status())
	uow.AssertNotCalled(t, "InventoryRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestApproveBuybackCommandHandler_Handle_AlreadyDecidedIsConflict(t *testing.T) {
	ctx := t.Context()
	admin := newActor(t, kernel.RoleAdmin)
	request := pendingBuyback(t, kernel.NewUUID(), 500)
	require.NoError(t, request.Reject("", time.Now()))

	cmd, err := commands.NewApproveBuybackCommand(admin, request.ID(), request.OfferedPrice(), "")
	require.NoError(t, err)

	repo := &MockBuybackRepository{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("BuybackRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, request.ID()).Return(request, nil).Once()

	h := commands.NewApproveBuybackCommandHandler(buybackUoWFactory{uow}, 1, commands.Recorder{})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStateConflict)
}

func TestApproveBuybackCommandHandler_Handle_RequiresAdmin(t *testing.T) {
	customer := newActor(t, kernel.RoleCustomer)
	cmd, err := commands.NewApproveBuybackCommand(customer, kernel.NewUUID(), decimal.NewFromInt(100), "")
	require.NoError(t, err)

	h := commands.NewApproveBuybackCommandHandler(buybackUoWFactory{&MockUoW{}}, 1, commands.Recorder{})
	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestRejectBuybackCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	admin := newActor(t, kernel.RoleAdmin)
	request := pendingBuyback(t, kernel.NewUUID(), 500)

	cmd, err := commands.NewRejectBuybackCommand(admin, request.ID(), "  water damage ")
	require.NoError(t, err)

	repo := &MockBuybackRepository{}
	uow := &MockUoW{}
	expectTx(uow)
	uow.On("BuybackRepository").Return(repo).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	repo.On("Get", mock.Anything, request.ID()).Return(request, nil).Once()
	repo.On("Update", mock.Anything, request).Return(nil).Once()

	notifier := &MockNotifier{}
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.RecipientID == request.SubmitterID()
	})).Return(nil).Once()

	h := commands.NewRejectBuybackCommandHandler(buybackUoWFactory{uow}, commands.NewRecorder(nil, notifier, nil, nil))
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, buyback.Rejected, got.Status())
	assert.Equal(t, "water damage", got.RejectionReason())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}
