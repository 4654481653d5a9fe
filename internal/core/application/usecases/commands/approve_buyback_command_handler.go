package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// ApproveBuybackCommandHandler approves a pending request and materialises its
// inventory item with the configured default stock, in one transaction.
//
// Example:
//
//	handler := NewApproveBuybackCommandHandler(uowFactory, cfg.DefaultBuybackStock, recorder)
//	cmd, _ := NewApproveBuybackCommand(admin, requestID, decimal.NewFromInt(180), "cover torn")
//	request, err := handler.Handle(ctx, cmd)
//	// request.Stock() == cfg.DefaultBuybackStock
type ApproveBuybackCommandHandler struct {
	uowFactory   BuybackUoWFactory
	defaultStock int
	recorder     Recorder
}

func NewApproveBuybackCommandHandler(uowFactory BuybackUoWFactory, defaultStock int, recorder Recorder) ApproveBuybackCommandHandler {
	if defaultStock <= 0 {
		defaultStock = 1
	}
	return ApproveBuybackCommandHandler{
		uowFactory:   uowFactory,
		defaultStock: defaultStock,
		recorder:     recorder,
	}
}

// Handle returns the request re-read after the write, including the stock of the new item.
func (h ApproveBuybackCommandHandler) Handle(ctx context.Context, cmd ApproveBuybackCommand) (*buyback.BuybackRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireRole("approve buyback request", kernel.RoleAdmin); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	buybackRepo := uow.BuybackRepository()

	request, err := buybackRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err = request.Approve(cmd.SellingPrice(), cmd.Reason(), now); err != nil {
		return nil, err
	}

	if err = buybackRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	item, err := inventory.Materialize(kernel.NewUUID(), request, h.defaultStock, now)
	if err != nil {
		return nil, err
	}

	if err = uow.InventoryRepository().Add(ctx, item); err != nil {
		return nil, err
	}

	approved, err := buybackRepo.Get(ctx, request.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.recorder.Record(ctx, "buyback", approved.Status().String(),
		activity.Entryf(activity.TypeBuyback, now, "Buyback request %s approved at %s, %d unit(s) listed",
			approved.ID(), approved.SellingPrice(), item.Stock()),
		ports.Notification{
			RecipientID: approved.SubmitterID(),
			Category:    ports.CategoryBuyback,
			Subject:     approved.ID(),
			Message:     "Your buyback request for \"" + approved.Book().Title() + "\" was approved",
		},
	)

	return approved, nil
}
