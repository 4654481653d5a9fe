package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// SubmitBuybackCommandHandler prices and stores a new buyback request.
type SubmitBuybackCommandHandler struct {
	uowFactory BuybackUoWFactory
	recorder   Recorder
}

func NewSubmitBuybackCommandHandler(uowFactory BuybackUoWFactory, recorder Recorder) SubmitBuybackCommandHandler {
	return SubmitBuybackCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle returns the pending request with the server-computed offered price.
func (h SubmitBuybackCommandHandler) Handle(ctx context.Context, cmd SubmitBuybackCommand) (*buyback.BuybackRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireRole("submit buyback request", kernel.RoleCustomer); err != nil {
		return nil, err
	}

	request, err := buyback.NewBuybackRequest(kernel.NewUUID(), cmd.Actor().ID(), cmd.Book(), cmd.Conditions(), time.Now())
	if err != nil {
		return nil, err
	}
	if quoted := cmd.QuotedPrice(); quoted != nil && !quoted.Equal(request.OfferedPrice()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("offered price",
			fmt.Errorf("quoted %s but the current quote is %s", quoted, request.OfferedPrice()))
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BuybackRepository().Add(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.recorder.Record(ctx, "buyback", request.Status().String(),
		activity.Entryf(activity.TypeBuyback, request.CreatedAt(), "Buyback request %s submitted for %q, offered %s",
			request.ID(), request.Book().Title(), request.OfferedPrice()),
	)

	return request, nil
}
