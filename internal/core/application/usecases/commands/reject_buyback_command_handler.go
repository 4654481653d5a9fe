package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// RejectBuybackCommandHandler declines a pending buyback request. No inventory changes.
type RejectBuybackCommandHandler struct {
	uowFactory BuybackUoWFactory
	recorder   Recorder
}

func NewRejectBuybackCommandHandler(uowFactory BuybackUoWFactory, recorder Recorder) RejectBuybackCommandHandler {
	return RejectBuybackCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h RejectBuybackCommandHandler) Handle(ctx context.Context, cmd RejectBuybackCommand) (*buyback.BuybackRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireRole("reject buyback request", kernel.RoleAdmin); err != nil {
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

	if err = request.Reject(cmd.Reason(), time.Now()); err != nil {
		return nil, err
	}

	if err = buybackRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	message := "Your buyback request for \"" + request.Book().Title() + "\" was rejected"
	if request.RejectionReason() != "" {
		message += ": " + request.RejectionReason()
	}
	h.recorder.Record(ctx, "buyback", request.Status().String(),
		activity.Entryf(activity.TypeBuyback, request.UpdatedAt(), "Buyback request %s rejected", request.ID()),
		ports.Notification{
			RecipientID: request.SubmitterID(),
			Category:    ports.CategoryBuyback,
			Subject:     request.ID(),
			Message:     message,
		},
	)

	return request, nil
}
