package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/core/ports"
)

// DecideReturnCommandHandler records the admin's decision. Approval hands the return to
// the seller for a refund; rejection closes it and tells the customer why.
type DecideReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	recorder   Recorder
}

func NewDecideReturnCommandHandler(uowFactory ReturnUoWFactory, recorder Recorder) DecideReturnCommandHandler {
	return DecideReturnCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h DecideReturnCommandHandler) Handle(ctx context.Context, cmd DecideReturnCommand) (*returns.ReturnRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireRole("decide return", kernel.RoleAdmin); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	returnRepo := uow.ReturnRepository()

	request, err := returnRepo.Get(ctx, cmd.ReturnID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	notification := ports.Notification{Category: ports.CategoryReturn, Subject: request.ID()}
	switch cmd.Decision() {
	case DecisionApprove:
		err = request.Approve(cmd.Notes(), now)
		notification.RecipientID = request.SellerID()
		notification.Message = "A return for order " + request.OrderID().String() + " was approved and awaits your refund"
	case DecisionReject:
		err = request.Reject(cmd.Notes(), now)
		notification.RecipientID = request.CustomerID()
	}
	if err != nil {
		return nil, err
	}
	if cmd.Decision() == DecisionReject {
		notification.Message = "Your return was rejected: " + request.AdminNotes()
	}

	if err = returnRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.recorder.Record(ctx, "return", request.Status().String(),
		activity.Entryf(activity.TypeReturn, now, "Return %s %s by admin", request.ID(), request.Status()),
		notification,
	)

	return request, nil
}
