package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/core/ports"
)

// ProcessRefundCommandHandler lets the order's seller issue the refund of an approved
// return. An explicit amount is bounded by the order total.
type ProcessRefundCommandHandler struct {
	uowFactory ReturnUoWFactory
	recorder   Recorder
}

func NewProcessRefundCommandHandler(uowFactory ReturnUoWFactory, recorder Recorder) ProcessRefundCommandHandler {
	return ProcessRefundCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h ProcessRefundCommandHandler) Handle(ctx context.Context, cmd ProcessRefundCommand) (*returns.ReturnRequest, error) {
	if err := cmd.Validate(); err != nil {
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

	if err = cmd.Actor().RequireOwner("process refund", kernel.RoleSeller, request.SellerID()); err != nil {
		return nil, err
	}

	o, err := uow.OrderRepository().Get(ctx, request.OrderID())
	if err != nil {
		return nil, err
	}

	if err = request.IssueRefund(cmd.Amount(), o.Total(), cmd.Notes(), time.Now()); err != nil {
		return nil, err
	}

	if err = returnRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.recorder.Record(ctx, "return", request.Status().String(),
		activity.Entryf(activity.TypeReturn, request.UpdatedAt(), "Refund of %s issued for return %s",
			request.RefundAmount(), request.ID()),
		ports.Notification{
			RecipientID: request.CustomerID(),
			Category:    ports.CategoryReturn,
			Subject:     request.ID(),
			Message:     "Your refund of " + request.RefundAmount().String() + " was issued",
		},
	)

	return request, nil
}
