package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
)

// RequestReturnCommandHandler opens a return. The order row stays locked while earlier
// returns are read, so two concurrent requests for one order cannot both pass the
// "no active return" check.
type RequestReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	recorder   Recorder
}

func NewRequestReturnCommandHandler(uowFactory ReturnUoWFactory, recorder Recorder) RequestReturnCommandHandler {
	return RequestReturnCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h RequestReturnCommandHandler) Handle(ctx context.Context, cmd RequestReturnCommand) (*returns.ReturnRequest, error) {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = cmd.Actor().RequireOwner("request return", kernel.RoleCustomer, o.BuyerID()); err != nil {
		return nil, err
	}

	previous, err := returnRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	request, err := returns.NewReturnRequest(kernel.NewUUID(), o, cmd.Lines(), cmd.Reason(), cmd.Description(),
		previous, time.Now())
	if err != nil {
		return nil, err
	}

	if err = returnRepo.Add(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.recorder.Record(ctx, "return", request.Status().String(),
		activity.Entryf(activity.TypeReturn, request.CreatedAt(), "Return %s requested for order %s, %s",
			request.ID(), request.OrderID(), request.DefaultRefund()),
	)

	return request, nil
}
