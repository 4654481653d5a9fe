package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
)

// CompleteReturnCommandHandler closes a refunded return. Admin bookkeeping.
type CompleteReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	recorder   Recorder
}

func NewCompleteReturnCommandHandler(uowFactory ReturnUoWFactory, recorder Recorder) CompleteReturnCommandHandler {
	return CompleteReturnCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h CompleteReturnCommandHandler) Handle(ctx context.Context, cmd CompleteReturnCommand) (*returns.ReturnRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireRole("complete return", kernel.RoleAdmin); err != nil {
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

	if err = request.Complete(time.Now()); err != nil {
		return nil, err
	}

	if err = returnRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.recorder.Record(ctx, "return", request.Status().String(),
		activity.Entryf(activity.TypeReturn, request.UpdatedAt(), "Return %s completed", request.ID()),
	)

	return request, nil
}
