package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/returns"
)

const defaultAutoCompleteBatch = 100

// AutoCompleteReturnsCommandHandler completes refunded returns whose grace period has
// elapsed. One run handles at most one batch in a single transaction; the scheduler
// picks up the rest on its next tick.
type AutoCompleteReturnsCommandHandler struct {
	uowFactory ReturnUoWFactory
	grace      time.Duration
	batch      int
	recorder   Recorder
}

func NewAutoCompleteReturnsCommandHandler(
	uowFactory ReturnUoWFactory,
	grace time.Duration,
	recorder Recorder,
) AutoCompleteReturnsCommandHandler {
	if grace < 0 {
		grace = 0
	}
	return AutoCompleteReturnsCommandHandler{
		uowFactory: uowFactory,
		grace:      grace,
		batch:      defaultAutoCompleteBatch,
		recorder:   recorder,
	}
}

// Handle returns the returns it completed.
func (h *AutoCompleteReturnsCommandHandler) Handle(
	ctx context.Context,
	cmd AutoCompleteReturnsCommand,
) ([]*returns.ReturnRequest, error) {
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
	now := cmd.Now()

	due, err := returnRepo.ListRefundedBefore(ctx, now.Add(-h.grace), h.batch)
	if err != nil {
		return nil, err
	}

	completed := make([]*returns.ReturnRequest, 0, len(due))
	for _, request := range due {
		if !request.IsDueForCompletion(now, h.grace) {
			continue
		}
		if err = request.Complete(now); err != nil {
			return nil, err
		}
		if err = returnRepo.Update(ctx, request); err != nil {
			return nil, err
		}
		completed = append(completed, request)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, request := range completed {
		h.recorder.Record(ctx, "return", request.Status().String(),
			activity.Entryf(activity.TypeReturn, now, "Return %s completed automatically", request.ID()),
		)
	}

	return completed, nil
}
