package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/ports"
)

// TransitionMetrics counts committed transitions per entity and resulting status.
type TransitionMetrics interface {
	TransitionCommitted(entity, status string)
}

// Recorder performs the side effects that follow a committed transition: the activity
// entry, the notifications and the metrics. They are best effort. A failure is logged
// and never reaches the caller, whose transition has already been committed.
//
// The zero Recorder is valid and records nothing.
type Recorder struct {
	log      ports.ActivityLog
	notifier ports.Notifier
	metrics  TransitionMetrics
	logger   *slog.Logger
}

func NewRecorder(log ports.ActivityLog, notifier ports.Notifier, metrics TransitionMetrics, logger *slog.Logger) Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return Recorder{
		log:      log,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger.With("component", "transition_recorder"),
	}
}

// Record must only be called after Commit succeeded.
func (r Recorder) Record(
	ctx context.Context,
	entity, status string,
	entry activity.Entry,
	notifications ...ports.Notification,
) {
	// the request may already be finished; the side effects must still run
	ctx = context.WithoutCancel(ctx)

	if r.metrics != nil {
		r.metrics.TransitionCommitted(entity, status)
	}

	if r.log != nil {
		if err := r.log.Append(ctx, entry); err != nil {
			r.logError(ctx, "Activity append failed", err, "entity", entity, "entry", entry.Description)
		}
	}

	if r.notifier == nil {
		return
	}
	for _, n := range notifications {
		if err := r.notifier.Notify(ctx, n); err != nil {
			r.logError(ctx, "Notification failed", err, "recipient", n.RecipientID.String(), "category", n.Category)
		}
	}
}

func (r Recorder) logError(ctx context.Context, msg string, err error, args ...any) {
	logger := r.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(ctx, msg, append(args, "error", err)...)
}
