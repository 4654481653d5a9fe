package notify

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"
)

// LogNotifier writes notifications to the log. It is used when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (l *LogNotifier) Notify(ctx context.Context, n ports.Notification) error {
	l.logger.InfoContext(ctx, "notification",
		"recipient", n.RecipientID.String(),
		"category", n.Category,
		"subject", n.Subject.String(),
		"message", n.Message,
	)
	return nil
}
