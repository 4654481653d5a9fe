package ports

import (
	"context"

	"marketplace/internal/core/domain/model/activity"
)

// ActivityLog is the bounded, append-only audit trail shown to admins.
type ActivityLog interface {
	// Append records an entry, evicting the oldest once the log is full.
	Append(ctx context.Context, entry activity.Entry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]activity.Entry, error)
}
