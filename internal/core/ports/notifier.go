package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// Notification categories.
const (
	CategoryOrder   = "order"
	CategoryBuyback = "buyback"
	CategoryReturn  = "return"
	CategoryResale  = "resale"
)

// Notification is a message for one user about one of their entities.
type Notification struct {
	RecipientID kernel.UUID
	Category    string
	Subject     kernel.UUID
	Message     string
}

// Notifier hands notifications to the delivery channel. Delivery is best effort:
// callers log failures and never undo a committed transition because of them.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
