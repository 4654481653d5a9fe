package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine whose edges are the only legal transitions:
//
//	Pending ──accept──> Accepted ──pack──> Packed ──ship──> Shipped
//	   │                    │                 │                │
//	   ├──reject──> Rejected│                 │       out-for-delivery
//	   │                    │                 │                v
//	   └──────cancel────────┴──────cancel─────┴──> Cancelled  OutForDelivery ──deliver──> Delivered
//
// Rejected, Cancelled and Delivered are terminal. Every transition is idempotent:
// asking for the status the order already has succeeds without change.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	Pending
	Accepted
	Packed
	Shipped
	OutForDelivery
	Delivered
	Rejected
	Cancelled
)

const entityName = "order"

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Accepted:       "accepted",
		Packed:         "packed",
		Shipped:        "shipped",
		OutForDelivery: "out-for-delivery",
		Delivered:      "delivered",
		Rejected:       "rejected",
		Cancelled:      "cancelled",
	}
}

// getStatusLabels returns the display labels shown to buyers and sellers.
func getStatusLabels() map[Status]string {
	//nolint:exhaustive // Unknown has no label
	return map[Status]string{
		Pending:        "Pending",
		Accepted:       "Processing",
		Packed:         "Packed",
		Shipped:        "Shipped",
		OutForDelivery: "Out for delivery",
		Delivered:      "Delivered",
		Rejected:       "Rejected",
		Cancelled:      "Cancelled",
	}
}

// getStatusSynonyms maps every accepted spelling, lower-cased with '_' and ' ' folded to '-',
// to its canonical status.
func getStatusSynonyms() map[string]Status {
	return map[string]Status{
		"new":              Pending,
		"pending":          Pending,
		"accepted":         Accepted,
		"processing":       Accepted,
		"packed":           Packed,
		"shipped":          Shipped,
		"out-for-delivery": OutForDelivery,
		"delivered":        Delivered,
		"rejected":         Rejected,
		"cancelled":        Cancelled,
		"canceled":         Cancelled,
	}
}

// ParseStatus maps an external status spelling to the canonical Status.
// It is meant for ingestion boundaries (query filters, persisted legacy values);
// transition logic never deals with synonyms.
//
// Example:
//
//	s, _ := order.ParseStatus("Processing") // order.Accepted
func ParseStatus(s string) (Status, error) {
	key := strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(strings.TrimSpace(s)))
	if status, ok := getStatusSynonyms()[key]; ok {
		return status, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getStatusLabels()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical machine name ("out-for-delivery").
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Label returns the canonical display label ("Processing" for Accepted).
func (s Status) Label() string {
	if label, ok := getStatusLabels()[s]; ok {
		return label
	}
	return "Unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Rejected || s == Cancelled
}

// IsCancellable reports whether the buyer may still cancel.
// Once the parcel is shipped the buyer has to use a return instead.
func (s Status) IsCancellable() bool {
	return s == Pending || s == Accepted || s == Packed
}

// Accept moves Pending to Accepted.
func (s Status) Accept() (Status, error) {
	return s.advance(ActionAccept, Accepted, Pending)
}

// Reject moves Pending to Rejected.
func (s Status) Reject() (Status, error) {
	return s.advance(ActionReject, Rejected, Pending)
}

// Pack moves Accepted to Packed.
func (s Status) Pack() (Status, error) {
	return s.advance(ActionPack, Packed, Accepted)
}

// Ship moves Packed to Shipped.
func (s Status) Ship() (Status, error) {
	return s.advance(ActionShip, Shipped, Packed)
}

// MarkOutForDelivery moves Shipped to OutForDelivery.
func (s Status) MarkOutForDelivery() (Status, error) {
	return s.advance(ActionOutForDelivery, OutForDelivery, Shipped)
}

// Deliver moves OutForDelivery to Delivered.
func (s Status) Deliver() (Status, error) {
	return s.advance(ActionDeliver, Delivered, OutForDelivery)
}

// Cancel moves any pre-shipment status to Cancelled.
func (s Status) Cancel() (Status, error) {
	return s.advance(ActionCancel, Cancelled, Pending, Accepted, Packed)
}

func (s Status) advance(action Action, target Status, from ...Status) (Status, error) {
	if s == target {
		return target, nil
	}
	for _, f := range from {
		if s == f {
			return target, nil
		}
	}
	return Unknown, errs.NewStateConflictError(entityName, s.String(), string(action))
}
