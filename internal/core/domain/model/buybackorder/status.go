package buybackorder

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status is the fulfilment state of a buyback order:
//
//	PickupScheduled ──> PickedUp ──> InTransit ──> OutForDelivery ──> Delivered
//	       └──────────────┴─────────────┴──────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	Unknown Status = iota
	PickupScheduled
	PickedUp
	InTransit
	OutForDelivery
	Delivered
	Cancelled
)

const entityName = "buyback order"

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PickupScheduled: "pickup-scheduled",
		PickedUp:        "picked-up",
		InTransit:       "in-transit",
		OutForDelivery:  "out-for-delivery",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
	}
}

// ParseStatus accepts hyphen, underscore or space separated spellings in any case.
func ParseStatus(s string) (Status, error) {
	key := strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(strings.TrimSpace(s)))
	if key == "canceled" || key == "cancel" {
		return Cancelled, nil
	}
	for status, str := range getStatusStrings() {
		if str == key {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid buyback order status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// next returns the single forward successor of s.
func (s Status) next() Status {
	//nolint:exhaustive // terminal statuses have no successor
	switch s {
	case PickupScheduled:
		return PickedUp
	case PickedUp:
		return InTransit
	case InTransit:
		return OutForDelivery
	case OutForDelivery:
		return Delivered
	default:
		return Unknown
	}
}

// MoveTo returns target when it is s itself, the next fulfilment step, or Cancelled
// from a non-terminal status.
func (s Status) MoveTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if s == target {
		return target, nil
	}
	if target == Cancelled && !s.IsTerminal() {
		return Cancelled, nil
	}
	if s.next() == target {
		return target, nil
	}
	return Unknown, errs.NewStateConflictError(entityName, s.String(), "move to "+target.String())
}
