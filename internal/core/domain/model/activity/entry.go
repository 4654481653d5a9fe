// Package activity models the admin-facing audit trail of lifecycle transitions.
// Entries are informational only; no workflow reads them back to make decisions.
package activity

import (
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Type tags what an entry is about.
type Type string

const (
	TypeUser    Type = "user"
	TypeSeller  Type = "seller"
	TypeOrder   Type = "order"
	TypeBuyback Type = "buyback"
	TypeBook    Type = "book"
	TypeReturn  Type = "return"
)

// ParseType validates a type tag.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeUser, TypeSeller, TypeOrder, TypeBuyback, TypeBook, TypeReturn:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("activity type", fmt.Errorf("%q is not a known type", s))
	}
}

// Entry is one line of the activity log.
type Entry struct {
	ID          kernel.UUID
	Type        Type
	Description string
	At          time.Time
}

// NewEntry stamps a description with a fresh id.
func NewEntry(t Type, description string, at time.Time) Entry {
	return Entry{
		ID:          kernel.NewUUID(),
		Type:        t,
		Description: description,
		At:          at.UTC(),
	}
}

// Entryf is NewEntry with a formatted description.
func Entryf(t Type, at time.Time, format string, args ...any) Entry {
	return NewEntry(t, fmt.Sprintf(format, args...), at)
}
