package buyback

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status is the state of a buyback request: Pending → Approved | Rejected.
type Status int

const (
	Unknown Status = iota
	Pending
	Approved
	Rejected
)

const entityName = "buyback request"

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:  "pending",
		Approved: "approved",
		Rejected: "rejected",
	}
}

// ParseStatus maps a status name, case-insensitively, to a Status.
func ParseStatus(s string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if str == key {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid buyback status", s))
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

// Approve moves Pending to Approved. Any other source status is a conflict,
// including Approved itself: a second approval would materialise a second item.
func (s Status) Approve() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewStateConflictError(entityName, s.String(), "approve")
	}
	return Approved, nil
}

// Reject moves Pending to Rejected.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewStateConflictError(entityName, s.String(), "reject")
	}
	return Rejected, nil
}
