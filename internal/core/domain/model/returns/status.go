package returns

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status is the state of a return request:
//
//	PendingAdmin ──approve──> ApprovedByAdmin ──refund──> RefundIssued ──complete──> Completed
//	     └──reject──> RejectedByAdmin
//
// Transitions are strict: repeating one is a state conflict.
type Status int

const (
	Unknown Status = iota
	PendingAdmin
	ApprovedByAdmin
	RejectedByAdmin
	RefundIssued
	Completed
)

const entityName = "return request"

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingAdmin:    "pending-admin",
		ApprovedByAdmin: "approved-by-admin",
		RejectedByAdmin: "rejected-by-admin",
		RefundIssued:    "refund-issued",
		Completed:       "completed",
	}
}

// ParseStatus accepts hyphen or underscore separated spellings in any case.
func ParseStatus(s string) (Status, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for status, str := range getStatusStrings() {
		if str == key {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid return status", s))
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

// IsActive reports whether the return still blocks a new return for the same order.
func (s Status) IsActive() bool {
	return s == PendingAdmin || s == ApprovedByAdmin || s == RefundIssued
}

// CountsAgainstQuantity reports whether the returned items reduce what may still be returned.
func (s Status) CountsAgainstQuantity() bool {
	return s != RejectedByAdmin && s != Unknown
}

func (s Status) Approve() (Status, error)  { return s.step("approve", PendingAdmin, ApprovedByAdmin) }
func (s Status) Reject() (Status, error)   { return s.step("reject", PendingAdmin, RejectedByAdmin) }
func (s Status) Refund() (Status, error)   { return s.step("refund", ApprovedByAdmin, RefundIssued) }
func (s Status) Complete() (Status, error) { return s.step("complete", RefundIssued, Completed) }

func (s Status) step(action string, from, to Status) (Status, error) {
	if s != from {
		return Unknown, errs.NewStateConflictError(entityName, s.String(), action)
	}
	return to, nil
}
