package commands

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrDecideReturnCommandIsNotConstructed = errors.New(
	"DecideReturnCommand must be created via NewDecideReturnCommand constructor",
)

// Decision is the admin's verdict on a return request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ParseDecision accepts "approve"/"approved" and "reject"/"rejected".
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve", "approved":
		return DecisionApprove, nil
	case "reject", "rejected":
		return DecisionReject, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%q is not approve or reject", s))
	}
}

type DecideReturnCommand struct {
	actor    kernel.Actor
	returnID kernel.UUID
	decision Decision
	notes    string

	guard guard.ConstructorGuard
}

func NewDecideReturnCommand(actor kernel.Actor, returnID kernel.UUID, decision, notes string) (DecideReturnCommand, error) {
	d, decisionErr := ParseDecision(decision)
	if err := errors.Join(actor.Validate(), returnID.Validate(), decisionErr); err != nil {
		return DecideReturnCommand{}, err
	}

	return DecideReturnCommand{
		actor:    actor,
		returnID: returnID,
		decision: d,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DecideReturnCommand) Validate() error {
	return c.guard.Validate(ErrDecideReturnCommandIsNotConstructed)
}

func (c DecideReturnCommand) Actor() kernel.Actor   { return c.actor }
func (c DecideReturnCommand) ReturnID() kernel.UUID { return c.returnID }
func (c DecideReturnCommand) Decision() Decision    { return c.decision }
func (c DecideReturnCommand) Notes() string         { return c.notes }
