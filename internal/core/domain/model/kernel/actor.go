package kernel

import (
	"fmt"
	"slices"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Role is the kind of caller performing an operation.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleSeller          Role = "seller"
	RoleAdmin           Role = "admin"
	RoleDeliveryPartner Role = "delivery-partner"
)

// systemActorID identifies scheduled jobs acting with admin rights.
var systemActorID = UUID{id: [16]byte{15: 1}}

// ParseRole maps a role name from request metadata to a Role.
// Matching is case-insensitive; "buyer" is accepted for customer.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "buyer":
		return RoleCustomer, nil
	case "seller":
		return RoleSeller, nil
	case "admin":
		return RoleAdmin, nil
	case "delivery-partner", "delivery_partner", "courier":
		return RoleDeliveryPartner, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	id   UUID
	role Role
}

// NewActor validates and builds an Actor.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if _, err := ParseRole(string(role)); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// SystemActor is the admin identity used by scheduled jobs.
func SystemActor() Actor {
	return Actor{id: systemActorID, role: RoleAdmin}
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// Validate reports whether the actor was built by NewActor or SystemActor.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	return nil
}

// RequireRole returns a permission error unless the actor has one of roles.
func (a Actor) RequireRole(action string, roles ...Role) error {
	if slices.Contains(roles, a.role) {
		return nil
	}
	return errs.NewPermissionDeniedError(string(a.role), action)
}

// RequireOwner returns a permission error unless the actor has role and is owner.
func (a Actor) RequireOwner(action string, role Role, owner UUID) error {
	if a.role != role || !a.id.IsEqual(owner) {
		return errs.NewPermissionDeniedError(string(a.role), action)
	}
	return nil
}
