package order

import (
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Action names a transition request as it arrives from a caller.
type Action string

const (
	ActionAccept         Action = "accept"
	ActionReject         Action = "reject"
	ActionPack           Action = "pack"
	ActionShip           Action = "ship"
	ActionOutForDelivery Action = "out-for-delivery"
	ActionDeliver        Action = "deliver"
	ActionCancel         Action = "cancel"
)

// ParseAction normalizes an action name; "out_for_delivery" and "deliver"/"delivered"
// spellings are accepted.
func ParseAction(s string) (Action, error) {
	switch strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(strings.TrimSpace(s))) {
	case "accept":
		return ActionAccept, nil
	case "reject":
		return ActionReject, nil
	case "pack":
		return ActionPack, nil
	case "ship":
		return ActionShip, nil
	case "out-for-delivery":
		return ActionOutForDelivery, nil
	case "deliver", "delivered":
		return ActionDeliver, nil
	case "cancel":
		return ActionCancel, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid order action", s))
	}
}

// Authorize checks that actor may perform a on o.
//
// Forward edges up to shipping belong to the order's seller, the delivery edges to a
// delivery partner or the seller, and cancellation to the order's buyer.
func (a Action) Authorize(actor kernel.Actor, o *Order) error {
	switch a {
	case ActionAccept, ActionReject, ActionPack, ActionShip:
		return actor.RequireOwner(string(a)+" order", kernel.RoleSeller, o.SellerID())
	case ActionOutForDelivery, ActionDeliver:
		if actor.Role() == kernel.RoleDeliveryPartner {
			return nil
		}
		return actor.RequireOwner(string(a)+" order", kernel.RoleSeller, o.SellerID())
	case ActionCancel:
		return actor.RequireOwner("cancel order", kernel.RoleCustomer, o.BuyerID())
	default:
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid order action", a))
	}
}
