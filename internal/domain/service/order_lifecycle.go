package service

import (
	"fmt"

	"gamebazaar/internal/domain/entity"
)

type OrderAction string

const (
	ActionConfirmDelivery OrderAction = "confirm_delivery"
	ActionConfirmOrder    OrderAction = "confirm_order"
	ActionOpenDispute     OrderAction = "open_dispute"
	ActionCloseDispute    OrderAction = "close_dispute"
	ActionResolveRefund   OrderAction = "resolve_refund"
	ActionResolveRelease  OrderAction = "resolve_release"
)

type transition struct {
	role entity.Role
	from []entity.OrderStatus
	to   entity.OrderStatus
}

// The complete order state machine. Anything not listed here is illegal.
var transitions = map[OrderAction]transition{
	ActionConfirmDelivery: {
		role: entity.RoleSeller,
		from: []entity.OrderStatus{entity.OrderStatusPaid},
		to:   entity.OrderStatusDeliveryConfirmed,
	},
	ActionConfirmOrder: {
		role: entity.RoleBuyer,
		from: []entity.OrderStatus{entity.OrderStatusDeliveryConfirmed},
		to:   entity.OrderStatusCompleted,
	},
	ActionOpenDispute: {
		role: entity.RoleBuyer,
		from: []entity.OrderStatus{entity.OrderStatusPaid, entity.OrderStatusDeliveryConfirmed},
		to:   entity.OrderStatusDisputed,
	},
	ActionCloseDispute: {
		role: entity.RoleBuyer,
		from: []entity.OrderStatus{entity.OrderStatusDisputed},
		to:   entity.OrderStatusPaid,
	},
	ActionResolveRefund: {
		role: entity.RoleAdmin,
		from: []entity.OrderStatus{entity.OrderStatusDisputed},
		to:   entity.OrderStatusCancelled,
	},
	ActionResolveRelease: {
		role: entity.RoleAdmin,
		from: []entity.OrderStatus{entity.OrderStatusDisputed},
		to:   entity.OrderStatusCompleted,
	},
}

// Stable order used when listing actions to clients.
var actionOrder = []OrderAction{
	ActionConfirmDelivery,
	ActionConfirmOrder,
	ActionOpenDispute,
	ActionCloseDispute,
	ActionResolveRefund,
	ActionResolveRelease,
}

func (a OrderAction) Valid() bool {
	_, ok := transitions[a]
	return ok
}

func CanPerform(role entity.Role, action OrderAction, status entity.OrderStatus) bool {
	t, ok := transitions[action]
	if !ok || t.role != role {
		return false
	}
	for _, from := range t.from {
		if from == status {
			return true
		}
	}
	return false
}

// NextStatus returns the target status, or false when the move is illegal.
func NextStatus(role entity.Role, action OrderAction, status entity.OrderStatus) (entity.OrderStatus, bool) {
	if !CanPerform(role, action, status) {
		return "", false
	}
	return transitions[action].to, true
}

func AvailableActions(role entity.Role, status entity.OrderStatus) []OrderAction {
	actions := []OrderAction{}
	for _, a := range actionOrder {
		if CanPerform(role, a, status) {
			actions = append(actions, a)
		}
	}
	return actions
}

// ResolveOrderRole derives the actor's role for one specific order. Party
// roles win over the global admin role so an admin buying something still
// acts as a buyer on that order.
func ResolveOrderRole(actor entity.Actor, details *entity.OrderDetails) (entity.Role, bool) {
	switch {
	case actor.ID == details.BuyerID:
		return entity.RoleBuyer, true
	case actor.ID == details.SellerID:
		return entity.RoleSeller, true
	case actor.IsAdmin():
		return entity.RoleAdmin, true
	}
	return "", false
}

// Announcement is the message posted to the conversation for a transition.
func Announcement(action OrderAction, details *entity.OrderDetails) *entity.Message {
	switch action {
	case ActionConfirmDelivery:
		return entity.NewSystemMessage("The seller has confirmed delivery. Please check your order and confirm it.")
	case ActionConfirmOrder:
		return entity.NewSystemMessage(reviewSummary(details.Review))
	case ActionOpenDispute:
		return entity.NewAdminMessage("A dispute has been opened for order " + details.OrderID + ". An administrator will join the conversation shortly.")
	case ActionCloseDispute:
		return entity.NewSystemMessage("The buyer has closed the dispute. The order is active again.")
	case ActionResolveRefund:
		return entity.NewAdminMessage("The dispute for order " + details.OrderID + " was resolved in favour of the buyer. The payment will be refunded.")
	case ActionResolveRelease:
		return entity.NewAdminMessage("The dispute for order " + details.OrderID + " was resolved in favour of the seller. The order is complete.")
	}
	return nil
}

func reviewSummary(r *entity.Review) string {
	if r == nil {
		return "The buyer has confirmed the order. The deal is complete, thank you!"
	}
	text := fmt.Sprintf("The buyer has confirmed the order and rated it %d/5", r.Rating)
	if r.Text != "" {
		return text + ": " + r.Text
	}
	return text + "."
}
