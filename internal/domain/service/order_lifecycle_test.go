package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gamebazaar/internal/domain/entity"
)

func TestCanPerform(t *testing.T) {
	tests := []struct {
		name   string
		role   entity.Role
		action OrderAction
		status entity.OrderStatus
		want   bool
	}{
		{"seller confirms paid delivery", entity.RoleSeller, ActionConfirmDelivery, entity.OrderStatusPaid, true},
		{"buyer cannot confirm delivery", entity.RoleBuyer, ActionConfirmDelivery, entity.OrderStatusPaid, false},
		{"buyer cannot skip delivery", entity.RoleBuyer, ActionConfirmOrder, entity.OrderStatusPaid, false},
		{"buyer confirms delivered order", entity.RoleBuyer, ActionConfirmOrder, entity.OrderStatusDeliveryConfirmed, true},
		{"buyer disputes paid order", entity.RoleBuyer, ActionOpenDispute, entity.OrderStatusPaid, true},
		{"buyer disputes delivered order", entity.RoleBuyer, ActionOpenDispute, entity.OrderStatusDeliveryConfirmed, true},
		{"seller cannot dispute", entity.RoleSeller, ActionOpenDispute, entity.OrderStatusPaid, false},
		{"no dispute after completion", entity.RoleBuyer, ActionOpenDispute, entity.OrderStatusCompleted, false},
		{"buyer closes dispute", entity.RoleBuyer, ActionCloseDispute, entity.OrderStatusDisputed, true},
		{"seller frozen while disputed", entity.RoleSeller, ActionConfirmDelivery, entity.OrderStatusDisputed, false},
		{"buyer frozen while disputed", entity.RoleBuyer, ActionConfirmOrder, entity.OrderStatusDisputed, false},
		{"admin refunds dispute", entity.RoleAdmin, ActionResolveRefund, entity.OrderStatusDisputed, true},
		{"admin releases dispute", entity.RoleAdmin, ActionResolveRelease, entity.OrderStatusDisputed, true},
		{"admin cannot resolve without dispute", entity.RoleAdmin, ActionResolveRefund, entity.OrderStatusPaid, false},
		{"unknown action", entity.RoleBuyer, OrderAction("teleport"), entity.OrderStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPerform(tt.role, tt.action, tt.status))
		})
	}
}

func TestTerminalStatesHaveNoActions(t *testing.T) {
	for _, status := range []entity.OrderStatus{entity.OrderStatusCompleted, entity.OrderStatusCancelled} {
		for _, role := range []entity.Role{entity.RoleBuyer, entity.RoleSeller, entity.RoleAdmin} {
			assert.Empty(t, AvailableActions(role, status), "%s/%s", role, status)
		}
	}
}

func TestAvailableActions(t *testing.T) {
	assert.Equal(t, []OrderAction{ActionOpenDispute}, AvailableActions(entity.RoleBuyer, entity.OrderStatusPaid))
	assert.Equal(t, []OrderAction{ActionConfirmOrder, ActionOpenDispute}, AvailableActions(entity.RoleBuyer, entity.OrderStatusDeliveryConfirmed))
	assert.Equal(t, []OrderAction{ActionConfirmDelivery}, AvailableActions(entity.RoleSeller, entity.OrderStatusPaid))
	assert.Empty(t, AvailableActions(entity.RoleSeller, entity.OrderStatusDisputed))
	assert.Equal(t, []OrderAction{ActionResolveRefund, ActionResolveRelease}, AvailableActions(entity.RoleAdmin, entity.OrderStatusDisputed))
}

func TestNextStatus(t *testing.T) {
	next, ok := NextStatus(entity.RoleBuyer, ActionCloseDispute, entity.OrderStatusDisputed)
	assert.True(t, ok)
	assert.Equal(t, entity.OrderStatusPaid, next)

	_, ok = NextStatus(entity.RoleBuyer, ActionConfirmOrder, entity.OrderStatusPaid)
	assert.False(t, ok)
}

func TestResolveOrderRole(t *testing.T) {
	details := &entity.OrderDetails{BuyerID: "u1", SellerID: "u2"}

	role, ok := ResolveOrderRole(entity.Actor{ID: "u1", Role: entity.RoleBuyer}, details)
	assert.True(t, ok)
	assert.Equal(t, entity.RoleBuyer, role)

	role, ok = ResolveOrderRole(entity.Actor{ID: "u2", Role: entity.RoleBuyer}, details)
	assert.True(t, ok)
	assert.Equal(t, entity.RoleSeller, role)

	role, ok = ResolveOrderRole(entity.Actor{ID: "a1", Role: entity.RoleAdmin}, details)
	assert.True(t, ok)
	assert.Equal(t, entity.RoleAdmin, role)

	_, ok = ResolveOrderRole(entity.Actor{ID: "u9", Role: entity.RoleSeller}, details)
	assert.False(t, ok)
}

func TestAnnouncementSenders(t *testing.T) {
	details := &entity.OrderDetails{OrderID: "o1"}

	for _, a := range []OrderAction{ActionConfirmDelivery, ActionConfirmOrder, ActionCloseDispute} {
		msg := Announcement(a, details)
		assert.Equal(t, entity.MessageTypeSystem, msg.Type)
		assert.NoError(t, msg.Validate())
	}
	for _, a := range []OrderAction{ActionOpenDispute, ActionResolveRefund, ActionResolveRelease} {
		msg := Announcement(a, details)
		assert.Equal(t, entity.MessageTypeAdmin, msg.Type)
		assert.Contains(t, msg.Text, "o1")
		assert.NoError(t, msg.Validate())
	}
}

func TestConfirmOrderAnnouncementSummarizesReview(t *testing.T) {
	details := &entity.OrderDetails{OrderID: "o1", Review: &entity.Review{Rating: 4, Text: "ok"}}
	assert.Equal(t, "The buyer has confirmed the order and rated it 4/5: ok", Announcement(ActionConfirmOrder, details).Text)

	details.Review.Text = ""
	assert.Equal(t, "The buyer has confirmed the order and rated it 4/5.", Announcement(ActionConfirmOrder, details).Text)
}
