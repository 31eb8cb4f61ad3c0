package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
	"gamebazaar/internal/domain/service"
	ws "gamebazaar/internal/infrastructure/websocket"
	"gamebazaar/pkg/errors"
)

func TestHappyPathToCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.purchase(t)

	res, err := f.order.ConfirmDelivery(ctx, sellerActor, p.ChatID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDeliveryConfirmed, res.Order.Status)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, entity.MessageTypeSystem, res.Messages[0].Type)
	assert.False(t, res.Messages[0].CreatedAt.Before(res.Order.UpdatedAt))

	res, err = f.order.ConfirmOrder(ctx, buyerActor, p.ChatID, p.Order.ID, 5, "fast and friendly")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, res.Order.Status)
	require.NotNil(t, res.Order.Review)
	assert.Equal(t, 5, res.Order.Review.Rating)
	require.Len(t, res.Messages, 1)
	assert.Contains(t, res.Messages[0].Text, "5/5")
	assert.Contains(t, res.Messages[0].Text, "fast and friendly")

	mirror, err := f.order.GetOrder(ctx, p.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, mirror.Status)
	assert.Equal(t, 5, mirror.Review.Rating)

	assert.GreaterOrEqual(t, f.notifier.count("u1", ws.EventOrderUpdate), 2)
}

func TestConfirmOrderRequiresDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.purchase(t)

	_, err := f.order.ConfirmOrder(ctx, buyerActor, p.ChatID, "", 5, "")
	assert.True(t, errors.Is(err, errors.CodeIllegalTransition))

	chat, err := f.chats.GetByID(ctx, p.ChatID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, chat.LatestOrderMessage().Order.Status)
	assert.Len(t, chat.Messages, 2)
}

func TestConfirmOrderValidatesRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.purchase(t)

	_, err := f.order.ConfirmDelivery(ctx, sellerActor, p.ChatID, "")
	require.NoError(t, err)

	for _, rating := range []int{0, 6} {
		_, err = f.order.ConfirmOrder(ctx, buyerActor, p.ChatID, "", rating, "")
		assert.True(t, errors.Is(err, errors.CodeBadRequest), "rating %d", rating)
	}
}

func TestDisputeFreezesSellerAndCloseReopens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.purchase(t)

	res, err := f.order.OpenDispute(ctx, buyerActor, p.ChatID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDisputed, res.Order.Status)
	assert.Equal(t, entity.MessageTypeAdmin, res.Messages[0].Type)

	_, err = f.order.ConfirmDelivery(ctx, sellerActor, p.ChatID, "")
	assert.True(t, errors.Is(err, errors.CodeIllegalTransition))

	actions, err := f.order.AvailableActions(ctx, sellerActor, p.ChatID, "")
	require.NoError(t, err)
	assert.Empty(t, actions.Actions)

	actions, err = f.order.AvailableActions(ctx, buyerActor, p.ChatID, "")
	require.NoError(t, err)
	assert.Equal(t, []service.OrderAction{service.ActionCloseDispute}, actions.Actions)

	res, err = f.order.CloseDispute(ctx, buyerActor, p.ChatID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, res.Order.Status)

	res, err = f.order.ConfirmDelivery(ctx, sellerActor, p.ChatID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDeliveryConfirmed, res.Order.Status)
}

func TestDisputeFreezesBuyerConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.purchase(t)

	_, err := f.order.ConfirmDelivery(ctx, sellerActor, p.ChatID, "")
	require.NoError(t, err)

	res, err := f.order.OpenDispute(ctx, buyerActor, p.ChatID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDisputed, res.Order.Status)

	_, err = f.order.ConfirmOrder(ctx, buyerActor, p.ChatID, "", 5, "")
	assert.True(t, errors.Is(err, errors.CodeIllegalTransition))

	chat, err := f.chats.GetByID(ctx, p.ChatID)
	require.NoError(t, err)
	details := chat.LatestOrderMessage().Order
	assert.Equal(t, entity.OrderStatusDisputed, details.Status)
	assert.Nil(t, details.Review)
}

func TestWrongPartyCannotAct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.purchase(t)

	_, err := f.order.OpenDispute(ctx, sellerActor, p.ChatID, "")
	assert.True(t, errors.Is(err, errors.CodeIllegalTransition))

	stranger := entity.Actor{ID: "u9", Username: "stranger", Role: entity.RoleBuyer}
	_, err = f.order.OpenDispute(ctx, stranger, p.ChatID, "")
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = f.order.AvailableActions(ctx, stranger, p.ChatID, "")
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestAdminResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	refunded := f.purchase(t)
	_, err := f.order.AdminResolve(ctx, adminActor, refunded.Order.ID, ResolutionRefund)
	assert.True(t, errors.Is(err, errors.CodeIllegalTransition), "no dispute yet")

	_, err = f.order.OpenDispute(ctx, buyerActor, refunded.ChatID, refunded.Order.ID)
	require.NoError(t, err)

	_, err = f.order.AdminResolve(ctx, buyerActor, refunded.Order.ID, ResolutionRefund)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = f.order.AdminResolve(ctx, adminActor, refunded.Order.ID, "split")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	res, err := f.order.AdminResolve(ctx, adminActor, refunded.Order.ID, ResolutionRefund)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, res.Order.Status)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, entity.SenderAdmin, res.Messages[0].SenderID)

	mirror, err := f.order.GetOrder(ctx, refunded.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, mirror.Status)
	assert.Equal(t, "a1", mirror.ResolvedBy)

	_, err = f.order.CloseDispute(ctx, buyerActor, refunded.ChatID, refunded.Order.ID)
	assert.True(t, errors.Is(err, errors.CodeIllegalTransition), "terminal state")

	released := f.purchase(t)
	_, err = f.order.OpenDispute(ctx, buyerActor, released.ChatID, released.Order.ID)
	require.NoError(t, err)
	res, err = f.order.AdminResolve(ctx, adminActor, released.Order.ID, ResolutionRelease)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, res.Order.Status)

	orders, total, err := f.order.ListOrders(ctx, repository.OrderFilter{Status: entity.OrderStatusCompleted}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, released.Order.ID, orders[0].ID)

	stats, err := f.order.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[entity.OrderStatusCancelled])
}

func TestExplicitOrderTargeting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.purchase(t)
	second := f.purchase(t)
	require.Equal(t, first.ChatID, second.ChatID)

	res, err := f.order.ConfirmDelivery(ctx, sellerActor, first.ChatID, first.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Order.ID, res.Order.OrderID)

	chat, err := f.chats.GetByID(ctx, first.ChatID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, chat.OrderMessage(second.Order.ID).Order.Status)

	_, err = f.order.ConfirmDelivery(ctx, sellerActor, first.ChatID, "nope")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
